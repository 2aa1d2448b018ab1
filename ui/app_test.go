package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Nydauron/reefscout/catalog"
	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/record"
	"github.com/Nydauron/reefscout/stages"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func testOptions() Options {
	return Options{
		Wizard: stages.Options{
			Image: stages.FieldImage{Width: 40, Height: 10},
			Rings: stages.DefaultRingSelector(24),
		},
		QR: export.DefaultQR(),
	}
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	a := NewApp(opts)
	t.Cleanup(a.Close)
	a.Update(a.load()())
	require.Equal(t, stateReady, a.state)
	return a
}

var specialKeys = map[string]tea.KeyType{
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+p":    tea.KeyCtrlP,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		if kt, ok := specialKeys[k]; ok {
			a.Update(tea.KeyMsg{Type: kt})
			continue
		}
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func typeText(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// regionTop finds the first screen row of a clickable region.
func regionTop(t *testing.T, a *App, r region) int {
	t.Helper()
	top := 0
	for _, b := range a.layout() {
		if b.region == r {
			return top
		}
		top += lipgloss.Height(b.view)
	}
	t.Fatalf("region %d not on screen", r)
	return 0
}

func leftClick(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestCatalogFailureBlocksUntilRetry(t *testing.T) {
	opts := testOptions()
	opts.Loader = catalog.Loader{Path: filepath.Join(t.TempDir(), "missing.yaml")}
	a := NewApp(opts)
	t.Cleanup(a.Close)

	assert.NotContains(t, a.View(), "Scouter Initials", "nothing renders while loading")

	a.Update(a.load()())
	require.Equal(t, stateFailed, a.state)
	view := a.View()
	assert.Contains(t, view, "could not be loaded")
	assert.NotContains(t, view, "Scouter Initials")

	press(a, "ctrl+n")
	assert.Equal(t, stages.StepPrematch, a.wizard.Step(), "no navigation while blocked")

	a.loader = catalog.Loader{}
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.Equal(t, stateLoading, a.state)

	a.Update(a.load()())
	require.Equal(t, stateReady, a.state)
	assert.Contains(t, a.View(), "Scouter Initials")
}

func TestPrematchForm(t *testing.T) {
	a := newTestApp(t, testOptions())

	typeText(a, "kb1")
	press(a, "tab")
	typeText(a, "2025ilpe")
	press(a, "tab", "1", "tab")
	typeText(a, "12a")
	press(a, "tab", "5", "tab")
	typeText(a, "254")

	r := a.wizard.Store.Record()
	assert.Equal(t, "KB", r.ScouterInitials)
	assert.Equal(t, "2025ilpe", r.Event)
	assert.Equal(t, record.Qualification, r.MatchLevel)
	assert.Equal(t, "12", r.MatchNumber)
	assert.Equal(t, record.Blue2, r.RobotPosition)
	assert.Equal(t, "254", r.TeamNumber)

	prompt := a.controls[stages.StepPrematch][3].(*Prompt)
	assert.Equal(t, "12", prompt.Input.Value(), "the field shows the filtered value")
}

func TestPrematchFieldClick(t *testing.T) {
	a := newTestApp(t, testOptions())
	top := regionTop(t, a, regionStart)

	leftClick(a, 1+10, top+1+3)
	r := a.wizard.Store.Record()
	assert.Nil(t, r.RedPoint)
	assert.Nil(t, r.BluePoint, "ignored without a robot slot")

	press(a, "shift+tab", "shift+tab", "1")
	require.Equal(t, record.Red1, a.wizard.Store.Record().RobotPosition)

	top = regionTop(t, a, regionStart)
	leftClick(a, 1+10, top+1+3)
	r = a.wizard.Store.Record()
	require.NotNil(t, r.RedPoint)
	assert.Equal(t, record.Point{X: 10, Y: 3}, *r.RedPoint)
	assert.Nil(t, r.BluePoint)
}

func TestFieldBorderClickIgnored(t *testing.T) {
	a := newTestApp(t, testOptions())
	press(a, "shift+tab", "shift+tab", "1")
	require.Equal(t, record.Red1, a.wizard.Store.Record().RobotPosition)

	top := regionTop(t, a, regionStart)
	leftClick(a, 1+40, top+1+3)
	leftClick(a, 1+10, top+1+10)
	leftClick(a, 0, top+1+3)
	assert.Nil(t, a.wizard.Store.Record().RedPoint, "border cells are not on the field")

	leftClick(a, 1+39, top+1+9)
	r := a.wizard.Store.Record()
	require.NotNil(t, r.RedPoint)
	assert.Equal(t, record.Point{X: 39, Y: 9}, *r.RedPoint)

	press(a, "ctrl+n")
	top = regionTop(t, a, regionPositions)
	leftClick(a, 1+40, top+1)
	assert.Empty(t, a.wizard.Store.Record().AutonScoringPositions)
}

func TestScoringKeys(t *testing.T) {
	a := newTestApp(t, testOptions())
	press(a, "ctrl+n")
	require.Equal(t, stages.StepAutonomous, a.wizard.Step())

	press(a, "1", "y", "1", "1", "1", "n")
	assert.Equal(t, record.Sequence{1, 1, 0}, a.wizard.Store.Record().AutonCoralL1)
	assert.Contains(t, a.View(), "2/3")

	press(a, "f")
	assert.Contains(t, a.View(), "Floor Pickup?")
	press(a, "esc")
	_, pending := a.wizard.Autonomous.Pending()
	assert.False(t, pending)

	press(a, "u")
	assert.Equal(t, record.Sequence{1, 1}, a.wizard.Store.Record().AutonCoralL1)

	press(a, "c", "c")
	assert.Equal(t, record.CoralLocationProcessor, a.wizard.Store.Record().CoralScoredLocation)
}

func TestBulkEdit(t *testing.T) {
	a := newTestApp(t, testOptions())
	press(a, "ctrl+n", "ctrl+n")
	require.Equal(t, stages.StepTeleop, a.wizard.Step())

	press(a, "e", "2")
	require.True(t, a.bulkOpen)
	assert.Equal(t, "0/0", a.bulk.Value())

	press(a, "backspace", "backspace", "backspace")
	typeText(a, "5/3")
	press(a, "enter")
	assert.True(t, a.bulkOpen, "a rejected edit keeps the editor open")
	assert.Empty(t, a.wizard.Store.Record().TeleopCoralL2)

	press(a, "backspace", "backspace", "backspace")
	typeText(a, "3/5")
	press(a, "enter")
	assert.False(t, a.bulkOpen)
	assert.Equal(t, record.Sequence{1, 1, 1, 0, 0}, a.wizard.Store.Record().TeleopCoralL2)

	press(a, "e", "b", "esc")
	assert.False(t, a.bulkOpen)
	assert.Empty(t, a.wizard.Store.Record().TeleopAlgaeNet)
}

func TestReefClick(t *testing.T) {
	a := newTestApp(t, testOptions())
	press(a, "ctrl+n", "ctrl+n")

	rings := a.wizard.Teleop.Rings()
	w, h := reefSize(rings)
	top := regionTop(t, a, regionReef)

	leftClick(a, 1+w/2, top+1+h/2)
	target, ok := a.wizard.Teleop.Pending()
	require.True(t, ok)
	assert.Equal(t, stages.CoralL1, target)
	press(a, "y")

	leftClick(a, 1+w-2, top+1+h/2)
	target, ok = a.wizard.Teleop.Pending()
	require.True(t, ok)
	assert.Equal(t, stages.CoralL4, target)
	press(a, "2")

	r := a.wizard.Store.Record()
	assert.Equal(t, record.Sequence{1}, r.TeleopCoralL1)
	assert.Equal(t, record.Sequence{0}, r.TeleopCoralL4)
}

func TestTeleopScalarsAndTimer(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	opts := testOptions()
	opts.Wizard.Now = clock.Now
	a := newTestApp(t, opts)
	press(a, "ctrl+n", "ctrl+n")

	press(a, "+", "+", "-", "-", "-", "d", "k", "k")
	r := a.wizard.Store.Record()
	assert.Equal(t, 0, r.Penalties)
	assert.True(t, r.PlayedDefense)
	assert.False(t, r.RobotDisabled)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.NotNil(t, cmd, "starting the timer schedules a tick")
	clock.t = clock.t.Add(4500 * time.Millisecond)
	press(a, "space")

	assert.Equal(t, []float64{4.5}, a.wizard.Store.Record().ScoringCycles)
	assert.Contains(t, a.View(), "Cycle 4.5s recorded")
}

func TestEndgameAndExport(t *testing.T) {
	var exported []string
	opts := testOptions()
	opts.Exported = func(p string) { exported = append(exported, p) }
	a := newTestApp(t, opts)

	press(a, "tab", "tab", "tab")
	typeText(a, "7")
	press(a, "tab", "4", "tab")
	typeText(a, "118")

	press(a, "ctrl+n", "ctrl+n", "ctrl+n")
	require.Equal(t, stages.StepEndgame, a.wizard.Step())
	press(a, "3", "tab", "2", "tab", "tab")
	typeText(a, "fast cycler")
	press(a, "tab")
	typeText(a, "120")

	r := a.wizard.Store.Record()
	assert.Equal(t, record.ClimbSuccessful, r.DeepClimb)
	assert.Equal(t, record.ClimbFailed, r.ShallowClimb)
	assert.Equal(t, record.ClimbNotAttempted, r.Parked)
	assert.Equal(t, "fast cycler", r.Comments)
	assert.Equal(t, "120", r.RedAllianceScore)

	press(a, "ctrl+n")
	require.Equal(t, stages.StepExport, a.wizard.Step())
	assert.Contains(t, a.View(), `"team_num": "118"`)

	press(a, "enter")
	require.Len(t, exported, 1)
	assert.Contains(t, exported[0], `"team_num":"118"`)
	assert.Contains(t, exported[0], `"deep_climb":"success"`)
	assert.Equal(t, stages.StepPrematch, a.wizard.Step())

	next := a.wizard.Store.Record()
	assert.Equal(t, "8", next.MatchNumber)
	assert.Equal(t, record.Blue1, next.RobotPosition)
	assert.Empty(t, next.TeamNumber)
	assert.Equal(t, "8", a.controls[stages.StepPrematch][3].(*Prompt).Input.Value())
}

func TestExportClearAll(t *testing.T) {
	a := newTestApp(t, testOptions())
	typeText(a, "AB")
	a.wizard.GoTo(stages.StepExport)

	press(a, "X")
	assert.Equal(t, record.Defaults(), a.wizard.Store.Record())
	assert.Equal(t, stages.StepPrematch, a.wizard.Step())
	assert.Contains(t, a.View(), "Record cleared")
}

func TestNavigationBounds(t *testing.T) {
	a := newTestApp(t, testOptions())
	press(a, "ctrl+p")
	assert.Equal(t, stages.StepPrematch, a.wizard.Step())
	for range stages.Steps {
		press(a, "ctrl+n")
	}
	assert.Equal(t, stages.StepExport, a.wizard.Step())
	assert.Contains(t, a.bar.View(), "5/5 Export")
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, testOptions())
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
