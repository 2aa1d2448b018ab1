package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Nydauron/reefscout/catalog"
	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/record"
	"github.com/Nydauron/reefscout/stages"
)

type state int

const (
	stateLoading state = iota
	stateFailed
	stateReady
)

type catalogLoadedMsg struct{ catalog *catalog.Catalog }

type catalogFailedMsg struct{ err error }

type cycleTickMsg time.Time

const cycleTickInterval = 100 * time.Millisecond

type Options struct {
	Loader catalog.Loader
	Wizard stages.Options
	QR     export.QR
	Logger *zap.Logger
	// Exported receives every payload handed off by export-and-clear.
	Exported func(payload string)
}

// scorer is the shared surface of the autonomous and teleop stages.
type scorer interface {
	Select(stages.Target) error
	Pending() (stages.Target, bool)
	Cancel()
	Respond(record.Outcome)
	Undo()
	BulkEdit(record.SequenceField, string) error
	FieldFor(stages.Target) (record.SequenceField, bool)
	Sequence(record.SequenceField) record.Sequence
	PressReef(dx, dy float64) (stages.Target, error)
	Rings() stages.RingSelector
}

// targetKeys binds keys to scoring targets, in display order.
var targetKeys = []struct {
	key    string
	target stages.Target
	code   string
}{
	{"1", stages.CoralL1, "coral_l1"},
	{"2", stages.CoralL2, "coral_l2"},
	{"3", stages.CoralL3, "coral_l3"},
	{"4", stages.CoralL4, "coral_l4"},
	{"f", stages.FloorPickup, "floor"},
	{"h", stages.HumanFeed, "human_feed"},
	{"p", stages.Processor, "processor"},
	{"b", stages.Barge, "barge"},
}

func targetForKey(k string) (stages.Target, bool) {
	for _, tk := range targetKeys {
		if tk.key == k {
			return tk.target, true
		}
	}
	return 0, false
}

// App is the bubbletea model of a scouting session. No stage is shown until
// the field catalog has loaded.
type App struct {
	wizard   *stages.Wizard
	loader   catalog.Loader
	catalog  *catalog.Catalog
	qr       export.QR
	logger   *zap.Logger
	exported func(string)

	styles Styles
	bar    ProgressBar
	state  state
	err    error

	controls map[stages.Step][]Control
	focus    map[stages.Step]int

	bulk      textinput.Model
	bulkOpen  bool
	bulkPick  bool
	bulkField record.SequenceField

	notice string
}

func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bulk := textinput.New()
	bulk.Placeholder = "successes/total"
	bulk.CharLimit = 9

	a := &App{
		wizard:   stages.NewWizard(opts.Wizard),
		loader:   opts.Loader,
		qr:       opts.QR,
		logger:   logger,
		exported: opts.Exported,
		styles:   DefaultStyles(),
		bar:      NewProgressBar(),
		focus:    map[stages.Step]int{},
		bulk:     bulk,
	}
	a.bar.SetLabel("Loading field catalog")
	return a
}

// Wizard exposes the underlying stages, mainly for tests.
func (a *App) Wizard() *stages.Wizard { return a.wizard }

// Close releases the stage subscriptions.
func (a *App) Close() { a.wizard.Close() }

func (a *App) load() tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		c, err := loader.Load()
		if err != nil {
			return catalogFailedMsg{err: err}
		}
		return catalogLoadedMsg{catalog: c}
	}
}

func cycleTick() tea.Cmd {
	return tea.Tick(cycleTickInterval, func(t time.Time) tea.Msg { return cycleTickMsg(t) })
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.bar.GetSpinnerInitTick(), a.load())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		a.bar, cmd = a.bar.Update(msg)
	case catalogLoadedMsg:
		a.catalog = msg.catalog
		a.state = stateReady
		a.err = nil
		a.buildControls()
		a.logger.Info("field catalog loaded", zap.String("title", a.catalog.Title))
		cmd = a.enterStep()
	case catalogFailedMsg:
		a.state = stateFailed
		a.err = msg.err
		a.bar.SetError(msg.err)
		a.logger.Warn("field catalog failed to load", zap.Error(msg.err))
	case cycleTickMsg:
		if a.state == stateReady && a.wizard.Teleop.Timing() {
			cmd = cycleTick()
		}
	case tea.MouseMsg:
		if a.state == stateReady {
			a.click(msg)
		}
	case tea.KeyMsg:
		cmd = a.key(msg)
	}
	a.sync()
	return a, cmd
}

func (a *App) sync() {
	r := a.wizard.Store.Record()
	for _, c := range a.controls[a.wizard.Step()] {
		c.Sync(r)
	}
}

func (a *App) key(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch a.state {
	case stateLoading:
		return nil
	case stateFailed:
		switch msg.String() {
		case "r":
			a.state = stateLoading
			a.bar.SetLoading()
			return tea.Batch(a.bar.GetSpinnerInitTick(), a.load())
		case "q":
			return tea.Quit
		}
		return nil
	}

	a.notice = ""
	if sc := a.scorer(); sc != nil {
		if a.bulkOpen {
			return a.bulkKey(sc, msg)
		}
		if t, ok := sc.Pending(); ok {
			if msg.Type == tea.KeyEsc {
				sc.Cancel()
				return nil
			}
			if o, ok := (OutcomePrompt{}).Answer(msg); ok {
				sc.Respond(o)
				a.logger.Debug("attempt recorded",
					zap.Stringer("stage", a.wizard.Step()),
					zap.Stringer("target", t),
					zap.Int("outcome", int(o)))
			}
			return nil
		}
	}

	switch msg.String() {
	case "ctrl+n", "pgdown":
		return a.navigate(a.wizard.Next)
	case "ctrl+p", "pgup":
		return a.navigate(a.wizard.Back)
	}

	switch a.wizard.Step() {
	case stages.StepPrematch, stages.StepEndgame:
		return a.formKey(msg)
	case stages.StepAutonomous:
		return a.autonKey(msg)
	case stages.StepTeleop:
		return a.teleopKey(msg)
	case stages.StepExport:
		return a.exportKey(msg)
	}
	return nil
}

func (a *App) scorer() scorer {
	switch a.wizard.Step() {
	case stages.StepAutonomous:
		return a.wizard.Autonomous
	case stages.StepTeleop:
		return a.wizard.Teleop
	}
	return nil
}

func (a *App) navigate(move func() bool) tea.Cmd {
	from := a.wizard.Step()
	if !move() {
		return nil
	}
	a.bulkPick = false
	a.logger.Debug("stage changed", zap.Stringer("from", from), zap.Stringer("to", a.wizard.Step()))
	return a.enterStep()
}

// enterStep focuses the current step's selected control.
func (a *App) enterStep() tea.Cmd {
	step := a.wizard.Step()
	a.bar.SetStep(step)
	for s, controls := range a.controls {
		for i, c := range controls {
			if s != step || i != a.focus[s] {
				c.Blur()
			}
		}
	}
	if controls := a.controls[step]; len(controls) > 0 {
		return controls[a.focus[step]].Focus()
	}
	return nil
}

func (a *App) moveFocus(delta int) tea.Cmd {
	step := a.wizard.Step()
	controls := a.controls[step]
	if len(controls) == 0 {
		return nil
	}
	controls[a.focus[step]].Blur()
	a.focus[step] = (a.focus[step] + delta + len(controls)) % len(controls)
	return controls[a.focus[step]].Focus()
}

func (a *App) formKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down", "enter":
		return a.moveFocus(1)
	case "shift+tab", "up":
		return a.moveFocus(-1)
	}
	controls := a.controls[a.wizard.Step()]
	if len(controls) == 0 {
		return nil
	}
	return controls[a.focus[a.wizard.Step()]].Update(msg)
}

// scoringKey handles the keys shared by both scoring stages.
func (a *App) scoringKey(sc scorer, msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if a.bulkPick {
		a.bulkPick = false
		t, ok := targetForKey(k)
		if !ok {
			return nil
		}
		f, ok := sc.FieldFor(t)
		if !ok {
			return nil
		}
		a.bulkField = f
		a.bulkOpen = true
		a.bulk.SetValue(sc.Sequence(f).Summary().String())
		return a.bulk.Focus()
	}
	switch k {
	case "u":
		sc.Undo()
	case "e":
		a.bulkPick = true
	default:
		if t, ok := targetForKey(k); ok {
			if err := sc.Select(t); err != nil {
				a.logger.Warn("target not scored here", zap.Error(err))
			}
		}
	}
	return nil
}

// bulkKey edits the "successes/total" text. A rejected entry keeps the
// editor open and the sequence unchanged.
func (a *App) bulkKey(sc scorer, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.closeBulk()
		return nil
	case tea.KeyEnter:
		if err := sc.BulkEdit(a.bulkField, a.bulk.Value()); err != nil {
			a.logger.Debug("bulk edit rejected", zap.Stringer("field", a.bulkField), zap.Error(err))
			return nil
		}
		a.logger.Debug("bulk edit applied", zap.Stringer("field", a.bulkField), zap.String("value", a.bulk.Value()))
		a.closeBulk()
		return nil
	}
	var cmd tea.Cmd
	a.bulk, cmd = a.bulk.Update(msg)
	return cmd
}

func (a *App) closeBulk() {
	a.bulkOpen = false
	a.bulk.Blur()
	a.bulk.SetValue("")
}

var coralLocationCycle = []record.CoralLocation{
	record.CoralLocationNone,
	record.CoralLocationBarge,
	record.CoralLocationProcessor,
	record.CoralLocationBoth,
}

func (a *App) autonKey(msg tea.KeyMsg) tea.Cmd {
	auton := a.wizard.Autonomous
	switch msg.String() {
	case "c":
		current := auton.Record().CoralScoredLocation
		next := coralLocationCycle[0]
		for i, loc := range coralLocationCycle {
			if loc == current {
				next = coralLocationCycle[(i+1)%len(coralLocationCycle)]
			}
		}
		auton.SetCoralScoredLocation(next)
		return nil
	case "x":
		auton.UndoScoringPosition()
		return nil
	}
	return a.scoringKey(auton, msg)
}

func (a *App) teleopKey(msg tea.KeyMsg) tea.Cmd {
	teleop := a.wizard.Teleop
	switch msg.String() {
	case "+", "=":
		teleop.IncrementPenalties()
	case "-":
		teleop.DecrementPenalties()
	case "d":
		teleop.TogglePlayedDefense()
	case "k":
		teleop.ToggleRobotDisabled()
	case " ", "space":
		if elapsed, ok := teleop.StopCycle(); ok {
			a.notice = fmt.Sprintf("Cycle %.1fs recorded", elapsed.Seconds())
			return nil
		}
		teleop.StartCycle()
		return cycleTick()
	default:
		return a.scoringKey(teleop, msg)
	}
	return nil
}

func (a *App) exportKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		a.finish()
		return a.enterStep()
	case "X":
		a.wizard.Export.ClearAll()
		a.wizard.GoTo(stages.StepPrematch)
		a.notice = "Record cleared"
		a.logger.Info("record cleared")
		return a.enterStep()
	}
	return nil
}

func (a *App) finish() {
	r := a.wizard.Store.Record()
	payload := a.wizard.Finish()
	if a.exported != nil {
		a.exported(payload)
	}
	a.logger.Info("match exported",
		zap.String("event", r.Event),
		zap.String("match", r.MatchNumber),
		zap.String("team", r.TeamNumber),
		zap.String("robot", string(r.RobotPosition)),
		zap.Int("bytes", len(payload)))
	a.notice = fmt.Sprintf("Exported match %s", r.MatchNumber)
}

// onField reports whether a box-relative cell is one of the drawn field
// cells and not the border around them.
func (a *App) onField(col, row int) bool {
	image := a.wizard.Prematch.Image()
	return col >= 0 && col < int(image.Width) && row >= 0 && row < int(image.Height)
}

// click routes a left press to whichever field image or reef control is
// under it. Coordinates are relative to the inside of the control's border.
func (a *App) click(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	top := 0
	for _, b := range a.layout() {
		h := lipgloss.Height(b.view)
		if msg.Y < top || msg.Y >= top+h || b.region == regionNone {
			top += h
			continue
		}
		col, row := msg.X-1, msg.Y-top-1
		if b.region != regionReef && !a.onField(col, row) {
			a.logger.Debug("click outside the field", zap.Int("x", col), zap.Int("y", row))
			return
		}
		switch b.region {
		case regionStart:
			if !a.wizard.Prematch.ClickField(float64(col), float64(row)) {
				a.logger.Debug("start position click ignored", zap.Int("x", col), zap.Int("y", row))
			}
		case regionPositions:
			a.wizard.Autonomous.AddScoringPosition(float64(col), float64(row))
		case regionReef:
			sc := a.scorer()
			if sc == nil || a.bulkOpen {
				return
			}
			if _, pending := sc.Pending(); pending {
				return
			}
			if _, err := sc.PressReef(reefOffset(sc.Rings(), col, row)); err != nil {
				a.logger.Debug("reef press missed", zap.Error(err))
			}
		}
		return
	}
}
