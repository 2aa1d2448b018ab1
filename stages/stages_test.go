package stages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/record"
)

var testImage = FieldImage{Width: 300, Height: 180}

func newTestWizard(t *testing.T, opts Options) *Wizard {
	t.Helper()
	if opts.Image == (FieldImage{}) {
		opts.Image = testImage
	}
	if opts.Rings == (RingSelector{}) {
		opts.Rings = RingSelector{Thresholds: [4]float64{10, 20, 30, 40}}
	}
	w := NewWizard(opts)
	t.Cleanup(w.Close)
	return w
}

func TestHappyPath(t *testing.T) {
	w := newTestWizard(t, Options{Encoder: export.Encoder{Strategy: export.Aggregated}})

	w.Prematch.SetRobotPosition(record.Blue2)
	require.True(t, w.Prematch.ClickField(100, 50))

	rec := w.Store.Record()
	assert.Equal(t, &record.Point{X: 100, Y: 50}, rec.BluePoint)
	assert.Nil(t, rec.RedPoint)

	require.True(t, w.Next())
	for _, o := range []record.Outcome{record.Scored, record.Scored, record.Missed} {
		target, err := w.Autonomous.PressReef(0, 0)
		require.NoError(t, err)
		assert.Equal(t, CoralL1, target)
		w.Autonomous.Respond(o)
	}

	assert.Equal(t, record.Sequence{1, 1, 0}, w.Store.Record().AutonCoralL1)
	assert.Contains(t, w.Export.Payload(), `"L1_auton":"2/3"`)
}

func TestAlliancePointExclusivity(t *testing.T) {
	w := newTestWizard(t, Options{})
	w.Prematch.SetRobotPosition(record.Blue1)
	w.Prematch.ClickField(5, 5)

	w.Prematch.SetRobotPosition(record.Red1)
	require.True(t, w.Prematch.ClickField(10, 20))

	rec := w.Store.Record()
	assert.Equal(t, &record.Point{X: 10, Y: 20}, rec.RedPoint)
	assert.Equal(t, &record.Point{X: 5, Y: 5}, rec.BluePoint, "blue point is left alone")
}

func TestClickFieldIgnored(t *testing.T) {
	w := newTestWizard(t, Options{})
	assert.False(t, w.Prematch.ClickField(10, 10), "no robot slot yet")

	w.Prematch.SetRobotPosition(record.Red2)
	before := w.Store.Version()
	for _, p := range [][2]float64{{-1, 10}, {10, -0.5}, {301, 10}, {10, 181}} {
		assert.False(t, w.Prematch.ClickField(p[0], p[1]), p)
	}
	assert.Equal(t, before, w.Store.Version())
	assert.Nil(t, w.Store.Record().RedPoint)

	assert.True(t, w.Prematch.ClickField(300, 180), "edges are inside")
}

func TestBulkEditRejection(t *testing.T) {
	w := newTestWizard(t, Options{})
	w.Store.Merge(record.WithSequence(record.TeleopCoralL2, record.Sequence{1, 0}))

	for _, text := range []string{"5/3", "x/2", "-1/2", "1/201"} {
		err := w.Teleop.BulkEdit(record.TeleopCoralL2, text)
		assert.ErrorIs(t, err, ErrInvalidBulkEdit, text)
	}
	assert.Equal(t, record.Sequence{1, 0}, w.Store.Record().TeleopCoralL2)

	err := w.Teleop.BulkEdit(record.AutonCoralL1, "1/1")
	assert.ErrorIs(t, err, ErrInvalidBulkEdit, "field from another stage")
}

func TestBulkEdit(t *testing.T) {
	w := newTestWizard(t, Options{})
	require.NoError(t, w.Autonomous.BulkEdit(record.Mobility, "3/5"))
	assert.Equal(t, record.Sequence{1, 1, 1, 0, 0}, w.Store.Record().Mobility)
	assert.Equal(t, record.Sequence{1, 1, 1, 0, 0}, w.Autonomous.Sequence(record.Mobility))
}

func TestUndoLongestWithTieBreak(t *testing.T) {
	w := newTestWizard(t, Options{})
	w.Store.Merge(record.Partial{Sequences: map[record.SequenceField]record.Sequence{
		record.TeleopCoralL3:  {1, 1},
		record.TeleopAlgaeNet: {0, 1},
		record.TeleopCoralL1:  {1},
	}})

	w.Teleop.Undo()
	rec := w.Store.Record()
	assert.Equal(t, record.Sequence{1}, rec.TeleopCoralL3, "first declared of the longest")
	assert.Equal(t, record.Sequence{0, 1}, rec.TeleopAlgaeNet)

	w.Teleop.Undo()
	assert.Equal(t, record.Sequence{0}, w.Store.Record().TeleopAlgaeNet)
}

func TestUndoEmptyIsNoop(t *testing.T) {
	w := newTestWizard(t, Options{})
	before := w.Store.Version()
	w.Autonomous.Undo()
	assert.Equal(t, before, w.Store.Version())
}

func TestUndoMostRecent(t *testing.T) {
	w := newTestWizard(t, Options{Undo: UndoMostRecent})
	w.Store.Merge(record.WithSequence(record.AutonCoralL1, record.Sequence{1, 1, 1}))

	require.NoError(t, w.Autonomous.Select(Barge))
	w.Autonomous.Respond(record.Scored)

	w.Autonomous.Undo()
	rec := w.Store.Record()
	assert.Empty(t, rec.CrossedLine)
	assert.Equal(t, record.Sequence{1, 1, 1}, rec.AutonCoralL1)

	// History exhausted: falls back to the longest sequence.
	w.Autonomous.Undo()
	assert.Equal(t, record.Sequence{1, 1}, w.Store.Record().AutonCoralL1)
}

func TestUndoMostRecentForgetsHistoryOnClear(t *testing.T) {
	w := newTestWizard(t, Options{Undo: UndoMostRecent})
	require.NoError(t, w.Teleop.Select(HumanFeed))
	w.Teleop.Respond(record.Missed)

	w.Export.ClearAll()
	w.Store.Merge(record.WithSequence(record.TeleopCoralL4, record.Sequence{1}))

	w.Teleop.Undo()
	assert.Empty(t, w.Store.Record().TeleopCoralL4)
}

func TestRespondWithoutPromptIsNoop(t *testing.T) {
	w := newTestWizard(t, Options{})
	before := w.Store.Version()
	w.Teleop.Respond(record.Scored)
	assert.Equal(t, before, w.Store.Version())

	require.NoError(t, w.Teleop.Select(Processor))
	target, open := w.Teleop.Pending()
	require.True(t, open)
	assert.Equal(t, Processor, target)
	w.Teleop.Cancel()
	w.Teleop.Respond(record.Scored)
	assert.Equal(t, before, w.Store.Version())
}

func TestAppendShape(t *testing.T) {
	w := newTestWizard(t, Options{})
	for i := 0; i < 7; i++ {
		require.NoError(t, w.Teleop.Select(FloorPickup))
		w.Teleop.Respond(record.Outcome(i % 2))
	}
	assert.Len(t, w.Store.Record().TeleopProcessorScore, 7)
}

func TestStageSeesOutOfBandClear(t *testing.T) {
	w := newTestWizard(t, Options{})
	require.NoError(t, w.Autonomous.Select(CoralL2))
	w.Autonomous.Respond(record.Scored)
	assert.Len(t, w.Autonomous.Sequence(record.AutonCoralL2), 1)

	w.Export.ClearAll()
	assert.Empty(t, w.Autonomous.Sequence(record.AutonCoralL2))

	require.NoError(t, w.Autonomous.Select(CoralL2))
	w.Autonomous.Respond(record.Missed)
	assert.Equal(t, record.Sequence{0}, w.Store.Record().AutonCoralL2)
}

func TestTeleopScalars(t *testing.T) {
	w := newTestWizard(t, Options{})
	w.Teleop.DecrementPenalties()
	assert.Equal(t, 0, w.Store.Record().Penalties)
	w.Teleop.IncrementPenalties()
	w.Teleop.IncrementPenalties()
	w.Teleop.DecrementPenalties()
	assert.Equal(t, 1, w.Store.Record().Penalties)

	w.Teleop.TogglePlayedDefense()
	w.Teleop.ToggleRobotDisabled()
	w.Teleop.ToggleRobotDisabled()
	rec := w.Store.Record()
	assert.True(t, rec.PlayedDefense)
	assert.False(t, rec.RobotDisabled)
}

func TestCycleTimer(t *testing.T) {
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	w := newTestWizard(t, Options{Now: func() time.Time { return clock }})

	_, ok := w.Teleop.StopCycle()
	assert.False(t, ok)

	w.Teleop.StartCycle()
	clock = clock.Add(4500 * time.Millisecond)
	assert.Equal(t, 4500*time.Millisecond, w.Teleop.Elapsed())
	elapsed, ok := w.Teleop.StopCycle()
	require.True(t, ok)
	assert.Equal(t, 4500*time.Millisecond, elapsed)
	assert.Equal(t, []float64{4.5}, w.Store.Record().ScoringCycles)
	assert.False(t, w.Teleop.Timing())
}

func TestEndgame(t *testing.T) {
	w := newTestWizard(t, Options{})
	w.Endgame.SetDeepClimb(record.ClimbFailed)
	w.Endgame.SetShallowClimb(record.ClimbSuccessful)
	w.Endgame.SetParked(record.ClimbNotAttempted)
	w.Endgame.SetComments("0123456789012345678901234567890123456789012345678901234567890123456789")
	w.Endgame.SetRedAllianceScore("1a2b3")
	w.Endgame.SetBlueAllianceScore("-99")

	rec := w.Store.Record()
	assert.Equal(t, record.ClimbFailed, rec.DeepClimb)
	assert.Equal(t, record.ClimbSuccessful, rec.ShallowClimb)
	assert.Len(t, rec.Comments, record.MaxCommentLength)
	assert.Equal(t, "123", rec.RedAllianceScore)
	assert.Equal(t, "99", rec.BlueAllianceScore)
}

func TestPrematchFilters(t *testing.T) {
	w := newTestWizard(t, Options{})
	w.Prematch.SetScouterInitials("a.b.c.d.e.f")
	w.Prematch.SetMatchNumber("#12")
	w.Prematch.SetTeamNumber("frc254")
	w.Prematch.SetEvent("2025ilpe")
	w.Prematch.SetMatchLevel(record.Elimination)

	rec := w.Prematch.Record()
	assert.Equal(t, "ABCDE", rec.ScouterInitials)
	assert.Equal(t, "12", rec.MatchNumber)
	assert.Equal(t, "254", rec.TeamNumber)
	assert.Equal(t, "2025ilpe", rec.Event)
	assert.Equal(t, record.Elimination, rec.MatchLevel)
}

type fakeSchedule map[int]map[record.RobotPosition]uint

func (s fakeSchedule) TeamFor(match int, pos record.RobotPosition) (uint, bool) {
	team, ok := s[match][pos]
	return team, ok
}

func TestPrematchFillsTeamFromSchedule(t *testing.T) {
	schedule := fakeSchedule{
		3: {record.Red1: 111, record.Blue3: 333},
		4: {record.Blue3: 444},
	}
	w := newTestWizard(t, Options{Schedule: schedule})

	w.Prematch.SetMatchNumber("3")
	assert.Equal(t, "", w.Store.Record().TeamNumber, "no slot yet")

	w.Prematch.SetRobotPosition(record.Blue3)
	assert.Equal(t, "333", w.Store.Record().TeamNumber)

	w.Prematch.SetMatchNumber("4")
	assert.Equal(t, "444", w.Store.Record().TeamNumber)

	w.Prematch.SetMatchNumber("99")
	assert.Equal(t, "444", w.Store.Record().TeamNumber, "unknown match keeps the typed team")
}

func TestAutonScoringPositions(t *testing.T) {
	w := newTestWizard(t, Options{})
	assert.True(t, w.Autonomous.AddScoringPosition(1, 2))
	assert.True(t, w.Autonomous.AddScoringPosition(3, 4))
	assert.False(t, w.Autonomous.AddScoringPosition(400, 4))
	w.Autonomous.UndoScoringPosition()
	assert.Equal(t, []record.Point{{X: 1, Y: 2}}, w.Store.Record().AutonScoringPositions)

	w.Autonomous.SetCoralScoredLocation(record.CoralLocationBoth)
	assert.Equal(t, record.CoralLocationBoth, w.Store.Record().CoralScoredLocation)
}

func TestRingSelector(t *testing.T) {
	s := RingSelector{Thresholds: [4]float64{10, 20, 30, 40}}
	cases := []struct {
		dx, dy float64
		want   Target
	}{
		{0, 0, CoralL1},
		{9.9, 0, CoralL1},
		{0, -10, CoralL2},
		{-15, 15, CoralL3},
		{0, 39.9, CoralL4},
	}
	for _, c := range cases {
		got, err := s.Resolve(c.dx, c.dy)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "(%v,%v)", c.dx, c.dy)
	}
	_, err := s.Resolve(40, 0)
	assert.ErrorIs(t, err, ErrNoTarget)

	assert.NoError(t, DefaultRingSelector(360).Validate())
	assert.Error(t, RingSelector{Thresholds: [4]float64{10, 5, 30, 40}}.Validate())
}

func TestPressReefOutsideRings(t *testing.T) {
	w := newTestWizard(t, Options{})
	_, err := w.Teleop.PressReef(100, 100)
	assert.ErrorIs(t, err, ErrNoTarget)
	_, open := w.Teleop.Pending()
	assert.False(t, open)
}

func TestExportRecomputesAndClears(t *testing.T) {
	w := newTestWizard(t, Options{Encoder: export.Encoder{Strategy: export.Verbatim}})
	w.Prematch.SetScouterInitials("zz")
	w.Prematch.SetRobotPosition(record.Red3)
	w.Prematch.SetMatchNumber("41")
	w.Store.Merge(record.WithSequence(record.TeleopAlgaeNet, record.Sequence{1, 0}))
	assert.Contains(t, w.Export.Payload(), `"barge_teleop":[1,0]`)

	first := w.Export.Payload()
	assert.Equal(t, first, w.Export.Payload())

	for i := 0; i < 3; i++ {
		w.Next()
	}
	payload := w.Finish()
	assert.Equal(t, first, payload)
	assert.Equal(t, StepPrematch, w.Step())

	rec := w.Store.Record()
	assert.Equal(t, "ZZ", rec.ScouterInitials)
	assert.Equal(t, record.Red3, rec.RobotPosition)
	assert.Equal(t, "42", rec.MatchNumber)
	assert.Empty(t, rec.TeleopAlgaeNet)
	assert.Contains(t, w.Export.Payload(), `"match_num":"42"`)
}

func TestWizardNavigation(t *testing.T) {
	w := newTestWizard(t, Options{})
	assert.False(t, w.Back())
	for _, want := range Steps[1:] {
		require.True(t, w.Next())
		assert.Equal(t, want, w.Step())
	}
	assert.False(t, w.Next())
	w.GoTo(StepTeleop)
	assert.Equal(t, StepTeleop, w.Step())
	w.GoTo(Step(42))
	assert.Equal(t, StepTeleop, w.Step())
}

func TestParseUndoPolicy(t *testing.T) {
	p, err := ParseUndoPolicy("recent")
	require.NoError(t, err)
	assert.Equal(t, UndoMostRecent, p)
	_, err = ParseUndoPolicy("random")
	assert.Error(t, err)
}
