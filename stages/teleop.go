package stages

import (
	"time"

	"github.com/Nydauron/reefscout/record"
)

var teleopBindings = []binding{
	{CoralL1, record.TeleopCoralL1},
	{CoralL2, record.TeleopCoralL2},
	{CoralL3, record.TeleopCoralL3},
	{CoralL4, record.TeleopCoralL4},
	{FloorPickup, record.TeleopProcessorScore},
	{HumanFeed, record.TeleopNetScore},
	{Processor, record.TeleopAlgaeProcessor},
	{Barge, record.TeleopAlgaeNet},
}

type Teleop struct {
	*scoring
	rings RingSelector
	now   func() time.Time

	cycleStart time.Time
	timing     bool
}

func NewTeleop(store *record.Store, policy UndoPolicy, rings RingSelector, now func() time.Time) *Teleop {
	if now == nil {
		now = time.Now
	}
	return &Teleop{scoring: newScoring(store, policy, teleopBindings), rings: rings, now: now}
}

func (t *Teleop) Rings() RingSelector { return t.rings }

func (t *Teleop) PressReef(dx, dy float64) (Target, error) {
	target, err := t.rings.Resolve(dx, dy)
	if err != nil {
		return 0, err
	}
	return target, t.Select(target)
}

func (t *Teleop) IncrementPenalties() {
	t.store.Merge(record.Partial{Penalties: record.Set(t.current.Penalties + 1)})
}

// DecrementPenalties never goes below zero.
func (t *Teleop) DecrementPenalties() {
	t.store.Merge(record.Partial{Penalties: record.Set(max(0, t.current.Penalties-1))})
}

func (t *Teleop) TogglePlayedDefense() {
	t.store.Merge(record.Partial{PlayedDefense: record.Set(!t.current.PlayedDefense)})
}

func (t *Teleop) ToggleRobotDisabled() {
	t.store.Merge(record.Partial{RobotDisabled: record.Set(!t.current.RobotDisabled)})
}

// StartCycle starts the cycle stopwatch; a running stopwatch restarts.
func (t *Teleop) StartCycle() {
	t.cycleStart = t.now()
	t.timing = true
}

func (t *Teleop) Timing() bool { return t.timing }

// Elapsed is the time on the running stopwatch, or zero.
func (t *Teleop) Elapsed() time.Duration {
	if !t.timing {
		return 0
	}
	return t.now().Sub(t.cycleStart)
}

// StopCycle appends the elapsed cycle to the record. Without a running
// stopwatch it does nothing.
func (t *Teleop) StopCycle() (time.Duration, bool) {
	if !t.timing {
		return 0, false
	}
	elapsed := t.now().Sub(t.cycleStart)
	t.timing = false
	cycles := append(append([]float64(nil), t.current.ScoringCycles...), elapsed.Seconds())
	t.store.Merge(record.Partial{ScoringCycles: &cycles})
	return elapsed, true
}
