package stages

import (
	"github.com/Nydauron/reefscout/record"
)

var autonBindings = []binding{
	{CoralL1, record.AutonCoralL1},
	{CoralL2, record.AutonCoralL2},
	{CoralL3, record.AutonCoralL3},
	{CoralL4, record.AutonCoralL4},
	{FloorPickup, record.AutonProcessorScore},
	{HumanFeed, record.AutonNetScore},
	{Processor, record.Mobility},
	{Barge, record.CrossedLine},
}

type Autonomous struct {
	*scoring
	rings RingSelector
	image FieldImage
}

func NewAutonomous(store *record.Store, policy UndoPolicy, rings RingSelector, image FieldImage) *Autonomous {
	return &Autonomous{scoring: newScoring(store, policy, autonBindings), rings: rings, image: image}
}

func (a *Autonomous) Rings() RingSelector { return a.rings }

// PressReef resolves a press on the reef control, relative to its center,
// and opens the prompt for that coral level.
func (a *Autonomous) PressReef(dx, dy float64) (Target, error) {
	t, err := a.rings.Resolve(dx, dy)
	if err != nil {
		return 0, err
	}
	return t, a.Select(t)
}

func (a *Autonomous) SetCoralScoredLocation(loc record.CoralLocation) {
	a.store.Merge(record.Partial{CoralScoredLocation: &loc})
}

// AddScoringPosition records where on the field the robot scored from.
// Clicks outside the field image are ignored.
func (a *Autonomous) AddScoringPosition(x, y float64) bool {
	if !a.image.Contains(x, y) {
		return false
	}
	next := append(append([]record.Point(nil), a.current.AutonScoringPositions...), record.Point{X: x, Y: y})
	a.store.Merge(record.Partial{AutonScoringPositions: &next})
	return true
}

func (a *Autonomous) UndoScoringPosition() {
	positions := a.current.AutonScoringPositions
	if len(positions) == 0 {
		return
	}
	next := append([]record.Point(nil), positions[:len(positions)-1]...)
	a.store.Merge(record.Partial{AutonScoringPositions: &next})
}
