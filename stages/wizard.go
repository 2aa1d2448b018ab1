package stages

import (
	"fmt"
	"time"

	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/record"
)

type Step int

const (
	StepPrematch Step = iota
	StepAutonomous
	StepTeleop
	StepEndgame
	StepExport
)

var Steps = []Step{StepPrematch, StepAutonomous, StepTeleop, StepEndgame, StepExport}

func (s Step) String() string {
	switch s {
	case StepPrematch:
		return "Prematch"
	case StepAutonomous:
		return "Autonomous"
	case StepTeleop:
		return "Teleop"
	case StepEndgame:
		return "Endgame"
	case StepExport:
		return "Export"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

type Options struct {
	Image    FieldImage
	Rings    RingSelector
	Undo     UndoPolicy
	Encoder  export.Encoder
	Schedule Schedule
	Now      func() time.Time
}

// Wizard owns the record store for one scouting session and the five stages
// that write to it.
type Wizard struct {
	Store      *record.Store
	Prematch   *Prematch
	Autonomous *Autonomous
	Teleop     *Teleop
	Endgame    *Endgame
	Export     *Export

	step Step
}

func NewWizard(opts Options) *Wizard {
	store := record.NewStore(record.Defaults())
	return &Wizard{
		Store:      store,
		Prematch:   NewPrematch(store, opts.Image, opts.Schedule),
		Autonomous: NewAutonomous(store, opts.Undo, opts.Rings, opts.Image),
		Teleop:     NewTeleop(store, opts.Undo, opts.Rings, opts.Now),
		Endgame:    NewEndgame(store),
		Export:     NewExport(store, opts.Encoder),
	}
}

func (w *Wizard) Step() Step { return w.step }

// Next advances one stage. Every stage writes to the store as the scout acts,
// so the next stage always starts from the complete record.
func (w *Wizard) Next() bool {
	if w.step >= StepExport {
		return false
	}
	w.step++
	return true
}

func (w *Wizard) Back() bool {
	if w.step <= StepPrematch {
		return false
	}
	w.step--
	return true
}

func (w *Wizard) GoTo(s Step) {
	if s >= StepPrematch && s <= StepExport {
		w.step = s
	}
}

// Finish exports and starts the next match from the prematch stage.
func (w *Wizard) Finish() string {
	payload := w.Export.Payload()
	w.Export.ExportAndClear()
	w.step = StepPrematch
	return payload
}

func (w *Wizard) Close() {
	w.Prematch.Close()
	w.Autonomous.Close()
	w.Teleop.Close()
	w.Endgame.Close()
	w.Export.Close()
}
