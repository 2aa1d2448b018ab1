// Package stages holds the per-stage logic of the scouting wizard: how scout
// actions turn into writes against the shared record store.
package stages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nydauron/reefscout/record"
)

var (
	// ErrInvalidBulkEdit rejects a manual "successes/total" entry. The
	// sequence is left as it was.
	ErrInvalidBulkEdit = errors.New("invalid bulk edit")
	ErrNoTarget        = errors.New("no scoring target at that position")
	ErrUnknownTarget   = errors.New("target is not scored in this stage")
)

// MaxBulkTotal bounds the total accepted by a manual bulk edit.
const MaxBulkTotal = 200

// Target is a control the scout presses to record a scoring attempt.
type Target int

const (
	CoralL1 Target = iota
	CoralL2
	CoralL3
	CoralL4
	FloorPickup
	HumanFeed
	Processor
	Barge
)

var Targets = []Target{CoralL1, CoralL2, CoralL3, CoralL4, FloorPickup, HumanFeed, Processor, Barge}

func (t Target) String() string {
	switch t {
	case CoralL1:
		return "L1"
	case CoralL2:
		return "L2"
	case CoralL3:
		return "L3"
	case CoralL4:
		return "L4"
	case FloorPickup:
		return "Floor Pickup"
	case HumanFeed:
		return "Human Feed"
	case Processor:
		return "Processor"
	case Barge:
		return "Barge"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// UndoPolicy picks which sequence undo pops from.
type UndoPolicy int

const (
	// UndoLongest pops the longest tracked sequence; ties go to the field
	// declared first.
	UndoLongest UndoPolicy = iota
	// UndoMostRecent pops the sequence appended to most recently in this
	// stage, falling back to UndoLongest when there is no such history.
	UndoMostRecent
)

func ParseUndoPolicy(s string) (UndoPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "longest":
		return UndoLongest, nil
	case "recent", "most-recent":
		return UndoMostRecent, nil
	default:
		return UndoLongest, fmt.Errorf("unknown undo policy %q (want longest or recent)", s)
	}
}

func (p UndoPolicy) String() string {
	if p == UndoMostRecent {
		return "recent"
	}
	return "longest"
}

// binding ties a target to the sequence field it appends to.
type binding struct {
	target Target
	field  record.SequenceField
}

// scoring implements append-outcome, undo-last and manual bulk edit over a
// fixed, ordered set of sequence fields.
type scoring struct {
	store    *record.Store
	bindings []binding
	policy   UndoPolicy

	current   record.MatchRecord
	sequences map[record.SequenceField]record.Sequence
	pending   *Target
	history   []record.SequenceField
	stop      func()
}

func newScoring(store *record.Store, policy UndoPolicy, bindings []binding) *scoring {
	s := &scoring{store: store, bindings: bindings, policy: policy}
	s.seed(store.Record())
	s.stop = store.Subscribe(s.seed)
	return s
}

func (s *scoring) Close() { s.stop() }

// Record is the stage's view of the store, re-seeded on every store change.
func (s *scoring) Record() record.MatchRecord { return s.current }

// seed copies the stage's sequences out of r. Append history that no longer
// matches the stored lengths (e.g. after a clear) is dropped.
func (s *scoring) seed(r record.MatchRecord) {
	s.current = r
	s.sequences = make(map[record.SequenceField]record.Sequence, len(s.bindings))
	for _, b := range s.bindings {
		s.sequences[b.field] = r.Sequence(b.field)
	}
	counts := map[record.SequenceField]int{}
	for _, f := range s.history {
		counts[f]++
	}
	for f, n := range counts {
		if len(s.sequences[f]) < n {
			s.history = nil
			break
		}
	}
}

func (s *scoring) field(t Target) (record.SequenceField, bool) {
	for _, b := range s.bindings {
		if b.target == t {
			return b.field, true
		}
	}
	return 0, false
}

// Fields lists the tracked sequence fields in declaration order.
func (s *scoring) Fields() []record.SequenceField {
	out := make([]record.SequenceField, len(s.bindings))
	for i, b := range s.bindings {
		out[i] = b.field
	}
	return out
}

func (s *scoring) FieldFor(t Target) (record.SequenceField, bool) {
	return s.field(t)
}

func (s *scoring) Sequence(f record.SequenceField) record.Sequence {
	return s.sequences[f]
}

// Select opens the success/failure prompt for t.
func (s *scoring) Select(t Target) error {
	if _, ok := s.field(t); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownTarget, t)
	}
	s.pending = &t
	return nil
}

// Pending is the target whose prompt is open.
func (s *scoring) Pending() (Target, bool) {
	if s.pending == nil {
		return 0, false
	}
	return *s.pending, true
}

func (s *scoring) Cancel() {
	s.pending = nil
}

// Respond appends o to the pending target's sequence and writes it to the
// store straight away. Without an open prompt it does nothing.
func (s *scoring) Respond(o record.Outcome) {
	if s.pending == nil {
		return
	}
	f, _ := s.field(*s.pending)
	s.pending = nil
	next := s.sequences[f].Append(o)
	s.history = append(s.history, f)
	s.store.Merge(record.WithSequence(f, next))
}

// Undo pops the last attempt of one tracked sequence. With every sequence
// empty it does nothing.
func (s *scoring) Undo() {
	f, ok := s.undoTarget()
	if !ok {
		return
	}
	s.store.Merge(record.WithSequence(f, s.sequences[f].Pop()))
}

func (s *scoring) undoTarget() (record.SequenceField, bool) {
	if s.policy == UndoMostRecent {
		for len(s.history) > 0 {
			f := s.history[len(s.history)-1]
			s.history = s.history[:len(s.history)-1]
			if len(s.sequences[f]) > 0 {
				return f, true
			}
		}
	}
	best, bestLen := record.SequenceField(0), 0
	for _, b := range s.bindings {
		if n := len(s.sequences[b.field]); n > bestLen {
			best, bestLen = b.field, n
		}
	}
	return best, bestLen > 0
}

// BulkEdit overwrites f with the sequence described by "successes/total".
func (s *scoring) BulkEdit(f record.SequenceField, text string) error {
	if _, ok := s.sequences[f]; !ok {
		return fmt.Errorf("%w: %v is not tracked here", ErrInvalidBulkEdit, f)
	}
	sum, err := record.ParseSummary(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBulkEdit, err)
	}
	if sum.Total > MaxBulkTotal {
		return fmt.Errorf("%w: total %d is above %d", ErrInvalidBulkEdit, sum.Total, MaxBulkTotal)
	}
	s.dropHistory(f)
	s.store.Merge(record.WithSequence(f, sum.Sequence()))
	return nil
}

func (s *scoring) dropHistory(f record.SequenceField) {
	kept := s.history[:0]
	for _, h := range s.history {
		if h != f {
			kept = append(kept, h)
		}
	}
	s.history = kept
}
