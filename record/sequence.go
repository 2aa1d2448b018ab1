package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Outcome is a single scoring attempt: 1 scored, 0 missed.
type Outcome int

const (
	Missed Outcome = 0
	Scored Outcome = 1
)

// Sequence is the ordered list of attempts for one scoring target. It only
// grows by Append and shrinks by Pop.
type Sequence []Outcome

// Append returns a new sequence; s is never written to.
func (s Sequence) Append(o Outcome) Sequence {
	next := make(Sequence, len(s), len(s)+1)
	copy(next, s)
	return append(next, o)
}

// Pop drops the most recent attempt. Popping an empty sequence returns it unchanged.
func (s Sequence) Pop() Sequence {
	if len(s) == 0 {
		return s
	}
	next := make(Sequence, len(s)-1)
	copy(next, s[:len(s)-1])
	return next
}

func (s Sequence) Summary() Summary {
	sum := Summary{Total: len(s)}
	for _, o := range s {
		if o == Scored {
			sum.Successes++
		}
	}
	return sum
}

// Summary is the successes/total statistic of a sequence.
type Summary struct {
	Successes int
	Total     int
}

var ErrMalformedSummary = errors.New("malformed successes/total")

// ParseSummary reads "s/t" where both are non-negative integers and s <= t.
func ParseSummary(text string) (Summary, error) {
	left, right, found := strings.Cut(strings.TrimSpace(text), "/")
	if !found {
		return Summary{}, fmt.Errorf("%w: missing '/' in %q", ErrMalformedSummary, text)
	}
	successes, err := strconv.ParseUint(strings.TrimSpace(left), 10, 31)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: successes: %v", ErrMalformedSummary, err)
	}
	total, err := strconv.ParseUint(strings.TrimSpace(right), 10, 31)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: total: %v", ErrMalformedSummary, err)
	}
	if successes > total {
		return Summary{}, fmt.Errorf("%w: %d successes out of %d", ErrMalformedSummary, successes, total)
	}
	return Summary{Successes: int(successes), Total: int(total)}, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("%d/%d", s.Successes, s.Total)
}

// Sequence expands the summary: Successes ones followed by misses up to Total.
func (s Summary) Sequence() Sequence {
	seq := make(Sequence, s.Total)
	for i := 0; i < s.Successes && i < s.Total; i++ {
		seq[i] = Scored
	}
	return seq
}

type SequenceField int

const (
	AutonCoralL1 SequenceField = iota
	AutonCoralL2
	AutonCoralL3
	AutonCoralL4
	AutonProcessorScore
	AutonNetScore
	Mobility
	CrossedLine
	TeleopCoralL1
	TeleopCoralL2
	TeleopCoralL3
	TeleopCoralL4
	TeleopProcessorScore
	TeleopNetScore
	TeleopAlgaeProcessor
	TeleopAlgaeNet
)

// SequenceFields lists every sequence field in declaration order.
var SequenceFields = []SequenceField{
	AutonCoralL1, AutonCoralL2, AutonCoralL3, AutonCoralL4,
	AutonProcessorScore, AutonNetScore, Mobility, CrossedLine,
	TeleopCoralL1, TeleopCoralL2, TeleopCoralL3, TeleopCoralL4,
	TeleopProcessorScore, TeleopNetScore, TeleopAlgaeProcessor, TeleopAlgaeNet,
}

var sequenceFieldNames = map[SequenceField]string{
	AutonCoralL1:         "autonCoralL1",
	AutonCoralL2:         "autonCoralL2",
	AutonCoralL3:         "autonCoralL3",
	AutonCoralL4:         "autonCoralL4",
	AutonProcessorScore:  "autonProcessorScore",
	AutonNetScore:        "autonNetScore",
	Mobility:             "mobility",
	CrossedLine:          "crossedLine",
	TeleopCoralL1:        "teleopCoralL1",
	TeleopCoralL2:        "teleopCoralL2",
	TeleopCoralL3:        "teleopCoralL3",
	TeleopCoralL4:        "teleopCoralL4",
	TeleopProcessorScore: "teleopProcessorScore",
	TeleopNetScore:       "teleopNetScore",
	TeleopAlgaeProcessor: "teleopAlgaeProcessor",
	TeleopAlgaeNet:       "teleopAlgaeNet",
}

// String returns the record field name.
func (f SequenceField) String() string {
	if name, ok := sequenceFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("SequenceField(%d)", int(f))
}
