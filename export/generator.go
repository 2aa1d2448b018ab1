// Package export turns a match record into the text payload that is shown as
// a QR code.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Nydauron/reefscout/record"
)

type Entry struct {
	Key   string
	Value any
}

// Payload is an ordered JSON object.
type Payload []Entry

func (p Payload) Get(key string) (any, bool) {
	for _, e := range p {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalCompact(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := marshalCompact(e.Value)
		if err != nil {
			return nil, fmt.Errorf("payload key %q: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// String is the exact text that goes into the QR code.
func (p Payload) String() string {
	raw, err := p.MarshalJSON()
	if err != nil {
		// Encode only produces strings, integers and finite floats.
		panic(fmt.Sprintf("payload cannot be marshalled: %v", err))
	}
	return string(raw)
}

// Indented is the payload pretty-printed for a data preview.
func (p Payload) Indented() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(p.String()), "", "  "); err != nil {
		return p.String()
	}
	return buf.String()
}

type Encoder struct {
	Strategy Strategy
}

// Encode is a pure function of r.
func (e Encoder) Encode(r record.MatchRecord) Payload {
	p := Payload{
		{KeyScouter, r.ScouterInitials},
		{KeyEvent, r.Event},
		{KeyLevel, level(r.MatchLevel)},
		{KeyMatch, r.MatchNumber},
		{KeyTeam, r.TeamNumber},
		{KeyRobot, robot(r.RobotPosition)},
		{KeyStartingPos, startingPosition(r)},
		{KeyAutonPositions, points(r.AutonScoringPositions)},
		{KeyCoralLocation, coralLocation(r.CoralScoredLocation)},
	}
	for _, k := range autonSequenceKeys {
		p = append(p, Entry{k.Key, e.sequence(r.Sequence(k.Field))})
	}
	p = append(p, Entry{KeyStartLine, startLine(r.CrossedLine)})
	for _, k := range teleopSequenceKeys {
		p = append(p, Entry{k.Key, e.sequence(r.Sequence(k.Field))})
	}
	p = append(p,
		Entry{KeyCycles, rounded(r.ScoringCycles)},
		Entry{KeyPenalties, r.Penalties},
		Entry{KeyDefense, flag(r.PlayedDefense)},
		Entry{KeyDied, flag(r.RobotDisabled)},
		Entry{KeyDeepClimb, climb(r.DeepClimb)},
		Entry{KeyShallowClimb, climb(r.ShallowClimb)},
		Entry{KeyParked, climb(r.Parked)},
		Entry{KeyComments, r.Comments},
		Entry{KeyRedScores, r.RedAllianceScore},
		Entry{KeyBlueScores, r.BlueAllianceScore},
	)
	return p
}

func (e Encoder) sequence(s record.Sequence) any {
	switch e.Strategy {
	case Verbatim:
		out := make([]int, len(s))
		for i, o := range s {
			out[i] = int(o)
		}
		return out
	default:
		return Summarize(s)
	}
}

// Summarize renders a sequence as "successes/total".
func Summarize(s record.Sequence) string {
	return s.Summary().String()
}

func level(l record.MatchLevel) string {
	switch l {
	case record.Qualification:
		return "quals"
	case record.Elimination:
		return "elims"
	default:
		return ""
	}
}

func robot(p record.RobotPosition) string {
	switch p {
	case record.Red1, record.Red2, record.Red3, record.Blue1, record.Blue2, record.Blue3:
		return string(p)
	default:
		return ""
	}
}

func climb(c record.ClimbStatus) string {
	switch c {
	case record.ClimbNotAttempted:
		return "na"
	case record.ClimbFailed:
		return "fail"
	case record.ClimbSuccessful:
		return "success"
	default:
		return ""
	}
}

func coralLocation(c record.CoralLocation) string {
	switch c {
	case record.CoralLocationBarge, record.CoralLocationProcessor, record.CoralLocationBoth:
		return string(c)
	default:
		return ""
	}
}

func startLine(crossed record.Sequence) int {
	if len(crossed) > 0 && crossed[0] == record.Scored {
		return 1
	}
	return 0
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func startingPosition(r record.MatchRecord) *point {
	p := r.ActivePoint()
	if p == nil {
		return nil
	}
	return &point{X: round3(p.X), Y: round3(p.Y)}
}

func points(ps []record.Point) []point {
	out := make([]point, len(ps))
	for i, p := range ps {
		out[i] = point{X: round3(p.X), Y: round3(p.Y)}
	}
	return out
}

func rounded(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = round3(v)
	}
	return out
}

// round3 rounds to three decimals. Non-finite values become 0 so the payload
// always marshals.
func round3(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*1000) / 1000
}
