// Package record holds the match record accumulated across the scouting
// wizard and the store that owns it.
package record

import (
	"slices"
	"strconv"
	"strings"
)

type MatchLevel string

const (
	MatchLevelUnset MatchLevel = ""
	Qualification   MatchLevel = "qualification"
	Elimination     MatchLevel = "elimination"
)

type Alliance int

const (
	NoAlliance Alliance = iota
	Red
	Blue
)

func (a Alliance) String() string {
	switch a {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

// RobotPosition is the driver station slot of the scouted robot, e.g. "r1" or "b3".
type RobotPosition string

const (
	PositionUnset RobotPosition = ""
	Red1          RobotPosition = "r1"
	Red2          RobotPosition = "r2"
	Red3          RobotPosition = "r3"
	Blue1         RobotPosition = "b1"
	Blue2         RobotPosition = "b2"
	Blue3         RobotPosition = "b3"
)

var RobotPositions = []RobotPosition{Red1, Red2, Red3, Blue1, Blue2, Blue3}

// Alliance is derived from the slot prefix.
func (p RobotPosition) Alliance() Alliance {
	switch {
	case strings.HasPrefix(string(p), "r"):
		return Red
	case strings.HasPrefix(string(p), "b"):
		return Blue
	default:
		return NoAlliance
	}
}

// Station returns the 1-based station number within the alliance, or 0.
func (p RobotPosition) Station() int {
	if len(p) != 2 {
		return 0
	}
	n, err := strconv.Atoi(string(p[1:]))
	if err != nil || n < 1 || n > 3 {
		return 0
	}
	return n
}

type ClimbStatus string

const (
	ClimbNotAttempted ClimbStatus = "not_attempted"
	ClimbFailed       ClimbStatus = "failed"
	ClimbSuccessful   ClimbStatus = "successful"
)

var ClimbStatuses = []ClimbStatus{ClimbNotAttempted, ClimbFailed, ClimbSuccessful}

type CoralLocation string

const (
	CoralLocationNone      CoralLocation = ""
	CoralLocationBarge     CoralLocation = "barge"
	CoralLocationProcessor CoralLocation = "processor"
	CoralLocationBoth      CoralLocation = "both"
)

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// MaxCommentLength is counted in runes.
const MaxCommentLength = 60

type MatchRecord struct {
	ScouterInitials string        `json:"scouterInitials" yaml:"scouterInitials"`
	Event           string        `json:"event" yaml:"event"`
	MatchLevel      MatchLevel    `json:"matchLevel" yaml:"matchLevel"`
	MatchNumber     string        `json:"matchNumber" yaml:"matchNumber"`
	TeamNumber      string        `json:"teamNumber" yaml:"teamNumber"`
	RobotPosition   RobotPosition `json:"robotPosition" yaml:"robotPosition"`

	RedPoint              *Point  `json:"redPoint" yaml:"redPoint"`
	BluePoint             *Point  `json:"bluePoint" yaml:"bluePoint"`
	AutonScoringPositions []Point `json:"autonScoringPositions" yaml:"autonScoringPositions"`

	CoralScoredLocation CoralLocation `json:"coralScoredLocation" yaml:"coralScoredLocation"`
	AutonCoralL1        Sequence      `json:"autonCoralL1" yaml:"autonCoralL1"`
	AutonCoralL2        Sequence      `json:"autonCoralL2" yaml:"autonCoralL2"`
	AutonCoralL3        Sequence      `json:"autonCoralL3" yaml:"autonCoralL3"`
	AutonCoralL4        Sequence      `json:"autonCoralL4" yaml:"autonCoralL4"`
	AutonProcessorScore Sequence      `json:"autonProcessorScore" yaml:"autonProcessorScore"`
	AutonNetScore       Sequence      `json:"autonNetScore" yaml:"autonNetScore"`
	Mobility            Sequence      `json:"mobility" yaml:"mobility"`
	CrossedLine         Sequence      `json:"crossedLine" yaml:"crossedLine"`

	TeleopCoralL1        Sequence  `json:"teleopCoralL1" yaml:"teleopCoralL1"`
	TeleopCoralL2        Sequence  `json:"teleopCoralL2" yaml:"teleopCoralL2"`
	TeleopCoralL3        Sequence  `json:"teleopCoralL3" yaml:"teleopCoralL3"`
	TeleopCoralL4        Sequence  `json:"teleopCoralL4" yaml:"teleopCoralL4"`
	TeleopProcessorScore Sequence  `json:"teleopProcessorScore" yaml:"teleopProcessorScore"`
	TeleopNetScore       Sequence  `json:"teleopNetScore" yaml:"teleopNetScore"`
	TeleopAlgaeProcessor Sequence  `json:"teleopAlgaeProcessor" yaml:"teleopAlgaeProcessor"`
	TeleopAlgaeNet       Sequence  `json:"teleopAlgaeNet" yaml:"teleopAlgaeNet"`
	ScoringCycles        []float64 `json:"scoringCycles" yaml:"scoringCycles"`
	Penalties            int       `json:"penalties" yaml:"penalties"`
	PlayedDefense        bool      `json:"playedDefense" yaml:"playedDefense"`
	RobotDisabled        bool      `json:"robotDisabled" yaml:"robotDisabled"`

	DeepClimb         ClimbStatus `json:"deepClimb" yaml:"deepClimb"`
	ShallowClimb      ClimbStatus `json:"shallowClimb" yaml:"shallowClimb"`
	Parked            ClimbStatus `json:"parked" yaml:"parked"`
	Comments          string      `json:"comments" yaml:"comments"`
	RedAllianceScore  string      `json:"redAllianceScore" yaml:"redAllianceScore"`
	BlueAllianceScore string      `json:"blueAllianceScore" yaml:"blueAllianceScore"`
}

// Defaults returns the record a scouting session starts with.
func Defaults() MatchRecord {
	return MatchRecord{
		DeepClimb:    ClimbNotAttempted,
		ShallowClimb: ClimbNotAttempted,
		Parked:       ClimbNotAttempted,
	}
}

// NextMatch returns the record for the following match: defaults, except the
// scouter and robot slot carry over and the match number advances by one.
func NextMatch(prev MatchRecord) MatchRecord {
	next := Defaults()
	next.ScouterInitials = prev.ScouterInitials
	next.RobotPosition = prev.RobotPosition
	if n, err := strconv.Atoi(strings.TrimSpace(prev.MatchNumber)); err == nil && n >= 0 {
		next.MatchNumber = strconv.Itoa(n + 1)
	}
	return next
}

// ActivePoint is the starting point of the alliance the robot slot belongs to.
func (r MatchRecord) ActivePoint() *Point {
	switch r.RobotPosition.Alliance() {
	case Red:
		return r.RedPoint
	case Blue:
		return r.BluePoint
	default:
		return nil
	}
}

func (r MatchRecord) Sequence(f SequenceField) Sequence {
	if p := r.sequenceRef(f); p != nil {
		return *p
	}
	return nil
}

// Clone returns a copy that shares no backing arrays with r.
func (r MatchRecord) Clone() MatchRecord {
	c := r
	c.RedPoint = clonePoint(r.RedPoint)
	c.BluePoint = clonePoint(r.BluePoint)
	c.AutonScoringPositions = slices.Clone(r.AutonScoringPositions)
	c.ScoringCycles = slices.Clone(r.ScoringCycles)
	for _, f := range SequenceFields {
		*c.sequenceRef(f) = slices.Clone(r.Sequence(f))
	}
	return c
}

func clonePoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (r *MatchRecord) sequenceRef(f SequenceField) *Sequence {
	switch f {
	case AutonCoralL1:
		return &r.AutonCoralL1
	case AutonCoralL2:
		return &r.AutonCoralL2
	case AutonCoralL3:
		return &r.AutonCoralL3
	case AutonCoralL4:
		return &r.AutonCoralL4
	case AutonProcessorScore:
		return &r.AutonProcessorScore
	case AutonNetScore:
		return &r.AutonNetScore
	case Mobility:
		return &r.Mobility
	case CrossedLine:
		return &r.CrossedLine
	case TeleopCoralL1:
		return &r.TeleopCoralL1
	case TeleopCoralL2:
		return &r.TeleopCoralL2
	case TeleopCoralL3:
		return &r.TeleopCoralL3
	case TeleopCoralL4:
		return &r.TeleopCoralL4
	case TeleopProcessorScore:
		return &r.TeleopProcessorScore
	case TeleopNetScore:
		return &r.TeleopNetScore
	case TeleopAlgaeProcessor:
		return &r.TeleopAlgaeProcessor
	case TeleopAlgaeNet:
		return &r.TeleopAlgaeNet
	default:
		return nil
	}
}
