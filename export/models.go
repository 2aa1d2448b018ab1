package export

import (
	"fmt"
	"strings"

	"github.com/Nydauron/reefscout/record"
)

// External payload keys, in the order they are written.
const (
	KeyScouter        = "scouter_name"
	KeyEvent          = "event"
	KeyLevel          = "level"
	KeyMatch          = "match_num"
	KeyTeam           = "team_num"
	KeyRobot          = "robot"
	KeyStartingPos    = "starting_pos"
	KeyAutonPositions = "auton_positions"
	KeyCoralLocation  = "coral_location"
	KeyStartLine      = "start_line"
	KeyCycles         = "cycles"
	KeyPenalties      = "penalties"
	KeyDefense        = "defense"
	KeyDied           = "died"
	KeyDeepClimb      = "deep_climb"
	KeyShallowClimb   = "shallow_climb"
	KeyParked         = "parked"
	KeyComments       = "comments"
	KeyRedScores      = "red_scores"
	KeyBlueScores     = "blue_scores"
)

type sequenceKey struct {
	Field record.SequenceField
	Key   string
}

var autonSequenceKeys = []sequenceKey{
	{record.AutonCoralL1, "L1_auton"},
	{record.AutonCoralL2, "L2_auton"},
	{record.AutonCoralL3, "L3_auton"},
	{record.AutonCoralL4, "L4_auton"},
	{record.AutonProcessorScore, "floor"},
	{record.AutonNetScore, "human_feed"},
	{record.Mobility, "processor"},
	{record.CrossedLine, "barge"},
}

var teleopSequenceKeys = []sequenceKey{
	{record.TeleopCoralL1, "L1_teleop"},
	{record.TeleopCoralL2, "L2_teleop"},
	{record.TeleopCoralL3, "L3_teleop"},
	{record.TeleopCoralL4, "L4_teleop"},
	{record.TeleopProcessorScore, "floor_teleop"},
	{record.TeleopNetScore, "human_teleop"},
	{record.TeleopAlgaeProcessor, "process_teleop"},
	{record.TeleopAlgaeNet, "barge_teleop"},
}

// SequenceKey returns the payload key a sequence field is written under.
func SequenceKey(f record.SequenceField) string {
	for _, table := range [][]sequenceKey{autonSequenceKeys, teleopSequenceKeys} {
		for _, k := range table {
			if k.Field == f {
				return k.Key
			}
		}
	}
	return ""
}

type Strategy int

const (
	// Aggregated writes each sequence as "successes/total".
	Aggregated Strategy = iota
	// Verbatim writes each sequence as an array of 0/1 in attempt order.
	Verbatim
)

func (s Strategy) String() string {
	switch s {
	case Aggregated:
		return "aggregated"
	case Verbatim:
		return "verbatim"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "aggregated", "agg":
		return Aggregated, nil
	case "verbatim", "raw":
		return Verbatim, nil
	default:
		return Aggregated, fmt.Errorf("unknown export strategy %q (want aggregated or verbatim)", s)
	}
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
