package input

import (
	"github.com/Nydauron/reefscout/record"
)

var matchLevelMapping = map[string]record.MatchLevel{
	"Q":              record.Qualification,
	"QM":             record.Qualification,
	"QUALS":          record.Qualification,
	"QUALIFICATION":  record.Qualification,
	"QUALIFICATIONS": record.Qualification,
	"E":              record.Elimination,
	"EF":             record.Elimination,
	"QF":             record.Elimination,
	"SF":             record.Elimination,
	"F":              record.Elimination,
	"ELIMS":          record.Elimination,
	"ELIMINATION":    record.Elimination,
	"ELIMINATIONS":   record.Elimination,
	"PLAYOFF":        record.Elimination,
	"PLAYOFFS":       record.Elimination,
}

var robotPositionMapping = map[string]record.RobotPosition{
	"R1":     record.Red1,
	"R2":     record.Red2,
	"R3":     record.Red3,
	"B1":     record.Blue1,
	"B2":     record.Blue2,
	"B3":     record.Blue3,
	"RED1":   record.Red1,
	"RED2":   record.Red2,
	"RED3":   record.Red3,
	"BLUE1":  record.Blue1,
	"BLUE2":  record.Blue2,
	"BLUE3":  record.Blue3,
	"RED-1":  record.Red1,
	"RED-2":  record.Red2,
	"RED-3":  record.Red3,
	"BLUE-1": record.Blue1,
	"BLUE-2": record.Blue2,
	"BLUE-3": record.Blue3,
}

var climbStatusMapping = map[string]record.ClimbStatus{
	"NA":            record.ClimbNotAttempted,
	"NOT_ATTEMPTED": record.ClimbNotAttempted,
	"NOT ATTEMPTED": record.ClimbNotAttempted,
	"FAIL":          record.ClimbFailed,
	"FAILED":        record.ClimbFailed,
	"SUCCESS":       record.ClimbSuccessful,
	"SUCCESSFUL":    record.ClimbSuccessful,
}

var coralLocationMapping = map[string]record.CoralLocation{
	"":          record.CoralLocationNone,
	"NONE":      record.CoralLocationNone,
	"BARGE":     record.CoralLocationBarge,
	"PROCESSOR": record.CoralLocationProcessor,
	"BOTH":      record.CoralLocationBoth,
}
