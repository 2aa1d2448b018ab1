package record

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

var ErrInvalidRecord = errors.New("invalid match record")

func (p RobotPosition) Valid() bool {
	return p.Alliance() != NoAlliance && p.Station() != 0
}

// Validate reports every field of a record read from outside the wizard
// that the wizard itself could never have produced.
func (r MatchRecord) Validate() error {
	var errs []error
	switch r.MatchLevel {
	case MatchLevelUnset, Qualification, Elimination:
	default:
		errs = append(errs, fmt.Errorf("matchLevel %q is not qualification or elimination", r.MatchLevel))
	}
	if r.RobotPosition != PositionUnset && !r.RobotPosition.Valid() {
		errs = append(errs, fmt.Errorf("robotPosition %q is not a driver station", r.RobotPosition))
	}
	switch r.CoralScoredLocation {
	case CoralLocationNone, CoralLocationBarge, CoralLocationProcessor, CoralLocationBoth:
	default:
		errs = append(errs, fmt.Errorf("coralScoredLocation %q is unknown", r.CoralScoredLocation))
	}
	for name, c := range map[string]ClimbStatus{"deepClimb": r.DeepClimb, "shallowClimb": r.ShallowClimb, "parked": r.Parked} {
		if !slices.Contains(ClimbStatuses, c) {
			errs = append(errs, fmt.Errorf("%s %q is unknown", name, c))
		}
	}
	for _, f := range SequenceFields {
		for i, o := range r.Sequence(f) {
			if o != Scored && o != Missed {
				errs = append(errs, fmt.Errorf("%s[%d] is %d, expected 0 or 1", f, i, o))
			}
		}
	}
	for i, c := range r.ScoringCycles {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			errs = append(errs, fmt.Errorf("scoringCycles[%d] is %v", i, c))
		}
	}
	if r.Penalties < 0 {
		errs = append(errs, fmt.Errorf("penalties is %d", r.Penalties))
	}
	if n := utf8.RuneCountInString(r.Comments); n > MaxCommentLength {
		errs = append(errs, fmt.Errorf("comments are %d characters, at most %d allowed", n, MaxCommentLength))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, errors.Join(errs...))
}
