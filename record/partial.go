package record

import "slices"

// Partial is a set of field updates. Nil fields are left untouched by a merge.
// Sequences replace the stored sequence wholesale; to append or pop, the
// caller supplies the full resulting sequence.
type Partial struct {
	ScouterInitials *string
	Event           *string
	MatchLevel      *MatchLevel
	MatchNumber     *string
	TeamNumber      *string
	RobotPosition   *RobotPosition

	RedPoint              *Point
	BluePoint             *Point
	AutonScoringPositions *[]Point
	CoralScoredLocation   *CoralLocation

	Sequences map[SequenceField]Sequence

	ScoringCycles *[]float64
	Penalties     *int
	PlayedDefense *bool
	RobotDisabled *bool

	DeepClimb         *ClimbStatus
	ShallowClimb      *ClimbStatus
	Parked            *ClimbStatus
	Comments          *string
	RedAllianceScore  *string
	BlueAllianceScore *string
}

// Set returns a pointer to v for building a Partial.
func Set[T any](v T) *T {
	return &v
}

// WithSequence is shorthand for a partial that replaces a single sequence.
func WithSequence(f SequenceField, s Sequence) Partial {
	return Partial{Sequences: map[SequenceField]Sequence{f: s}}
}

// Apply merges p into a copy of r and returns it. r is not modified.
func (p Partial) Apply(r MatchRecord) MatchRecord {
	out := r.Clone()
	assign(&out.ScouterInitials, p.ScouterInitials)
	assign(&out.Event, p.Event)
	assign(&out.MatchLevel, p.MatchLevel)
	assign(&out.MatchNumber, p.MatchNumber)
	assign(&out.TeamNumber, p.TeamNumber)
	assign(&out.RobotPosition, p.RobotPosition)
	if p.RedPoint != nil {
		out.RedPoint = clonePoint(p.RedPoint)
	}
	if p.BluePoint != nil {
		out.BluePoint = clonePoint(p.BluePoint)
	}
	if p.AutonScoringPositions != nil {
		out.AutonScoringPositions = slices.Clone(*p.AutonScoringPositions)
	}
	assign(&out.CoralScoredLocation, p.CoralScoredLocation)
	for f, s := range p.Sequences {
		if ref := out.sequenceRef(f); ref != nil {
			*ref = slices.Clone(s)
		}
	}
	if p.ScoringCycles != nil {
		out.ScoringCycles = slices.Clone(*p.ScoringCycles)
	}
	assign(&out.Penalties, p.Penalties)
	assign(&out.PlayedDefense, p.PlayedDefense)
	assign(&out.RobotDisabled, p.RobotDisabled)
	assign(&out.DeepClimb, p.DeepClimb)
	assign(&out.ShallowClimb, p.ShallowClimb)
	assign(&out.Parked, p.Parked)
	assign(&out.Comments, p.Comments)
	assign(&out.RedAllianceScore, p.RedAllianceScore)
	assign(&out.BlueAllianceScore, p.BlueAllianceScore)
	return out
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
