package stages

import (
	"strconv"

	"github.com/Nydauron/reefscout/input"
	"github.com/Nydauron/reefscout/record"
)

// MaxInitials matches the scouter field size in the catalog.
const MaxInitials = 5

// FieldImage is the rendered size of the field picture clicks are made on.
type FieldImage struct {
	Width  float64
	Height float64
}

func (f FieldImage) Contains(x, y float64) bool {
	return x >= 0 && x <= f.Width && y >= 0 && y <= f.Height
}

// Schedule looks up the team in a robot slot for a match.
type Schedule interface {
	TeamFor(match int, pos record.RobotPosition) (uint, bool)
}

type Prematch struct {
	store    *record.Store
	image    FieldImage
	schedule Schedule
	current  record.MatchRecord
	stop     func()
}

func NewPrematch(store *record.Store, image FieldImage, schedule Schedule) *Prematch {
	p := &Prematch{store: store, image: image, schedule: schedule, current: store.Record()}
	p.stop = store.Subscribe(func(r record.MatchRecord) { p.current = r })
	return p
}

func (p *Prematch) Close() { p.stop() }

// Record is the prematch view of the store, re-seeded on every store change.
func (p *Prematch) Record() record.MatchRecord { return p.current }

func (p *Prematch) Image() FieldImage { return p.image }

func (p *Prematch) SetScouterInitials(s string) {
	p.store.Merge(record.Partial{ScouterInitials: record.Set(input.Initials(s, MaxInitials))})
}

func (p *Prematch) SetEvent(s string) {
	p.store.Merge(record.Partial{Event: record.Set(s)})
}

func (p *Prematch) SetMatchLevel(l record.MatchLevel) {
	p.store.Merge(record.Partial{MatchLevel: record.Set(l)})
}

func (p *Prematch) SetMatchNumber(s string) {
	n := input.Digits(s)
	update := record.Partial{MatchNumber: &n}
	p.fillTeam(&update, n, p.current.RobotPosition)
	p.store.Merge(update)
}

func (p *Prematch) SetTeamNumber(s string) {
	p.store.Merge(record.Partial{TeamNumber: record.Set(input.Digits(s))})
}

func (p *Prematch) SetRobotPosition(pos record.RobotPosition) {
	update := record.Partial{RobotPosition: &pos}
	p.fillTeam(&update, p.current.MatchNumber, pos)
	p.store.Merge(update)
}

func (p *Prematch) fillTeam(update *record.Partial, match string, pos record.RobotPosition) {
	if p.schedule == nil {
		return
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return
	}
	if team, ok := p.schedule.TeamFor(n, pos); ok {
		update.TeamNumber = record.Set(strconv.FormatUint(uint64(team), 10))
	}
}

// ClickField records the starting position for the robot's alliance. Clicks
// outside the image or before a robot slot is chosen are ignored; the
// function reports whether the click was recorded.
func (p *Prematch) ClickField(x, y float64) bool {
	if !p.image.Contains(x, y) {
		return false
	}
	pt := &record.Point{X: x, Y: y}
	switch p.current.RobotPosition.Alliance() {
	case record.Red:
		p.store.Merge(record.Partial{RedPoint: pt})
	case record.Blue:
		p.store.Merge(record.Partial{BluePoint: pt})
	default:
		return false
	}
	return true
}
