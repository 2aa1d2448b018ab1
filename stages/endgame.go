package stages

import (
	"github.com/Nydauron/reefscout/input"
	"github.com/Nydauron/reefscout/record"
)

type Endgame struct {
	store   *record.Store
	current record.MatchRecord
	stop    func()
}

func NewEndgame(store *record.Store) *Endgame {
	e := &Endgame{store: store, current: store.Record()}
	e.stop = store.Subscribe(func(r record.MatchRecord) { e.current = r })
	return e
}

func (e *Endgame) Close() { e.stop() }

func (e *Endgame) Record() record.MatchRecord { return e.current }

func (e *Endgame) SetDeepClimb(s record.ClimbStatus) {
	e.store.Merge(record.Partial{DeepClimb: &s})
}

func (e *Endgame) SetShallowClimb(s record.ClimbStatus) {
	e.store.Merge(record.Partial{ShallowClimb: &s})
}

func (e *Endgame) SetParked(s record.ClimbStatus) {
	e.store.Merge(record.Partial{Parked: &s})
}

func (e *Endgame) SetComments(s string) {
	e.store.Merge(record.Partial{Comments: record.Set(input.Clamp(s, record.MaxCommentLength))})
}

func (e *Endgame) SetRedAllianceScore(s string) {
	e.store.Merge(record.Partial{RedAllianceScore: record.Set(input.Digits(s))})
}

func (e *Endgame) SetBlueAllianceScore(s string) {
	e.store.Merge(record.Partial{BlueAllianceScore: record.Set(input.Digits(s))})
}
