package record

// Store owns the match record for a scouting session. It has a single writer
// at a time and is not safe for concurrent use.
type Store struct {
	current   MatchRecord
	version   uint64
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(MatchRecord)
}

func NewStore(initial MatchRecord) *Store {
	return &Store{current: initial.Clone()}
}

// Record returns a copy of the current record.
func (s *Store) Record() MatchRecord {
	return s.current.Clone()
}

// Version increments on every Merge and Replace.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) Merge(p Partial) {
	s.current = p.Apply(s.current)
	s.changed()
}

func (s *Store) Replace(r MatchRecord) {
	s.current = r.Clone()
	s.changed()
}

// Subscribe registers fn to run after every write, in subscription order.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(MatchRecord)) func() {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) changed() {
	s.version++
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	for _, l := range snapshot {
		l.fn(s.current.Clone())
	}
}
