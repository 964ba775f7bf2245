package ecs

// Store tracks entity generations and free slots. Destroying an entity bumps
// its slot generation so stale handles stop reporting alive even after the
// slot is reused.
type Store struct {
	gen   []generation
	alive []bool
	free  []entityID
	count int
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Create() Entity {
	if s == nil {
		return NoEntity
	}
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 1)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gen[id-1])
}

// Destroy reports whether e was alive.
func (s *Store) Destroy(e Entity) bool {
	if !s.Alive(e) {
		return false
	}
	idx := e.id() - 1
	s.alive[idx] = false
	s.gen[idx]++
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *Store) Alive(e Entity) bool {
	if s == nil || !e.Valid() {
		return false
	}
	idx := int(e.id()) - 1
	if idx >= len(s.gen) {
		return false
	}
	return s.alive[idx] && s.gen[idx] == e.generation()
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}
