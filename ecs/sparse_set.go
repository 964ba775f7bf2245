package ecs

// SparseSet maps live entities to values with dense iteration. Lookups match
// the full handle, so a value stored for an older generation of a slot is
// not returned for the new occupant.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

func (s *SparseSet[T]) slot(e Entity) (int, bool) {
	if s == nil || !e.Valid() {
		return 0, false
	}
	idx := int(e.id()) - 1
	if idx >= len(s.sparse) {
		return 0, false
	}
	d := s.sparse[idx]
	if d < 0 || d >= len(s.denseEntities) || s.denseEntities[d] != e {
		return 0, false
	}
	return d, true
}

// Has returns true if the entity exists in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	_, ok := s.slot(e)
	return ok
}

// Get returns the value for e.
func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	var zero T
	d, ok := s.slot(e)
	if !ok {
		return zero, false
	}
	return s.denseValues[d], true
}

// Set inserts or updates the value for e.
func (s *SparseSet[T]) Set(e Entity, v T) {
	if s == nil || !e.Valid() {
		return
	}
	if d, ok := s.slot(e); ok {
		s.denseValues[d] = v
		return
	}
	idx := int(e.id()) - 1
	for idx >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if old := s.sparse[idx]; old >= 0 && old < len(s.denseEntities) && s.denseEntities[old].id() == e.id() {
		// stale generation still occupies the slot
		s.removeDense(old)
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[idx] = len(s.denseEntities) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	d, ok := s.slot(e)
	if !ok {
		return false
	}
	s.removeDense(d)
	return true
}

func (s *SparseSet[T]) removeDense(d int) {
	last := len(s.denseEntities) - 1
	removed := s.denseEntities[d]
	moved := s.denseEntities[last]

	s.denseEntities[d] = moved
	s.denseValues[d] = s.denseValues[last]
	s.sparse[int(moved.id())-1] = d

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[int(removed.id())-1] = -1
}

func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity list. Callers must not modify it.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

// Each visits entries in dense order. Removing the visited entry from inside
// f is not supported; collect first.
func (s *SparseSet[T]) Each(f func(Entity, T)) {
	if s == nil || f == nil {
		return
	}
	for i, e := range s.denseEntities {
		f(e, s.denseValues[i])
	}
}

func (s *SparseSet[T]) Clear() {
	if s == nil {
		return
	}
	s.denseEntities = nil
	s.denseValues = nil
	s.sparse = nil
}
