package engine

// Store is an ordered collection of entities.
// Entities are never removed mid-iteration: handlers mark them Dead and
// Sweep drops them once the tick is done.
type Store struct {
	items  []Entity
	nextID int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Spawn appends an entity, assigns it an ID and returns that ID.
func (s *Store) Spawn(e Entity) int {
	if s.nextID == 0 {
		s.nextID = 1
	}
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID
}

// Each calls fn for every live entity in insertion order.
// fn may set Dead on the entity it receives, or spawn new entities;
// entities spawned during Each are not visited until the next call.
func (s *Store) Each(fn func(e *Entity)) {
	n := len(s.items)
	for i := 0; i < n; i++ {
		if s.items[i].Dead {
			continue
		}
		fn(&s.items[i])
	}
}

// Sweep removes dead entities, preserving order. Returns the number removed.
func (s *Store) Sweep() int {
	kept := s.items[:0]
	removed := 0
	for _, e := range s.items {
		if e.Dead {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so swept entities don't linger in the backing array.
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = Entity{}
	}
	s.items = kept
	return removed
}

// RemoveOffscreen marks every entity fully outside a w x h area dead.
func (s *Store) RemoveOffscreen(w, h float64) int {
	n := 0
	s.Each(func(e *Entity) {
		if Offscreen(e, w, h) {
			e.Dead = true
			n++
		}
	})
	return n
}

// FirstHit returns the first live entity of the given kind colliding with e.
func (s *Store) FirstHit(e *Entity, kind Kind) *Entity {
	for i := range s.items {
		o := &s.items[i]
		if o.Dead || o.Kind != kind || o.ID == e.ID {
			continue
		}
		if Collides(e, o) {
			return o
		}
	}
	return nil
}

// Get returns the entity with the given ID, or nil.
func (s *Store) Get(id int) *Entity {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

// Len returns the number of stored entities, including ones not yet swept.
func (s *Store) Len() int {
	return len(s.items)
}

// Count returns the number of live entities of a kind.
func (s *Store) Count(kind Kind) int {
	n := 0
	for i := range s.items {
		if !s.items[i].Dead && s.items[i].Kind == kind {
			n++
		}
	}
	return n
}

// All returns the underlying slice. Callers must not keep it across Sweep.
func (s *Store) All() []Entity {
	return s.items
}

// Reset drops every entity and restarts ID allocation.
func (s *Store) Reset() {
	s.items = s.items[:0]
	s.nextID = 1
}
