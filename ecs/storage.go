package ecs

// entityStore hands out ids, tracks generations, and keeps a dense list of
// live entities for iteration.
type entityStore struct {
	nextID entityID
	gens   []generation
	free   []entityID

	alive      []Entity
	aliveIndex map[entityID]int
}

func (s *entityStore) create() Entity {
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
	}
	for int(id) > len(s.gens) {
		s.gens = append(s.gens, 0)
	}

	e := makeEntity(id, s.gens[id-1])
	if s.aliveIndex == nil {
		s.aliveIndex = make(map[entityID]int)
	}
	s.aliveIndex[id] = len(s.alive)
	s.alive = append(s.alive, e)
	return e
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.gens[id-1]++
	s.free = append(s.free, id)

	idx := s.aliveIndex[id]
	last := len(s.alive) - 1
	moved := s.alive[last]
	s.alive[idx] = moved
	s.aliveIndex[moved.id()] = idx
	s.alive = s.alive[:last]
	delete(s.aliveIndex, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

func (s *entityStore) entities() []Entity {
	return s.alive
}
