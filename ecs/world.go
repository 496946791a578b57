package ecs

import (
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// Kind is the erased view of a component.ComponentKind, so mixed kinds can
// travel through Query.
type Kind interface {
	ID() component.ComponentID
}

// World owns entities and component stores. Systems receive it once per
// tick; the tick duration rides along because every rate in this codebase
// is specified in seconds.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	dt       float64

	destroyHooks []func(*World, Entity)
}

func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
	}
}

// SetDT records the tick duration in seconds for the current update.
func (w *World) SetDT(dt float64) {
	if dt < 0 {
		dt = 0
	}
	w.dt = dt
}

func (w *World) DT() float64 {
	return w.dt
}

// OnDestroy registers a hook that runs while the dying entity's components
// are still attached. The physics adapter uses this to tear bodies out of
// the space.
func (w *World) OnDestroy(fn func(*World, Entity)) {
	if fn == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, fn)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Query returns the entities holding every listed kind, iterating the
// smallest store and preserving its insertion order.
func (w *World) Query(kinds ...Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}

	sets := make([]*SparseSet, 0, len(kinds))
	smallest := -1
	for _, k := range kinds {
		if k == nil || k.ID() == 0 {
			return nil
		}
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		if smallest < 0 || s.len() < sets[smallest].len() {
			smallest = len(sets)
		}
		sets = append(sets, s)
	}

	out := make([]Entity, 0, sets[smallest].len())
outer:
	for _, id := range sets[smallest].ids() {
		for i, s := range sets {
			if i == smallest {
				continue
			}
			if !s.has(id) {
				continue outer
			}
		}
		out = append(out, makeEntity(id, w.entities.gens[id-1]))
	}
	return out
}
