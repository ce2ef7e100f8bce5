package ecs

import "github.com/milk9111/digipet/ecs/component"

// Query returns live entities carrying every listed component, in the dense
// order of the smallest store.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*sparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s.len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	var out []Entity
	for _, e := range smallest.entities() {
		if !IsAlive(w, e) {
			continue
		}
		all := true
		for _, s := range sets {
			if !s.has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
