package event

import (
	"fmt"
	"slices"
)

// Validate checks the graph invariants: sequential ids, ownership, and
// agreement between vertex lists and particle back-references.
func (e *Event) Validate() error {
	for i, p := range e.particles {
		if p.event != e {
			return fmt.Errorf("%w: particle at %d not owned by event", ErrInconsistent, i)
		}
		if p.id != i+1 {
			return fmt.Errorf("%w: particle at %d has id %d", ErrInconsistent, i, p.id)
		}
		if p.prod != nil && !slices.Contains(p.prod.out, p) {
			return fmt.Errorf("%w: particle %d missing from production vertex %d", ErrInconsistent, p.id, p.prod.id)
		}
		if p.end != nil && !slices.Contains(p.end.in, p) {
			return fmt.Errorf("%w: particle %d missing from end vertex %d", ErrInconsistent, p.id, p.end.id)
		}
	}

	for i, v := range e.vertices {
		if v.event != e {
			return fmt.Errorf("%w: vertex at %d not owned by event", ErrInconsistent, i)
		}
		if v.id != -(i + 1) {
			return fmt.Errorf("%w: vertex at %d has id %d", ErrInconsistent, i, v.id)
		}
		for _, p := range v.in {
			if p.end != v {
				return fmt.Errorf("%w: vertex %d lists particle %d as incoming", ErrInconsistent, v.id, p.id)
			}
			if p.event != e {
				return fmt.Errorf("%w: vertex %d has foreign incoming particle", ErrInconsistent, v.id)
			}
		}
		for _, p := range v.out {
			if p.prod != v {
				return fmt.Errorf("%w: vertex %d lists particle %d as outgoing", ErrInconsistent, v.id, p.id)
			}
			if p.event != e {
				return fmt.Errorf("%w: vertex %d has foreign outgoing particle", ErrInconsistent, v.id)
			}
		}
	}
	return nil
}
