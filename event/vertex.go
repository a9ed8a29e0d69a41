package event

import (
	"fmt"
	"slices"

	"github.com/hupe1980/hepgo/attribute"
)

// Vertex joins incoming and outgoing particles at a spacetime position.
type Vertex struct {
	id       int
	status   int
	position FourVector
	in       []*Particle
	out      []*Particle
	attrs    map[string]attribute.Value

	event *Event
}

// NewVertex creates a detached vertex at position.
func NewVertex(position FourVector) *Vertex {
	return &Vertex{position: position}
}

// ID returns the vertex id within its event, or 0 while detached.
func (v *Vertex) ID() int { return v.id }

func (v *Vertex) Status() int          { return v.status }
func (v *Vertex) SetStatus(status int) { v.status = status }

func (v *Vertex) Position() FourVector     { return v.position }
func (v *Vertex) SetPosition(p FourVector) { v.position = p }

// Event returns the owning event, or nil.
func (v *Vertex) Event() *Event { return v.event }

// ParticlesIn returns a copy of the incoming list.
func (v *Vertex) ParticlesIn() []*Particle { return slices.Clone(v.in) }

// ParticlesOut returns a copy of the outgoing list.
func (v *Vertex) ParticlesOut() []*Particle { return slices.Clone(v.out) }

// NumParticlesIn returns the length of the incoming list.
func (v *Vertex) NumParticlesIn() int { return len(v.in) }

// NumParticlesOut returns the length of the outgoing list.
func (v *Vertex) NumParticlesOut() int { return len(v.out) }

// AddParticleIn appends p to the incoming list and makes v its end vertex.
//
// A particle that already ends at another vertex is moved. If v belongs to
// an event, p joins that event.
func (v *Vertex) AddParticleIn(p *Particle) error {
	if p == nil {
		return fmt.Errorf("%w: nil particle", ErrInvalidArgument)
	}
	if p.end == v {
		return nil
	}
	if err := v.checkSameEvent(p); err != nil {
		return err
	}

	if p.end != nil {
		p.end.in = removeParticle(p.end.in, p)
	}
	v.in = append(v.in, p)
	p.end = v

	if v.event != nil && p.event == nil {
		v.event.appendParticle(p)
	}
	return nil
}

// AddParticleOut appends p to the outgoing list and makes v its production vertex.
//
// A particle that already has another production vertex is moved. If v
// belongs to an event, p joins that event.
func (v *Vertex) AddParticleOut(p *Particle) error {
	if p == nil {
		return fmt.Errorf("%w: nil particle", ErrInvalidArgument)
	}
	if p.prod == v {
		return nil
	}
	if err := v.checkSameEvent(p); err != nil {
		return err
	}

	if p.prod != nil {
		p.prod.out = removeParticle(p.prod.out, p)
	}
	v.out = append(v.out, p)
	p.prod = v

	if v.event != nil && p.event == nil {
		v.event.appendParticle(p)
	}
	return nil
}

// RemoveParticleIn detaches p from the incoming list.
func (v *Vertex) RemoveParticleIn(p *Particle) {
	if p == nil || p.end != v {
		return
	}
	v.in = removeParticle(v.in, p)
	p.end = nil
}

// RemoveParticleOut detaches p from the outgoing list.
func (v *Vertex) RemoveParticleOut(p *Particle) {
	if p == nil || p.prod != v {
		return
	}
	v.out = removeParticle(v.out, p)
	p.prod = nil
}

func (v *Vertex) checkSameEvent(p *Particle) error {
	if v.event != nil && p.event != nil && p.event != v.event {
		return fmt.Errorf("%w: particle %d and vertex %d", ErrForeignEvent, p.id, v.id)
	}
	return nil
}

// SetAttribute stores a under name, replacing any previous value.
func (v *Vertex) SetAttribute(name string, a attribute.Value) error {
	if err := checkAttribute(name, a); err != nil {
		return err
	}
	if v.attrs == nil {
		v.attrs = make(map[string]attribute.Value)
	}
	v.attrs[name] = a
	return nil
}

// Attribute returns the value stored under name.
func (v *Vertex) Attribute(name string) (attribute.Value, bool) {
	a, ok := v.attrs[name]
	return a, ok
}

// RemoveAttribute deletes the value stored under name.
func (v *Vertex) RemoveAttribute(name string) {
	delete(v.attrs, name)
}

// AttributeNames returns the attribute names in sorted order.
func (v *Vertex) AttributeNames() []string {
	return sortedKeys(v.attrs)
}

func removeParticle(list []*Particle, p *Particle) []*Particle {
	if i := slices.Index(list, p); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
