package event

import (
	"fmt"
	"slices"

	"github.com/hupe1980/hepgo/attribute"
)

// Event owns an ordered set of particles and vertices plus weights and a
// two-level attribute table (name -> index -> value).
//
// Attribute index 0 addresses the event itself; positive indices are
// particle ids and negative indices vertex ids.
type Event struct {
	number       int
	momentumUnit MomentumUnit
	lengthUnit   LengthUnit

	particles []*Particle
	vertices  []*Vertex
	weights   []float64
	runInfo   *RunInfo
	attrs     map[string]map[int]attribute.Value
}

// New creates an empty event in GeV and mm.
func New() *Event {
	return &Event{}
}

func (e *Event) EventNumber() int     { return e.number }
func (e *Event) SetEventNumber(n int) { e.number = n }

// Units returns the momentum and length units.
func (e *Event) Units() (MomentumUnit, LengthUnit) { return e.momentumUnit, e.lengthUnit }

// SetUnits converts every momentum and position to the given units.
func (e *Event) SetUnits(mu MomentumUnit, lu LengthUnit) {
	if f := momentumScale(e.momentumUnit, mu); f != 1 {
		for _, p := range e.particles {
			p.momentum = p.momentum.Scale(f)
			if p.genMassSet {
				p.genMass *= f
			}
		}
	}
	if f := lengthScale(e.lengthUnit, lu); f != 1 {
		for _, v := range e.vertices {
			v.position = v.position.Scale(f)
		}
	}
	e.momentumUnit = mu
	e.lengthUnit = lu
}

// NumParticles returns the number of particles.
func (e *Event) NumParticles() int { return len(e.particles) }

// NumVertices returns the number of vertices.
func (e *Event) NumVertices() int { return len(e.vertices) }

// Particles returns a copy of the particle list.
func (e *Event) Particles() []*Particle { return slices.Clone(e.particles) }

// Vertices returns a copy of the vertex list.
func (e *Event) Vertices() []*Vertex { return slices.Clone(e.vertices) }

// Particle returns the particle at position i, or nil when out of range.
func (e *Event) Particle(i int) *Particle {
	if i < 0 || i >= len(e.particles) {
		return nil
	}
	return e.particles[i]
}

// Vertex returns the vertex at position i, or nil when out of range.
func (e *Event) Vertex(i int) *Vertex {
	if i < 0 || i >= len(e.vertices) {
		return nil
	}
	return e.vertices[i]
}

// ParticleByID returns the particle with the given id, or nil.
func (e *Event) ParticleByID(id int) *Particle {
	return e.Particle(id - 1)
}

// VertexByID returns the vertex with the given (negative) id, or nil.
func (e *Event) VertexByID(id int) *Vertex {
	return e.Vertex(-id - 1)
}

// Weights returns a copy of the event weights.
func (e *Event) Weights() []float64 { return slices.Clone(e.weights) }

// SetWeights replaces the event weights.
func (e *Event) SetWeights(w []float64) { e.weights = slices.Clone(w) }

// Weight returns the weight registered under name in the run info.
func (e *Event) Weight(name string) (float64, error) {
	if e.runInfo == nil {
		return 0, fmt.Errorf("%w: no run info for weight %q", ErrInvalidArgument, name)
	}
	i, ok := e.runInfo.WeightIndex(name)
	if !ok || i >= len(e.weights) {
		return 0, fmt.Errorf("%w: unknown weight %q", ErrInvalidArgument, name)
	}
	return e.weights[i], nil
}

// RunInfo returns the shared run info, or nil.
func (e *Event) RunInfo() *RunInfo { return e.runInfo }

// SetRunInfo attaches (or with nil, detaches) shared run info.
func (e *Event) SetRunInfo(ri *RunInfo) { e.runInfo = ri }

// AddParticle appends a detached particle to the event.
func (e *Event) AddParticle(p *Particle) error {
	if p == nil {
		return fmt.Errorf("%w: nil particle", ErrInvalidArgument)
	}
	if p.event == e {
		return nil
	}
	if p.event != nil {
		return fmt.Errorf("%w: particle %d", ErrForeignEvent, p.id)
	}
	e.appendParticle(p)
	return nil
}

// AddVertex appends a detached vertex and every particle attached to it.
func (e *Event) AddVertex(v *Vertex) error {
	if v == nil {
		return fmt.Errorf("%w: nil vertex", ErrInvalidArgument)
	}
	if v.event == e {
		return nil
	}
	if v.event != nil {
		return fmt.Errorf("%w: vertex %d", ErrForeignEvent, v.id)
	}
	for _, p := range v.in {
		if p.event != nil && p.event != e {
			return fmt.Errorf("%w: incoming particle %d", ErrForeignEvent, p.id)
		}
	}
	for _, p := range v.out {
		if p.event != nil && p.event != e {
			return fmt.Errorf("%w: outgoing particle %d", ErrForeignEvent, p.id)
		}
	}

	e.vertices = append(e.vertices, v)
	v.id = -len(e.vertices)
	v.event = e

	for _, p := range v.in {
		if p.event == nil {
			e.appendParticle(p)
		}
	}
	for _, p := range v.out {
		if p.event == nil {
			e.appendParticle(p)
		}
	}
	return nil
}

func (e *Event) appendParticle(p *Particle) {
	e.particles = append(e.particles, p)
	p.id = len(e.particles)
	p.event = e
}

// RemoveParticle detaches p from the event and from every vertex list.
//
// Later particles are renumbered and attribute indices above p's id shift
// down by one.
func (e *Event) RemoveParticle(p *Particle) error {
	if p == nil {
		return fmt.Errorf("%w: nil particle", ErrInvalidArgument)
	}
	if p.event != e {
		return fmt.Errorf("%w: particle %d", ErrNotInEvent, p.id)
	}
	idx := slices.Index(e.particles, p)
	if idx < 0 {
		return fmt.Errorf("%w: particle %d missing from index", ErrInconsistent, p.id)
	}

	if p.prod != nil {
		p.prod.RemoveParticleOut(p)
	}
	if p.end != nil {
		p.end.RemoveParticleIn(p)
	}

	removedID := p.id
	e.particles = slices.Delete(e.particles, idx, idx+1)
	for i := idx; i < len(e.particles); i++ {
		e.particles[i].id = i + 1
	}
	e.shiftAttributeIndices(removedID, 1)

	p.id = 0
	p.event = nil
	return nil
}

// RemoveVertex detaches v from the event. Its particles stay in the event
// but lose their link to v, and v's particle lists are emptied.
func (e *Event) RemoveVertex(v *Vertex) error {
	if v == nil {
		return fmt.Errorf("%w: nil vertex", ErrInvalidArgument)
	}
	if v.event != e {
		return fmt.Errorf("%w: vertex %d", ErrNotInEvent, v.id)
	}
	idx := slices.Index(e.vertices, v)
	if idx < 0 {
		return fmt.Errorf("%w: vertex %d missing from index", ErrInconsistent, v.id)
	}

	for _, p := range v.in {
		p.end = nil
	}
	for _, p := range v.out {
		p.prod = nil
	}
	v.in = nil
	v.out = nil

	removedID := v.id
	e.vertices = slices.Delete(e.vertices, idx, idx+1)
	for i := idx; i < len(e.vertices); i++ {
		e.vertices[i].id = -(i + 1)
	}
	e.shiftAttributeIndices(removedID, -1)

	v.id = 0
	v.event = nil
	return nil
}

// shiftAttributeIndices drops entries stored at removed and moves entries
// past it (in direction sign) one step towards zero.
func (e *Event) shiftAttributeIndices(removed, sign int) {
	for name, byIndex := range e.attrs {
		if len(byIndex) == 0 {
			continue
		}
		shifted := make(map[int]attribute.Value, len(byIndex))
		for idx, v := range byIndex {
			switch {
			case idx == removed:
			case idx*sign > removed*sign:
				shifted[idx-sign] = v
			default:
				shifted[idx] = v
			}
		}
		if len(shifted) == 0 {
			delete(e.attrs, name)
			continue
		}
		e.attrs[name] = shifted
	}
}

// Shift translates every vertex position by d.
func (e *Event) Shift(d FourVector) {
	for _, v := range e.vertices {
		v.position = v.position.Add(d)
	}
}

// Clear empties the event and detaches everything it owned.
func (e *Event) Clear() {
	for _, p := range e.particles {
		p.id = 0
		p.event = nil
	}
	for _, v := range e.vertices {
		v.id = 0
		v.event = nil
	}
	e.number = 0
	e.momentumUnit = GeV
	e.lengthUnit = MM
	e.particles = nil
	e.vertices = nil
	e.weights = nil
	e.runInfo = nil
	e.attrs = nil
}

// SetAttribute stores v under (name, index), replacing any previous value.
//
// Reserved composite names keep a single live value: setting one drops every
// other index under that name.
func (e *Event) SetAttribute(name string, index int, v attribute.Value) error {
	if err := checkAttribute(name, v); err != nil {
		return err
	}
	if e.attrs == nil {
		e.attrs = make(map[string]map[int]attribute.Value)
	}
	if _, reserved := attribute.ReservedKind(name); reserved {
		e.attrs[name] = map[int]attribute.Value{index: v}
		return nil
	}
	byIndex := e.attrs[name]
	if byIndex == nil {
		byIndex = make(map[int]attribute.Value)
		e.attrs[name] = byIndex
	}
	byIndex[index] = v
	return nil
}

// Attribute returns the value stored under (name, index).
func (e *Event) Attribute(name string, index int) (attribute.Value, bool) {
	v, ok := e.attrs[name][index]
	return v, ok
}

// RemoveAttribute deletes every index stored under name.
func (e *Event) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// RemoveAttributeAt deletes the value stored under (name, index).
func (e *Event) RemoveAttributeAt(name string, index int) {
	byIndex := e.attrs[name]
	delete(byIndex, index)
	if len(byIndex) == 0 {
		delete(e.attrs, name)
	}
}

// AttributeNames returns the attribute names in sorted order.
func (e *Event) AttributeNames() []string {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AttributeIndices returns the indices stored under name in ascending order.
func (e *Event) AttributeIndices(name string) []int {
	byIndex := e.attrs[name]
	idxs := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		idxs = append(idxs, idx)
	}
	slices.Sort(idxs)
	return idxs
}

// PdfInfo returns the event's PDF info.
func (e *Event) PdfInfo() (attribute.PdfInfo, bool) {
	v, ok := e.Attribute(attribute.NamePdfInfo, 0)
	if !ok {
		return attribute.PdfInfo{}, false
	}
	return v.AsPdfInfo()
}

// CrossSection returns the event's cross section.
func (e *Event) CrossSection() (attribute.CrossSection, bool) {
	v, ok := e.Attribute(attribute.NameCrossSection, 0)
	if !ok {
		return attribute.CrossSection{}, false
	}
	return v.AsCrossSection()
}

// HeavyIon returns the event's heavy-ion information.
func (e *Event) HeavyIon() (attribute.HeavyIon, bool) {
	v, ok := e.Attribute(attribute.NameHeavyIon, 0)
	if !ok {
		return attribute.HeavyIon{}, false
	}
	return v.AsHeavyIon()
}
