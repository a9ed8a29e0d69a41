package event

import (
	"slices"

	"github.com/hupe1980/hepgo/attribute"
)

// Particle is a node of the event graph.
type Particle struct {
	id         int
	status     int
	pdgID      int
	momentum   FourVector
	genMass    float64
	genMassSet bool
	attrs      map[string]attribute.Value

	prod  *Vertex
	end   *Vertex
	event *Event
}

// NewParticle creates a detached particle.
func NewParticle(momentum FourVector, pdgID, status int) *Particle {
	return &Particle{
		momentum: momentum,
		pdgID:    pdgID,
		status:   status,
	}
}

// ID returns the particle id within its event, or 0 while detached.
func (p *Particle) ID() int { return p.id }

func (p *Particle) Status() int          { return p.status }
func (p *Particle) SetStatus(status int) { p.status = status }
func (p *Particle) PDGID() int           { return p.pdgID }
func (p *Particle) SetPDGID(pdgID int)   { p.pdgID = pdgID }

func (p *Particle) Momentum() FourVector     { return p.momentum }
func (p *Particle) SetMomentum(m FourVector) { p.momentum = m }

// GeneratedMass returns the explicitly set mass, or the invariant mass of
// the momentum when none is set.
func (p *Particle) GeneratedMass() float64 {
	if p.genMassSet {
		return p.genMass
	}
	return p.momentum.M()
}

// IsGeneratedMassSet reports whether a generated mass override is present.
func (p *Particle) IsGeneratedMassSet() bool { return p.genMassSet }

// SetGeneratedMass sets the generated mass override.
func (p *Particle) SetGeneratedMass(m float64) {
	p.genMass = m
	p.genMassSet = true
}

// UnsetGeneratedMass drops the generated mass override.
func (p *Particle) UnsetGeneratedMass() {
	p.genMass = 0
	p.genMassSet = false
}

// ProductionVertex returns the vertex the particle leaves, or nil.
func (p *Particle) ProductionVertex() *Vertex { return p.prod }

// EndVertex returns the vertex the particle enters, or nil.
func (p *Particle) EndVertex() *Vertex { return p.end }

// Event returns the owning event, or nil.
func (p *Particle) Event() *Event { return p.event }

// Parents returns the incoming particles of the production vertex.
func (p *Particle) Parents() []*Particle {
	if p.prod == nil {
		return nil
	}
	return p.prod.ParticlesIn()
}

// Children returns the outgoing particles of the end vertex.
func (p *Particle) Children() []*Particle {
	if p.end == nil {
		return nil
	}
	return p.end.ParticlesOut()
}

// SetAttribute stores v under name, replacing any previous value.
func (p *Particle) SetAttribute(name string, v attribute.Value) error {
	if err := checkAttribute(name, v); err != nil {
		return err
	}
	if p.attrs == nil {
		p.attrs = make(map[string]attribute.Value)
	}
	p.attrs[name] = v
	return nil
}

// Attribute returns the value stored under name.
func (p *Particle) Attribute(name string) (attribute.Value, bool) {
	v, ok := p.attrs[name]
	return v, ok
}

// RemoveAttribute deletes the value stored under name.
func (p *Particle) RemoveAttribute(name string) {
	delete(p.attrs, name)
}

// AttributeNames returns the attribute names in sorted order.
func (p *Particle) AttributeNames() []string {
	return sortedKeys(p.attrs)
}

func sortedKeys(m map[string]attribute.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
