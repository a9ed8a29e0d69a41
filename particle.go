package hepgo

import (
	"github.com/hupe1980/hepgo/event"
)

// CreateParticle creates a detached particle with momentum (px, py, pz, e).
func (b *Bridge) CreateParticle(px, py, pz, e float64, pdgID, status int) (Handle, error) {
	return b.mint("create_particle", event.NewParticle(event.NewFourVector(px, py, pz, e), pdgID, status))
}

// ParticlesEqual reports whether h1 and h2 refer to the same particle.
func (b *Bridge) ParticlesEqual(h1, h2 Handle) (bool, error) {
	p1, err := get[*event.Particle](b, "particles_equal", h1)
	if err != nil {
		return false, err
	}
	p2, err := get[*event.Particle](b, "particles_equal", h2)
	if err != nil {
		return false, err
	}
	return p1 == p2, nil
}

// ParticleID returns the particle's id within its event, or 0 while detached.
func (b *Bridge) ParticleID(h Handle) (int, error) {
	p, err := get[*event.Particle](b, "particle_id", h)
	if err != nil {
		return 0, err
	}
	return p.ID(), nil
}

func (b *Bridge) ParticleStatus(h Handle) (int, error) {
	p, err := get[*event.Particle](b, "particle_status", h)
	if err != nil {
		return 0, err
	}
	return p.Status(), nil
}

func (b *Bridge) SetParticleStatus(h Handle, status int) error {
	p, err := get[*event.Particle](b, "set_particle_status", h)
	if err != nil {
		return err
	}
	p.SetStatus(status)
	return nil
}

func (b *Bridge) ParticlePDGID(h Handle) (int, error) {
	p, err := get[*event.Particle](b, "particle_pdg_id", h)
	if err != nil {
		return 0, err
	}
	return p.PDGID(), nil
}

func (b *Bridge) SetParticlePDGID(h Handle, pdgID int) error {
	p, err := get[*event.Particle](b, "set_particle_pdg_id", h)
	if err != nil {
		return err
	}
	p.SetPDGID(pdgID)
	return nil
}

// ParticleMomentum returns the particle's four-momentum.
func (b *Bridge) ParticleMomentum(h Handle) (event.FourVector, error) {
	p, err := get[*event.Particle](b, "particle_momentum", h)
	if err != nil {
		return event.FourVector{}, err
	}
	return p.Momentum(), nil
}

func (b *Bridge) SetParticleMomentum(h Handle, px, py, pz, e float64) error {
	p, err := get[*event.Particle](b, "set_particle_momentum", h)
	if err != nil {
		return err
	}
	p.SetMomentum(event.NewFourVector(px, py, pz, e))
	return nil
}

// GeneratedMass returns the mass override, or the invariant mass of the
// momentum when none is set.
func (b *Bridge) GeneratedMass(h Handle) (float64, error) {
	p, err := get[*event.Particle](b, "generated_mass", h)
	if err != nil {
		return 0, err
	}
	return p.GeneratedMass(), nil
}

func (b *Bridge) SetGeneratedMass(h Handle, m float64) error {
	p, err := get[*event.Particle](b, "set_generated_mass", h)
	if err != nil {
		return err
	}
	p.SetGeneratedMass(m)
	return nil
}

func (b *Bridge) IsGeneratedMassSet(h Handle) (bool, error) {
	p, err := get[*event.Particle](b, "is_generated_mass_set", h)
	if err != nil {
		return false, err
	}
	return p.IsGeneratedMassSet(), nil
}

func (b *Bridge) UnsetGeneratedMass(h Handle) error {
	p, err := get[*event.Particle](b, "unset_generated_mass", h)
	if err != nil {
		return err
	}
	p.UnsetGeneratedMass()
	return nil
}

// ProductionVertex returns a new handle to the vertex the particle leaves,
// or Null when it has none.
func (b *Bridge) ProductionVertex(h Handle) (Handle, error) {
	p, err := get[*event.Particle](b, "production_vertex", h)
	if err != nil {
		return Null, err
	}
	return mintOrNull(b, "production_vertex", p.ProductionVertex())
}

// EndVertex returns a new handle to the vertex the particle enters, or Null
// when it has none.
func (b *Bridge) EndVertex(h Handle) (Handle, error) {
	p, err := get[*event.Particle](b, "end_vertex", h)
	if err != nil {
		return Null, err
	}
	return mintOrNull(b, "end_vertex", p.EndVertex())
}

// ParticleEvent returns a new handle to the owning event, or Null.
func (b *Bridge) ParticleEvent(h Handle) (Handle, error) {
	p, err := get[*event.Particle](b, "particle_event", h)
	if err != nil {
		return Null, err
	}
	return mintOrNull(b, "particle_event", p.Event())
}

// Parents returns a particle vector holding the incoming particles of the
// production vertex.
func (b *Bridge) Parents(h Handle) (Handle, error) {
	p, err := get[*event.Particle](b, "parents", h)
	if err != nil {
		return Null, err
	}
	return b.mint("parents", newVector(kindParticle, p.Parents()))
}

// Children returns a particle vector holding the outgoing particles of the
// end vertex.
func (b *Bridge) Children(h Handle) (Handle, error) {
	p, err := get[*event.Particle](b, "children", h)
	if err != nil {
		return Null, err
	}
	return b.mint("children", newVector(kindParticle, p.Children()))
}
