package hepgo

import (
	"github.com/hupe1980/hepgo/event"
)

// CreateVertex creates a detached vertex at position (x, y, z, t).
func (b *Bridge) CreateVertex(x, y, z, t float64) (Handle, error) {
	return b.mint("create_vertex", event.NewVertex(event.NewFourVector(x, y, z, t)))
}

// VerticesEqual reports whether h1 and h2 refer to the same vertex.
func (b *Bridge) VerticesEqual(h1, h2 Handle) (bool, error) {
	v1, err := get[*event.Vertex](b, "vertices_equal", h1)
	if err != nil {
		return false, err
	}
	v2, err := get[*event.Vertex](b, "vertices_equal", h2)
	if err != nil {
		return false, err
	}
	return v1 == v2, nil
}

// VertexID returns the vertex id within its event (negative), or 0 while
// detached.
func (b *Bridge) VertexID(h Handle) (int, error) {
	v, err := get[*event.Vertex](b, "vertex_id", h)
	if err != nil {
		return 0, err
	}
	return v.ID(), nil
}

func (b *Bridge) VertexStatus(h Handle) (int, error) {
	v, err := get[*event.Vertex](b, "vertex_status", h)
	if err != nil {
		return 0, err
	}
	return v.Status(), nil
}

func (b *Bridge) SetVertexStatus(h Handle, status int) error {
	v, err := get[*event.Vertex](b, "set_vertex_status", h)
	if err != nil {
		return err
	}
	v.SetStatus(status)
	return nil
}

func (b *Bridge) VertexPosition(h Handle) (event.FourVector, error) {
	v, err := get[*event.Vertex](b, "vertex_position", h)
	if err != nil {
		return event.FourVector{}, err
	}
	return v.Position(), nil
}

func (b *Bridge) SetVertexPosition(h Handle, x, y, z, t float64) error {
	v, err := get[*event.Vertex](b, "set_vertex_position", h)
	if err != nil {
		return err
	}
	v.SetPosition(event.NewFourVector(x, y, z, t))
	return nil
}

// AddParticleIn makes p an incoming particle of v and v the end vertex of p
// in one step. A particle ending elsewhere is moved.
func (b *Bridge) AddParticleIn(vh, ph Handle) error {
	v, p, err := b.vertexAndParticle("add_particle_in", vh, ph)
	if err != nil {
		return err
	}
	if err := v.AddParticleIn(p); err != nil {
		return &HandleError{Op: "add_particle_in", Handle: ph, cause: err}
	}
	return nil
}

// AddParticleOut makes p an outgoing particle of v and v the production
// vertex of p in one step. A particle produced elsewhere is moved.
func (b *Bridge) AddParticleOut(vh, ph Handle) error {
	v, p, err := b.vertexAndParticle("add_particle_out", vh, ph)
	if err != nil {
		return err
	}
	if err := v.AddParticleOut(p); err != nil {
		return &HandleError{Op: "add_particle_out", Handle: ph, cause: err}
	}
	return nil
}

// RemoveParticleIn detaches p from the incoming list of v.
func (b *Bridge) RemoveParticleIn(vh, ph Handle) error {
	v, p, err := b.vertexAndParticle("remove_particle_in", vh, ph)
	if err != nil {
		return err
	}
	v.RemoveParticleIn(p)
	return nil
}

// RemoveParticleOut detaches p from the outgoing list of v.
func (b *Bridge) RemoveParticleOut(vh, ph Handle) error {
	v, p, err := b.vertexAndParticle("remove_particle_out", vh, ph)
	if err != nil {
		return err
	}
	v.RemoveParticleOut(p)
	return nil
}

// ParticlesIn returns a particle vector holding the incoming particles.
func (b *Bridge) ParticlesIn(h Handle) (Handle, error) {
	v, err := get[*event.Vertex](b, "particles_in", h)
	if err != nil {
		return Null, err
	}
	return b.mint("particles_in", newVector(kindParticle, v.ParticlesIn()))
}

// ParticlesOut returns a particle vector holding the outgoing particles.
func (b *Bridge) ParticlesOut(h Handle) (Handle, error) {
	v, err := get[*event.Vertex](b, "particles_out", h)
	if err != nil {
		return Null, err
	}
	return b.mint("particles_out", newVector(kindParticle, v.ParticlesOut()))
}

func (b *Bridge) ParticlesInSize(h Handle) (int, error) {
	v, err := get[*event.Vertex](b, "particles_in_size", h)
	if err != nil {
		return 0, err
	}
	return v.NumParticlesIn(), nil
}

func (b *Bridge) ParticlesOutSize(h Handle) (int, error) {
	v, err := get[*event.Vertex](b, "particles_out_size", h)
	if err != nil {
		return 0, err
	}
	return v.NumParticlesOut(), nil
}

// VertexEvent returns a new handle to the owning event, or Null.
func (b *Bridge) VertexEvent(h Handle) (Handle, error) {
	v, err := get[*event.Vertex](b, "vertex_event", h)
	if err != nil {
		return Null, err
	}
	return mintOrNull(b, "vertex_event", v.Event())
}

func (b *Bridge) vertexAndParticle(op string, vh, ph Handle) (*event.Vertex, *event.Particle, error) {
	v, err := get[*event.Vertex](b, op, vh)
	if err != nil {
		return nil, nil, err
	}
	p, err := get[*event.Particle](b, op, ph)
	if err != nil {
		return nil, nil, err
	}
	return v, p, nil
}
