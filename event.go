package hepgo

import (
	"github.com/hupe1980/hepgo/event"
)

// CreateEvent creates an empty event in GeV and mm.
func (b *Bridge) CreateEvent() (Handle, error) {
	return b.mint("create_event", event.New())
}

// EventsEqual reports whether h1 and h2 refer to the same event.
func (b *Bridge) EventsEqual(h1, h2 Handle) (bool, error) {
	e1, err := get[*event.Event](b, "events_equal", h1)
	if err != nil {
		return false, err
	}
	e2, err := get[*event.Event](b, "events_equal", h2)
	if err != nil {
		return false, err
	}
	return e1 == e2, nil
}

// AddVertexToEvent adds v and every particle attached to it to the event.
// The vertex receives the next free id.
func (b *Bridge) AddVertexToEvent(eh, vh Handle) error {
	e, err := get[*event.Event](b, "add_vertex", eh)
	if err != nil {
		return err
	}
	v, err := get[*event.Vertex](b, "add_vertex", vh)
	if err != nil {
		return err
	}
	if err := e.AddVertex(v); err != nil {
		return &HandleError{Op: "add_vertex", Handle: vh, cause: err}
	}
	return nil
}

// AddParticleToEvent adds a detached particle to the event.
func (b *Bridge) AddParticleToEvent(eh, ph Handle) error {
	e, err := get[*event.Event](b, "add_particle", eh)
	if err != nil {
		return err
	}
	p, err := get[*event.Particle](b, "add_particle", ph)
	if err != nil {
		return err
	}
	if err := e.AddParticle(p); err != nil {
		return &HandleError{Op: "add_particle", Handle: ph, cause: err}
	}
	return nil
}

// RemoveParticleFromEvent removes p from the event and from every vertex
// list that refers to it. Later particles are renumbered.
func (b *Bridge) RemoveParticleFromEvent(eh, ph Handle) error {
	e, err := get[*event.Event](b, "remove_particle", eh)
	if err != nil {
		return err
	}
	p, err := get[*event.Particle](b, "remove_particle", ph)
	if err != nil {
		return err
	}
	if err := e.RemoveParticle(p); err != nil {
		return &HandleError{Op: "remove_particle", Handle: ph, cause: err}
	}
	return nil
}

// RemoveVertexFromEvent removes v from the event. Its particles stay in the
// event but lose their link to v.
func (b *Bridge) RemoveVertexFromEvent(eh, vh Handle) error {
	e, err := get[*event.Event](b, "remove_vertex", eh)
	if err != nil {
		return err
	}
	v, err := get[*event.Vertex](b, "remove_vertex", vh)
	if err != nil {
		return err
	}
	if err := e.RemoveVertex(v); err != nil {
		return &HandleError{Op: "remove_vertex", Handle: vh, cause: err}
	}
	return nil
}

func (b *Bridge) ParticlesSize(h Handle) (int, error) {
	e, err := get[*event.Event](b, "particles_size", h)
	if err != nil {
		return 0, err
	}
	return e.NumParticles(), nil
}

func (b *Bridge) VerticesSize(h Handle) (int, error) {
	e, err := get[*event.Event](b, "vertices_size", h)
	if err != nil {
		return 0, err
	}
	return e.NumVertices(), nil
}

// ParticleAt returns a new handle to the i-th particle of the event.
func (b *Bridge) ParticleAt(h Handle, i int) (Handle, error) {
	e, err := get[*event.Event](b, "particle_at", h)
	if err != nil {
		return Null, err
	}
	p := e.Particle(i)
	if p == nil {
		return Null, b.violation("particle_at", h, &IndexError{Index: i, Size: e.NumParticles()})
	}
	return b.mint("particle_at", p)
}

// VertexAt returns a new handle to the i-th vertex of the event.
func (b *Bridge) VertexAt(h Handle, i int) (Handle, error) {
	e, err := get[*event.Event](b, "vertex_at", h)
	if err != nil {
		return Null, err
	}
	v := e.Vertex(i)
	if v == nil {
		return Null, b.violation("vertex_at", h, &IndexError{Index: i, Size: e.NumVertices()})
	}
	return b.mint("vertex_at", v)
}

// EventParticles returns a particle vector holding every particle of the event.
func (b *Bridge) EventParticles(h Handle) (Handle, error) {
	e, err := get[*event.Event](b, "event_particles", h)
	if err != nil {
		return Null, err
	}
	return b.mint("event_particles", newVector(kindParticle, e.Particles()))
}

// EventVertices returns a vertex vector holding every vertex of the event.
func (b *Bridge) EventVertices(h Handle) (Handle, error) {
	e, err := get[*event.Event](b, "event_vertices", h)
	if err != nil {
		return Null, err
	}
	return b.mint("event_vertices", newVector(kindVertex, e.Vertices()))
}

// ShiftEventPosition translates every vertex position by (x, y, z, t).
func (b *Bridge) ShiftEventPosition(h Handle, x, y, z, t float64) error {
	e, err := get[*event.Event](b, "shift_position", h)
	if err != nil {
		return err
	}
	e.Shift(event.NewFourVector(x, y, z, t))
	return nil
}

func (b *Bridge) EventNumber(h Handle) (int, error) {
	e, err := get[*event.Event](b, "event_number", h)
	if err != nil {
		return 0, err
	}
	return e.EventNumber(), nil
}

func (b *Bridge) SetEventNumber(h Handle, n int) error {
	e, err := get[*event.Event](b, "set_event_number", h)
	if err != nil {
		return err
	}
	e.SetEventNumber(n)
	return nil
}

// Units returns the event's momentum and length units, e.g. "GEV" and "MM".
func (b *Bridge) Units(h Handle) (string, string, error) {
	e, err := get[*event.Event](b, "units", h)
	if err != nil {
		return "", "", err
	}
	mu, lu := e.Units()
	return mu.String(), lu.String(), nil
}

// SetUnits converts every momentum and position of the event.
func (b *Bridge) SetUnits(h Handle, momentum, length string) error {
	e, err := get[*event.Event](b, "set_units", h)
	if err != nil {
		return err
	}
	mu, err := event.ParseMomentumUnit(momentum)
	if err != nil {
		return &HandleError{Op: "set_units", Handle: h, cause: err}
	}
	lu, err := event.ParseLengthUnit(length)
	if err != nil {
		return &HandleError{Op: "set_units", Handle: h, cause: err}
	}
	e.SetUnits(mu, lu)
	return nil
}

func (b *Bridge) Weights(h Handle) ([]float64, error) {
	e, err := get[*event.Event](b, "weights", h)
	if err != nil {
		return nil, err
	}
	return e.Weights(), nil
}

func (b *Bridge) SetWeights(h Handle, w []float64) error {
	e, err := get[*event.Event](b, "set_weights", h)
	if err != nil {
		return err
	}
	e.SetWeights(w)
	return nil
}

// Weight returns the weight registered under name in the event's run info.
func (b *Bridge) Weight(h Handle, name string) (float64, error) {
	e, err := get[*event.Event](b, "weight", h)
	if err != nil {
		return 0, err
	}
	w, err := e.Weight(name)
	if err != nil {
		return 0, &HandleError{Op: "weight", Handle: h, cause: err}
	}
	return w, nil
}

// ClearEvent empties the event. Entities it owned become detached.
func (b *Bridge) ClearEvent(h Handle) error {
	e, err := get[*event.Event](b, "clear_event", h)
	if err != nil {
		return err
	}
	e.Clear()
	return nil
}

// ValidateEvent checks the event's back-references and id assignment.
func (b *Bridge) ValidateEvent(h Handle) error {
	e, err := get[*event.Event](b, "validate_event", h)
	if err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return &HandleError{Op: "validate_event", Handle: h, cause: err}
	}
	return nil
}

// CreateRunInfo creates empty run info.
func (b *Bridge) CreateRunInfo() (Handle, error) {
	return b.mint("create_run_info", event.NewRunInfo())
}

// SetRunInfo attaches run info to the event. Null detaches it.
func (b *Bridge) SetRunInfo(eh, rh Handle) error {
	e, err := get[*event.Event](b, "set_run_info", eh)
	if err != nil {
		return err
	}
	if rh.IsNull() {
		e.SetRunInfo(nil)
		return nil
	}
	ri, err := get[*event.RunInfo](b, "set_run_info", rh)
	if err != nil {
		return err
	}
	e.SetRunInfo(ri)
	return nil
}

// RunInfo returns a new handle to the event's run info, or Null.
func (b *Bridge) RunInfo(h Handle) (Handle, error) {
	e, err := get[*event.Event](b, "run_info", h)
	if err != nil {
		return Null, err
	}
	return mintOrNull(b, "run_info", e.RunInfo())
}

func (b *Bridge) SetWeightNames(h Handle, names []string) error {
	ri, err := get[*event.RunInfo](b, "set_weight_names", h)
	if err != nil {
		return err
	}
	ri.SetWeightNames(names)
	return nil
}

func (b *Bridge) WeightNames(h Handle) ([]string, error) {
	ri, err := get[*event.RunInfo](b, "weight_names", h)
	if err != nil {
		return nil, err
	}
	return ri.WeightNames(), nil
}

// AddTool records a program that contributed to the run.
func (b *Bridge) AddTool(h Handle, name, version, description string) error {
	ri, err := get[*event.RunInfo](b, "add_tool", h)
	if err != nil {
		return err
	}
	ri.AddTool(event.Tool{Name: name, Version: version, Description: description})
	return nil
}

// Tools returns the tools recorded in the run info.
func (b *Bridge) Tools(h Handle) ([]event.Tool, error) {
	ri, err := get[*event.RunInfo](b, "tools", h)
	if err != nil {
		return nil, err
	}
	return ri.Tools(), nil
}
