package hepio

import (
	"fmt"

	"github.com/hupe1980/hepgo/attribute"
	"github.com/hupe1980/hepgo/event"
)

// Record is the flat document written by the JSON and msgpack formats.
// Vertex ids are negative and particle ids positive, as in the text listing.
type Record struct {
	EventNumber  int               `json:"event_number"`
	MomentumUnit string            `json:"momentum_unit"`
	LengthUnit   string            `json:"length_unit"`
	Weights      []float64         `json:"weights,omitempty"`
	Run          *RunRecord        `json:"run,omitempty"`
	Particles    []ParticleRecord  `json:"particles"`
	Vertices     []VertexRecord    `json:"vertices"`
	Attributes   []AttributeRecord `json:"attributes,omitempty"`
}

// RunRecord carries run info. Writers emit it with the first record only.
type RunRecord struct {
	WeightNames []string          `json:"weight_names,omitempty"`
	Tools       []ToolRecord      `json:"tools,omitempty"`
	Attributes  []AttributeRecord `json:"attributes,omitempty"`
}

// ToolRecord describes one tool of a run.
type ToolRecord struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParticleRecord is one particle. ProductionVertex and EndVertex are 0 when
// unset.
type ParticleRecord struct {
	ID               int        `json:"id"`
	PDGID            int        `json:"pdg_id"`
	Status           int        `json:"status"`
	Momentum         [4]float64 `json:"momentum"`
	GeneratedMass    *float64   `json:"generated_mass,omitempty"`
	ProductionVertex int        `json:"production_vertex,omitempty"`
	EndVertex        int        `json:"end_vertex,omitempty"`
}

// VertexRecord is one vertex with the ids of its incoming particles.
type VertexRecord struct {
	ID       int        `json:"id"`
	Status   int        `json:"status"`
	Position [4]float64 `json:"position"`
	Incoming []int      `json:"incoming,omitempty"`
}

// AttributeRecord stores an attribute in its text form. Index 0 is the
// event, positive indices particles and negative indices vertices.
type AttributeRecord struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewRecord flattens ev. Run info is included when withRun is set.
func NewRecord(ev *event.Event, withRun bool) *Record {
	mu, lu := ev.Units()
	rec := &Record{
		EventNumber:  ev.EventNumber(),
		MomentumUnit: mu.String(),
		LengthUnit:   lu.String(),
		Weights:      ev.Weights(),
		Particles:    make([]ParticleRecord, 0, ev.NumParticles()),
		Vertices:     make([]VertexRecord, 0, ev.NumVertices()),
	}
	if ri := ev.RunInfo(); withRun && ri != nil {
		rec.Run = newRunRecord(ri)
	}

	for _, p := range ev.Particles() {
		m := p.Momentum()
		pr := ParticleRecord{
			ID:       p.ID(),
			PDGID:    p.PDGID(),
			Status:   p.Status(),
			Momentum: [4]float64{m.X, m.Y, m.Z, m.T},
		}
		if p.IsGeneratedMassSet() {
			gm := p.GeneratedMass()
			pr.GeneratedMass = &gm
		}
		if v := p.ProductionVertex(); v != nil && v.Event() == ev {
			pr.ProductionVertex = v.ID()
		}
		if v := p.EndVertex(); v != nil && v.Event() == ev {
			pr.EndVertex = v.ID()
		}
		rec.Particles = append(rec.Particles, pr)

		for _, name := range p.AttributeNames() {
			a, _ := p.Attribute(name)
			rec.Attributes = append(rec.Attributes, AttributeRecord{Index: p.ID(), Name: name, Value: attribute.Format(a)})
		}
	}

	for _, v := range ev.Vertices() {
		pos := v.Position()
		vr := VertexRecord{
			ID:       v.ID(),
			Status:   v.Status(),
			Position: [4]float64{pos.X, pos.Y, pos.Z, pos.T},
		}
		for _, p := range v.ParticlesIn() {
			vr.Incoming = append(vr.Incoming, p.ID())
		}
		rec.Vertices = append(rec.Vertices, vr)

		for _, name := range v.AttributeNames() {
			a, _ := v.Attribute(name)
			rec.Attributes = append(rec.Attributes, AttributeRecord{Index: v.ID(), Name: name, Value: attribute.Format(a)})
		}
	}

	for _, name := range ev.AttributeNames() {
		for _, idx := range ev.AttributeIndices(name) {
			a, _ := ev.Attribute(name, idx)
			rec.Attributes = append(rec.Attributes, AttributeRecord{Index: idx, Name: name, Value: attribute.Format(a)})
		}
	}
	return rec
}

func newRunRecord(ri *event.RunInfo) *RunRecord {
	rr := &RunRecord{WeightNames: ri.WeightNames()}
	for _, t := range ri.Tools() {
		rr.Tools = append(rr.Tools, ToolRecord(t))
	}
	for _, name := range ri.AttributeNames() {
		a, _ := ri.Attribute(name)
		rr.Attributes = append(rr.Attributes, AttributeRecord{Name: name, Value: attribute.Format(a)})
	}
	return rr
}

// RunInfo builds run info from the record, or nil when it carries none.
func (r *RunRecord) RunInfo() (*event.RunInfo, error) {
	if r == nil {
		return nil, nil
	}
	ri := event.NewRunInfo()
	ri.SetWeightNames(r.WeightNames)
	for _, t := range r.Tools {
		ri.AddTool(event.Tool(t))
	}
	for _, a := range r.Attributes {
		v, err := attribute.Parse(a.Name, a.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: run attribute %q: %w", ErrMalformed, a.Name, err)
		}
		if err := ri.SetAttribute(a.Name, v); err != nil {
			return nil, err
		}
	}
	return ri, nil
}

// Decode rebuilds ev from the record. ev is cleared first and left cleared
// on error.
func (r *Record) Decode(ev *event.Event, ri *event.RunInfo) error {
	ev.Clear()
	if err := r.decode(ev, ri); err != nil {
		ev.Clear()
		return err
	}
	return nil
}

func (r *Record) decode(ev *event.Event, ri *event.RunInfo) error {
	mu, err := event.ParseMomentumUnit(r.MomentumUnit)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	lu, err := event.ParseLengthUnit(r.LengthUnit)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	ev.SetEventNumber(r.EventNumber)
	ev.SetUnits(mu, lu)
	ev.SetWeights(r.Weights)
	ev.SetRunInfo(ri)

	particles := make([]particleLine, 0, len(r.Particles))
	var genMass []*float64
	for _, p := range r.Particles {
		particles = append(particles, particleLine{
			id:     p.ID,
			prod:   p.ProductionVertex,
			pdg:    p.PDGID,
			status: p.Status,
			mom:    event.NewFourVector(p.Momentum[0], p.Momentum[1], p.Momentum[2], p.Momentum[3]),
		})
		genMass = append(genMass, p.GeneratedMass)
	}

	vertices := make([]vertexLine, 0, len(r.Vertices))
	for _, v := range r.Vertices {
		vertices = append(vertices, vertexLine{
			id:     v.ID,
			status: v.Status,
			in:     v.Incoming,
			pos:    event.NewFourVector(v.Position[0], v.Position[1], v.Position[2], v.Position[3]),
		})
	}

	attrs := make([]attributeLine, 0, len(r.Attributes))
	for _, a := range r.Attributes {
		v, err := attribute.Parse(a.Name, a.Value)
		if err != nil {
			return fmt.Errorf("%w: attribute %q: %w", ErrMalformed, a.Name, err)
		}
		attrs = append(attrs, attributeLine{index: a.Index, name: a.Name, value: v})
	}

	if err := assemble(ev, particles, vertices, attrs); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	// Records keep the unset state of the generated mass, which the text
	// listing cannot express.
	for i, p := range r.Particles {
		q := ev.ParticleByID(p.ID)
		if q == nil {
			continue
		}
		if gm := genMass[i]; gm != nil {
			q.SetGeneratedMass(*gm)
		} else {
			q.UnsetGeneratedMass()
		}
	}
	return nil
}
