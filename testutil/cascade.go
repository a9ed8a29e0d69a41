package testutil

import (
	"fmt"

	"github.com/hupe1980/hepgo/attribute"
	"github.com/hupe1980/hepgo/event"
)

// Particle status codes used by generated cascades.
const (
	StatusFinal   = 1
	StatusDecayed = 2
	StatusBeam    = 4
)

var decayProducts = []int{22, 111, 211, -211, 321, -321, 11, -11, 13, -13, 2112, 2212}

// CascadeConfig controls the shape of a generated event.
type CascadeConfig struct {
	// BeamEnergy is the energy of each incoming beam. Defaults to 6500.
	BeamEnergy float64
	// MaxDepth bounds the number of decay generations. Defaults to 3.
	MaxDepth int
	// MaxChildren bounds the multiplicity of every vertex. Defaults to 3.
	MaxChildren int
	// DecayProbability is the chance that a non-beam particle decays
	// further. Defaults to 0.5.
	DecayProbability float64
	// Weights is the number of event weights to attach.
	Weights int
	// Attributes attaches event, particle and vertex attributes.
	Attributes bool
}

func (c CascadeConfig) withDefaults() CascadeConfig {
	if c.BeamEnergy <= 0 {
		c.BeamEnergy = 6500
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 3
	}
	if c.MaxChildren < 2 {
		c.MaxChildren = 3
	}
	if c.DecayProbability <= 0 {
		c.DecayProbability = 0.5
	}
	return c
}

// Cascade generates a two-beam event whose decay tree conserves momentum at
// every vertex.
func (r *RNG) Cascade(cfg CascadeConfig) *event.Event {
	cfg = cfg.withDefaults()

	b1 := event.NewParticle(event.NewFourVector(0, 0, cfg.BeamEnergy, cfg.BeamEnergy), 2212, StatusBeam)
	b2 := event.NewParticle(event.NewFourVector(0, 0, -cfg.BeamEnergy, cfg.BeamEnergy), 2212, StatusBeam)

	root := event.NewVertex(event.FourVector{})
	mustLink(root.AddParticleIn(b1))
	mustLink(root.AddParticleIn(b2))

	vertices := []*event.Vertex{root}
	r.decay(root, b1.Momentum().Add(b2.Momentum()), 1, cfg, &vertices)

	ev := event.New()
	for _, v := range vertices {
		mustLink(ev.AddVertex(v))
	}

	if cfg.Weights > 0 {
		w := make([]float64, cfg.Weights)
		for i := range w {
			w[i] = r.Uniform(0.5, 1.5)
		}
		ev.SetWeights(w)
	}
	if cfg.Attributes {
		r.annotate(ev)
	}
	return ev
}

// Events generates n cascades numbered from 1.
func (r *RNG) Events(n int, cfg CascadeConfig) []*event.Event {
	evs := make([]*event.Event, n)
	for i := range evs {
		evs[i] = r.Cascade(cfg)
		evs[i].SetEventNumber(i + 1)
	}
	return evs
}

// RunInfo returns run info naming the given number of weights.
func RunInfo(weights int) *event.RunInfo {
	ri := event.NewRunInfo()
	names := make([]string, weights)
	for i := range names {
		names[i] = fmt.Sprintf("w%d", i)
	}
	ri.SetWeightNames(names)
	ri.AddTool(event.Tool{Name: "testutil", Version: "1.0", Description: "random cascade"})
	return ri
}

func (r *RNG) decay(v *event.Vertex, total event.FourVector, depth int, cfg CascadeConfig, vertices *[]*event.Vertex) {
	n := 2 + r.Intn(cfg.MaxChildren-1)
	for _, mom := range r.Split(total, n) {
		pdg := decayProducts[r.Intn(len(decayProducts))]
		p := event.NewParticle(mom, pdg, StatusFinal)
		mustLink(v.AddParticleOut(p))

		if depth >= cfg.MaxDepth || r.Float64() >= cfg.DecayProbability {
			continue
		}
		p.SetStatus(StatusDecayed)

		offset := r.FourVector(0.1)
		child := event.NewVertex(v.Position().Add(offset))
		mustLink(child.AddParticleIn(p))
		*vertices = append(*vertices, child)
		r.decay(child, mom, depth+1, cfg, vertices)
	}
}

func (r *RNG) annotate(ev *event.Event) {
	mustLink(ev.SetAttribute("signal_process_id", 0, attribute.Int(int64(r.Intn(1000)))))
	mustLink(ev.SetAttribute(attribute.NameCrossSection, 0, attribute.XSection(attribute.CrossSection{
		Value:           r.Uniform(1, 100),
		Error:           r.Uniform(0, 1),
		AcceptedEvents:  int64(1 + r.Intn(1000)),
		AttemptedEvents: 1000,
	})))
	for _, p := range ev.Particles() {
		if p.Status() == StatusFinal {
			mustLink(p.SetAttribute("flow1", attribute.Int(int64(500+r.Intn(100)))))
		}
	}
	for _, v := range ev.Vertices() {
		mustLink(v.SetAttribute("barcode", attribute.String(fmt.Sprintf("v%d", -v.ID()))))
	}
}

// mustLink panics on a graph error; generated graphs are consistent by
// construction.
func mustLink(err error) {
	if err != nil {
		panic("testutil: " + err.Error())
	}
}
