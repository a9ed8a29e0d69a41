package hepgo_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/hepgo"
)

// Example_buildGraph demonstrates assembling a decay and navigating it.
func Example_buildGraph() {
	b := hepgo.New()

	ev, _ := b.CreateEvent()
	v, _ := b.CreateVertex(0, 0, 0, 0)
	z, _ := b.CreateParticle(0, 0, 0, 91.19, 23, 2)
	mu, _ := b.CreateParticle(0, 0, 45.6, 45.6, 13, 1)

	if err := b.AddParticleIn(v, z); err != nil {
		log.Fatal(err)
	}
	if err := b.AddParticleOut(v, mu); err != nil {
		log.Fatal(err)
	}
	if err := b.AddVertexToEvent(ev, v); err != nil {
		log.Fatal(err)
	}

	end, _ := b.EndVertex(z)
	same, _ := b.VerticesEqual(end, v)
	n, _ := b.ParticlesSize(ev)

	fmt.Println(same, n)
	// Output: true 2
}

// Example_writeRead demonstrates writing an event listing and reading it back.
func Example_writeRead() {
	dir, err := os.MkdirTemp("", "hepgo-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "events.hepmc3")

	b := hepgo.New()

	ev, _ := b.CreateEvent()
	_ = b.SetEventNumber(ev, 7)
	v, _ := b.CreateVertex(0, 0, 0, 0)
	p, _ := b.CreateParticle(0, 0, 7000, 7000, 2212, 4)
	_ = b.AddParticleIn(v, p)
	_ = b.AddVertexToEvent(ev, v)

	w, _ := b.CreateWriter(path)
	if _, err := b.WriteEvent(w, ev); err != nil {
		log.Fatal(err)
	}
	if err := b.CloseWriter(w); err != nil {
		log.Fatal(err)
	}

	r, _ := b.CreateReader(path)
	defer func() { _ = b.CloseReader(r) }()

	in, _ := b.CreateEvent()
	ok, err := b.ReadEvent(r, in)
	if err != nil {
		log.Fatal(err)
	}
	num, _ := b.EventNumber(in)
	np, _ := b.ParticlesSize(in)
	fmt.Println(ok, num, np)
	// Output: true 7 1
}
