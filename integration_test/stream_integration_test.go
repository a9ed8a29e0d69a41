package integration_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hepgo"
	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/hepio"
	"github.com/hupe1980/hepgo/testutil"
)

func writeStream(t *testing.T, path string, evs []*event.Event, weights int) {
	t.Helper()

	w, err := hepio.Create(context.Background(), path, hepio.WithRunInfo(testutil.RunInfo(weights)))
	require.NoError(t, err)
	for _, ev := range evs {
		require.NoError(t, w.Write(ev))
	}
	require.NoError(t, w.Close())
}

// TestE2E_ConcurrentReaders reads one stream from several goroutines through
// a shared bridge and checks every particle against the generated events.
func TestE2E_ConcurrentReaders(t *testing.T) {
	rng := testutil.NewRNG(42)
	want := rng.Events(30, testutil.CascadeConfig{MaxDepth: 4, MaxChildren: 4, Weights: 2, Attributes: true})

	for _, name := range []string{"events.hepmc3.gz", "events.json.zst", "events.msgpack"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writeStream(t, path, want, 2)

			mc := &hepgo.BasicMetricsCollector{}
			b := hepgo.New(hepgo.WithMetricsCollector(mc))

			g, ctx := errgroup.WithContext(context.Background())
			for range 4 {
				g.Go(func() error { return readAndCompare(ctx, b, path, want) })
			}
			require.NoError(t, g.Wait())

			assert.Zero(t, b.Live())
			stats := mc.GetStats()
			assert.Equal(t, int64(4*len(want)), stats.ReadCount)
			assert.Zero(t, stats.ReadErrors)
			assert.Zero(t, stats.Violations)
			assert.Equal(t, stats.HandlesCreated, stats.HandlesReleased)
		})
	}
}

func readAndCompare(ctx context.Context, b *hepgo.Bridge, path string, want []*event.Event) (err error) {
	r, err := b.CreateReaderContext(ctx, path)
	if err != nil {
		return err
	}
	ev, err := b.CreateEvent()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := b.CloseReader(r); err == nil {
			err = cerr
		}
		_ = b.Release(r)
		_ = b.Release(ev)
	}()

	for i, w := range want {
		ok, err := b.ReadEvent(r, ev)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("stream ended after %d events", i)
		}
		if err := b.ValidateEvent(ev); err != nil {
			return err
		}
		if err := compareParticles(b, ev, w); err != nil {
			return fmt.Errorf("event %d: %w", w.EventNumber(), err)
		}
		weight, err := b.Weight(ev, "w1")
		if err != nil {
			return err
		}
		if weight != w.Weights()[1] {
			return fmt.Errorf("event %d: weight w1 = %v, want %v", w.EventNumber(), weight, w.Weights()[1])
		}
	}

	ok, err := b.ReadEvent(r, ev)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("stream has more than %d events", len(want))
	}
	return nil
}

func compareParticles(b *hepgo.Bridge, eh hepgo.Handle, want *event.Event) error {
	n, err := b.ParticlesSize(eh)
	if err != nil {
		return err
	}
	if n != want.NumParticles() {
		return fmt.Errorf("%d particles, want %d", n, want.NumParticles())
	}

	for i := range n {
		ph, err := b.ParticleAt(eh, i)
		if err != nil {
			return err
		}
		mom, err := b.ParticleMomentum(ph)
		if err != nil {
			return err
		}
		pdg, err := b.ParticlePDGID(ph)
		if err != nil {
			return err
		}
		prod, err := b.ProductionVertex(ph)
		if err != nil {
			return err
		}
		_ = b.Release(ph)

		wp := want.Particle(i)
		if mom != wp.Momentum() || pdg != wp.PDGID() {
			return fmt.Errorf("particle %d differs", wp.ID())
		}
		if prod.IsNull() != (wp.ProductionVertex() == nil) {
			return fmt.Errorf("particle %d production vertex mismatch", wp.ID())
		}
		if !prod.IsNull() {
			_ = b.Release(prod)
		}
	}
	return nil
}

// TestE2E_BridgeWriteHepioRead builds a graph through handles and reads it
// back with the stream package directly.
func TestE2E_BridgeWriteHepioRead(t *testing.T) {
	b := hepgo.New()
	path := filepath.Join(t.TempDir(), "built.hepmc3")

	ev, err := b.CreateEvent()
	require.NoError(t, err)
	v, err := b.CreateVertex(0, 0, 0, 0)
	require.NoError(t, err)
	in, err := b.CreateParticle(0, 0, 10, 10, 22, 2)
	require.NoError(t, err)
	require.NoError(t, b.AddParticleIn(v, in))
	for _, pdg := range []int{11, -11} {
		p, err := b.CreateParticle(0, 0, 5, 5, pdg, 1)
		require.NoError(t, err)
		require.NoError(t, b.AddParticleOut(v, p))
	}
	require.NoError(t, b.AddVertexToEvent(ev, v))
	require.NoError(t, b.SetEventNumber(ev, 7))

	w, err := b.CreateWriter(path)
	require.NoError(t, err)
	ok, err := b.WriteEvent(w, ev)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, b.CloseWriter(w))

	r, err := hepio.Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	got, err := r.ReadAll(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].EventNumber())
	assert.Equal(t, 3, got[0].NumParticles())
	assert.Len(t, got[0].Particle(0).Children(), 2)
}
