package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitConservesTotal(t *testing.T) {
	rng := NewRNG(4711)
	total := event.NewFourVector(1, -2, 3, 40)

	parts := rng.Split(total, 5)
	require.Len(t, parts, 5)

	var sum event.FourVector
	for _, p := range parts {
		sum = sum.Add(p)
	}
	assert.InDelta(t, total.X, sum.X, 1e-9)
	assert.InDelta(t, total.Y, sum.Y, 1e-9)
	assert.InDelta(t, total.Z, sum.Z, 1e-9)
	assert.InDelta(t, total.T, sum.T, 1e-9)
	assert.Nil(t, rng.Split(total, 0))
}

func TestCascade(t *testing.T) {
	rng := NewRNG(4711)
	ev := rng.Cascade(CascadeConfig{MaxDepth: 4, MaxChildren: 4, Weights: 3, Attributes: true})

	require.NoError(t, ev.Validate())
	assert.GreaterOrEqual(t, ev.NumParticles(), 4)
	assert.GreaterOrEqual(t, ev.NumVertices(), 1)
	assert.Len(t, ev.Weights(), 3)

	for _, v := range ev.Vertices() {
		var in, out event.FourVector
		for _, p := range v.ParticlesIn() {
			in = in.Add(p.Momentum())
		}
		for _, p := range v.ParticlesOut() {
			out = out.Add(p.Momentum())
		}
		assert.InDelta(t, in.T, out.T, 1e-6, "vertex %d", v.ID())
		assert.InDelta(t, in.Z, out.Z, 1e-6, "vertex %d", v.ID())
	}

	_, ok := ev.CrossSection()
	assert.True(t, ok)
	_, ok = ev.Attribute("signal_process_id", 0)
	assert.True(t, ok)
}

func TestCascadeDeterministic(t *testing.T) {
	cfg := CascadeConfig{MaxDepth: 3}
	a := NewRNG(7).Cascade(cfg)
	b := NewRNG(7).Cascade(cfg)

	require.Equal(t, a.NumParticles(), b.NumParticles())
	for i := range a.NumParticles() {
		assert.Equal(t, a.Particle(i).Momentum(), b.Particle(i).Momentum())
		assert.Equal(t, a.Particle(i).PDGID(), b.Particle(i).PDGID())
	}

	rng := NewRNG(7)
	first := rng.Cascade(cfg)
	rng.Reset()
	assert.Equal(t, first.NumParticles(), rng.Cascade(cfg).NumParticles())
	assert.Equal(t, int64(7), rng.Seed())
}

func TestEventsAndRunInfo(t *testing.T) {
	evs := NewRNG(1).Events(3, CascadeConfig{})
	require.Len(t, evs, 3)
	assert.Equal(t, 3, evs[2].EventNumber())

	ri := RunInfo(2)
	assert.Equal(t, []string{"w0", "w1"}, ri.WeightNames())
	assert.Len(t, ri.Tools(), 1)
}

func TestFaultyStore(t *testing.T) {
	ctx := context.Background()
	store := NewFaultyStore(blobstore.NewMemoryStore())
	store.AddRule("broken", Fault{FailAfterBytes: 4})
	store.AddRule("closing", Fault{FailOnClose: true})
	store.AddRule("missing", Fault{FailOnOpen: true, FailOnCreate: true})

	t.Run("write limit", func(t *testing.T) {
		wb, err := store.Create(ctx, "broken.bin")
		require.NoError(t, err)

		n, err := wb.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = wb.Write([]byte("defg"))
		assert.ErrorIs(t, err, ErrInjected)
		assert.Equal(t, 1, n)
		require.NoError(t, wb.Close())
	})

	t.Run("close", func(t *testing.T) {
		wb, err := store.Create(ctx, "closing.bin")
		require.NoError(t, err)
		_, err = wb.Write([]byte("payload"))
		require.NoError(t, err)
		assert.ErrorIs(t, wb.Close(), ErrInjected)
	})

	t.Run("open and create", func(t *testing.T) {
		_, err := store.Create(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrInjected)
		_, err = store.Open(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("passthrough", func(t *testing.T) {
		wb, err := store.Create(ctx, "ok.bin")
		require.NoError(t, err)
		_, err = wb.Write([]byte("payload"))
		require.NoError(t, err)
		require.NoError(t, wb.Close())

		b, err := store.Open(ctx, "ok.bin")
		require.NoError(t, err)
		rc, err := blobstore.NewReader(ctx, b)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "payload", string(data))

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, names, "ok.bin")
		require.NoError(t, store.Delete(ctx, "ok.bin"))
	})
}
