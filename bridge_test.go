package hepgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hepgo/attribute"
)

func newTestBridge(t *testing.T) (*Bridge, *BasicMetricsCollector) {
	t.Helper()
	mc := &BasicMetricsCollector{}
	return New(WithMetricsCollector(mc)), mc
}

// handleMust returns a helper that fails the test unless a call produced a
// non-null handle.
func handleMust(t *testing.T) func(Handle, error) Handle {
	return func(h Handle, err error) Handle {
		t.Helper()
		require.NoError(t, err)
		require.False(t, h.IsNull())
		return h
	}
}

func TestBridge_SharedOwnership(t *testing.T) {
	b, mc := newTestBridge(t)
	must := handleMust(t)

	p := must(b.CreateParticle(1, 2, 3, 4, 11, 1))
	v := must(b.CreateVertex(0, 0, 0, 0))
	ev := must(b.CreateEvent())

	require.NoError(t, b.AddParticleOut(v, p))
	require.NoError(t, b.AddVertexToEvent(ev, v))

	// Second share through the event, then drop the creator's share.
	other := must(b.ParticleAt(ev, 0))
	require.NoError(t, b.Release(p))

	pdg, err := b.ParticlePDGID(other)
	require.NoError(t, err)
	assert.Equal(t, 11, pdg)

	prod, err := b.ProductionVertex(other)
	require.NoError(t, err)
	same, err := b.VerticesEqual(prod, v)
	require.NoError(t, err)
	assert.True(t, same)

	for _, h := range []Handle{other, prod, v, ev} {
		require.NoError(t, b.Release(h))
	}
	assert.Equal(t, 0, b.Live())

	stats := mc.GetStats()
	assert.Equal(t, stats.HandlesCreated, stats.HandlesReleased)
}

func TestBridge_ReleaseTwice(t *testing.T) {
	b, mc := newTestBridge(t)
	must := handleMust(t)

	p := must(b.CreateParticle(0, 0, 0, 0, 22, 1))
	require.NoError(t, b.Release(p))

	err := b.Release(p)
	require.ErrorIs(t, err, ErrStaleHandle)

	var herr *HandleError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "release", herr.Op)
	assert.Equal(t, p, herr.Handle)

	_, err = b.ParticleStatus(p)
	assert.ErrorIs(t, err, ErrStaleHandle)
	assert.Equal(t, int64(2), mc.GetStats().Violations)
}

func TestBridge_ContractViolations(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	p := must(b.CreateParticle(0, 0, 0, 0, 22, 1))
	v := must(b.CreateVertex(0, 0, 0, 0))

	t.Run("null", func(t *testing.T) {
		_, err := b.ParticleStatus(Null)
		assert.ErrorIs(t, err, ErrNullHandle)
	})

	t.Run("mistyped", func(t *testing.T) {
		_, err := b.ParticleStatus(v)
		assert.ErrorIs(t, err, ErrTypeMismatch)

		err = b.AddParticleIn(p, v)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("forged", func(t *testing.T) {
		_, err := b.VertexStatus(Handle(0xdead_0000_0001))
		assert.ErrorIs(t, err, ErrStaleHandle)
	})
}

func TestBridge_Retain(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	p := must(b.CreateParticle(0, 0, 0, 0, 22, 1))
	q := must(b.Retain(p))
	assert.NotEqual(t, p, q)

	eq, err := b.ParticlesEqual(p, q)
	require.NoError(t, err)
	assert.True(t, eq)

	require.NoError(t, b.Release(p))
	assert.False(t, b.Valid(p))
	assert.True(t, b.Valid(q))

	kind, err := b.Kind(q)
	require.NoError(t, err)
	assert.Equal(t, "particle", kind)
}

func TestBridge_AddParticleIn(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	v := must(b.CreateVertex(0, 0, 0, 0))
	p := must(b.CreateParticle(0, 0, 1, 1, 11, 4))
	require.NoError(t, b.AddParticleIn(v, p))

	end, err := b.EndVertex(p)
	require.NoError(t, err)
	eq, err := b.VerticesEqual(end, v)
	require.NoError(t, err)
	assert.True(t, eq)

	prod, err := b.ProductionVertex(p)
	require.NoError(t, err)
	assert.True(t, prod.IsNull())

	n, err := b.ParticlesInSize(v)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBridge_AddParticleMovesBetweenVertices(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	v1 := must(b.CreateVertex(0, 0, 0, 0))
	v2 := must(b.CreateVertex(1, 0, 0, 0))
	p := must(b.CreateParticle(0, 0, 1, 1, 11, 1))

	require.NoError(t, b.AddParticleOut(v1, p))
	require.NoError(t, b.AddParticleOut(v2, p))

	n1, err := b.ParticlesOutSize(v1)
	require.NoError(t, err)
	n2, err := b.ParticlesOutSize(v2)
	require.NoError(t, err)
	assert.Equal(t, 0, n1)
	assert.Equal(t, 1, n2)

	prod, err := b.ProductionVertex(p)
	require.NoError(t, err)
	eq, err := b.VerticesEqual(prod, v2)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestBridge_ForeignEvent(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	e1 := must(b.CreateEvent())
	e2 := must(b.CreateEvent())
	v1 := must(b.CreateVertex(0, 0, 0, 0))
	v2 := must(b.CreateVertex(0, 0, 0, 0))
	p := must(b.CreateParticle(0, 0, 1, 1, 11, 1))

	require.NoError(t, b.AddVertexToEvent(e1, v1))
	require.NoError(t, b.AddVertexToEvent(e2, v2))
	require.NoError(t, b.AddParticleOut(v1, p))

	err := b.AddParticleIn(v2, p)
	require.ErrorIs(t, err, ErrForeignEvent)

	end, err := b.EndVertex(p)
	require.NoError(t, err)
	assert.True(t, end.IsNull())
}

func TestBridge_VectorRoundTrip(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	vec := must(b.CreateParticleVector())
	const n = 5
	particles := make([]Handle, n)
	for i := range particles {
		particles[i] = must(b.CreateParticle(float64(i), 0, 0, 0, 211, 1))
		require.NoError(t, b.VectorPush(vec, particles[i]))
	}

	size, err := b.VectorSize(vec)
	require.NoError(t, err)
	assert.Equal(t, n, size)

	for i := range particles {
		at := must(b.VectorAt(vec, i))
		eq, err := b.ParticlesEqual(at, particles[i])
		require.NoError(t, err)
		assert.True(t, eq, "element %d", i)
	}

	// Elements outlive both the pushed handle and the vector.
	first := must(b.VectorAt(vec, 0))
	require.NoError(t, b.Release(particles[0]))
	require.NoError(t, b.Release(vec))
	m, err := b.ParticleMomentum(first)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.X)
}

func TestBridge_VectorBounds(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	vec := must(b.CreateVertexVector())
	v := must(b.CreateVertex(0, 0, 0, 0))
	require.NoError(t, b.VectorPush(vec, v))

	for _, i := range []int{-1, 1, 100} {
		h, err := b.VectorAt(vec, i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
		assert.True(t, h.IsNull())

		var ierr *IndexError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, 1, ierr.Size)
	}
}

func TestBridge_VectorKindMismatch(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	vec := must(b.CreateEventVector())
	p := must(b.CreateParticle(0, 0, 0, 0, 22, 1))

	err := b.VectorPush(vec, p)
	require.ErrorIs(t, err, ErrTypeMismatch)

	size, err := b.VectorSize(vec)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	kind, err := b.VectorKind(vec)
	require.NoError(t, err)
	assert.Equal(t, "event", kind)
}

func TestBridge_AttributeOverwrite(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	p := must(b.CreateParticle(0, 0, 0, 0, 22, 1))
	a1 := must(b.CreateIntAttribute(1))
	a2 := must(b.CreateStringAttribute("two"))

	require.NoError(t, b.AddParticleAttribute(p, "k", a1))
	require.NoError(t, b.AddParticleAttribute(p, "k", a2))

	got := must(b.ParticleAttribute(p, "k"))
	kind, err := b.AttributeKind(got)
	require.NoError(t, err)
	assert.Equal(t, attribute.KindString, kind)

	s, err := b.AttributeString(got)
	require.NoError(t, err)
	assert.Equal(t, "two", s)

	_, err = b.AttributeInt(got)
	assert.ErrorIs(t, err, ErrAttributeKind)

	names, err := b.ParticleAttributeNames(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, names)

	require.NoError(t, b.RemoveParticleAttribute(p, "k"))
	missing, err := b.ParticleAttribute(p, "k")
	require.NoError(t, err)
	assert.True(t, missing.IsNull())
}

func TestBridge_VertexAttributes(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	v := must(b.CreateVertex(0, 0, 0, 0))
	a := must(b.CreateDoubleAttribute(0.5))
	require.NoError(t, b.AddVertexAttribute(v, "weight", a))

	got := must(b.VertexAttribute(v, "weight"))
	d, err := b.AttributeDouble(got)
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)

	text, err := b.AttributeText(got)
	require.NoError(t, err)
	assert.Equal(t, "0.5", text)

	require.NoError(t, b.RemoveVertexAttribute(v, "weight"))
	names, err := b.VertexAttributeNames(v)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBridge_EventAttributes(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	ev := must(b.CreateEvent())
	a := must(b.CreateIntAttribute(3))
	require.NoError(t, b.AddEventAttribute(ev, "flow", a, 1))
	require.NoError(t, b.AddEventAttribute(ev, "flow", a, 2))

	got := must(b.EventAttribute(ev, "flow", 2))
	i, err := b.AttributeInt(got)
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)

	require.NoError(t, b.RemoveEventAttribute(ev, "flow"))
	for _, idx := range []int{1, 2} {
		h, err := b.EventAttribute(ev, "flow", idx)
		require.NoError(t, err)
		assert.True(t, h.IsNull())
	}
}

func TestBridge_CompositeAttributes(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	ev := must(b.CreateEvent())

	xs1 := must(b.CreateCrossSection(attribute.CrossSection{Value: 1.5, Error: 0.1}))
	xs2 := must(b.CreateCrossSection(attribute.CrossSection{Value: 2.5, Error: 0.2, AcceptedEvents: 10, AttemptedEvents: 20}))
	require.NoError(t, b.AddCrossSectionAttribute(ev, xs1))
	require.NoError(t, b.AddCrossSectionAttribute(ev, xs2))

	got := must(b.EventAttribute(ev, attribute.NameCrossSection, 0))
	xs, err := b.AttributeCrossSection(got)
	require.NoError(t, err)
	assert.Equal(t, 2.5, xs.Value)
	assert.Equal(t, int64(20), xs.AttemptedEvents)

	pdf := must(b.CreatePdfInfo(attribute.PdfInfo{Parton1: 21, Parton2: 2, X1: 0.1, X2: 0.2, Q: 91.2}))
	require.NoError(t, b.AddPdfInfoAttribute(ev, pdf))
	gotPdf, err := b.AttributePdfInfo(must(b.EventAttribute(ev, attribute.NamePdfInfo, 0)))
	require.NoError(t, err)
	assert.Equal(t, 21, gotPdf.Parton1)

	hi := must(b.CreateHeavyIon(attribute.HeavyIon{NcollHard: 4, ImpactParameter: 2.5}))
	require.NoError(t, b.AddHeavyIonAttribute(ev, hi))
	gotHI, err := b.AttributeHeavyIon(must(b.EventAttribute(ev, attribute.NameHeavyIon, 0)))
	require.NoError(t, err)
	assert.Equal(t, 2.5, gotHI.ImpactParameter)

	// Reserved names reject the wrong kind.
	err = b.AddCrossSectionAttribute(ev, pdf)
	assert.ErrorIs(t, err, ErrAttributeKind)
}

func TestBridge_RunInfo(t *testing.T) {
	b, _ := newTestBridge(t)
	must := handleMust(t)

	ev := must(b.CreateEvent())
	ri := must(b.CreateRunInfo())
	require.NoError(t, b.SetWeightNames(ri, []string{"nominal", "scale_up"}))
	require.NoError(t, b.AddTool(ri, "gen", "1.0", "test generator"))
	require.NoError(t, b.SetRunInfo(ev, ri))
	require.NoError(t, b.SetWeights(ev, []float64{1, 1.25}))

	w, err := b.Weight(ev, "scale_up")
	require.NoError(t, err)
	assert.Equal(t, 1.25, w)

	_, err = b.Weight(ev, "missing")
	assert.Error(t, err)

	got := must(b.RunInfo(ev))
	names, err := b.WeightNames(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"nominal", "scale_up"}, names)

	tools, err := b.Tools(got)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "gen", tools[0].Name)

	a := must(b.CreateStringAttribute("pp"))
	require.NoError(t, b.AddRunInfoAttribute(ri, "beam", a))
	beam, err := b.AttributeString(must(b.RunInfoAttribute(got, "beam")))
	require.NoError(t, err)
	assert.Equal(t, "pp", beam)

	require.NoError(t, b.SetRunInfo(ev, Null))
	detached, err := b.RunInfo(ev)
	require.NoError(t, err)
	assert.True(t, detached.IsNull())
}
