package prometheus

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hepgo"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.RecordHandle("particle")
	c.RecordHandle("particle")
	c.RecordRelease("particle")
	c.RecordRead(128, time.Millisecond, nil)
	c.RecordRead(0, time.Microsecond, io.EOF)
	c.RecordWrite(64, time.Millisecond, errors.New("disk full"))
	c.RecordViolation("vector_at", hepgo.ErrIndexOutOfRange)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.handles.WithLabelValues("particle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.liveHandles.WithLabelValues("particle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("read")))
	assert.Equal(t, 128.0, testutil.ToFloat64(c.streamBytes.WithLabelValues("read")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.streamErrors.WithLabelValues("read")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.streamErrors.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.violations.WithLabelValues("vector_at")))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewCollector(reg) })
}

func TestCollector_WithBridge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := MustNewCollector(reg)

	b := hepgo.New(hepgo.WithMetricsCollector(c))
	p, err := b.CreateParticle(0, 0, 0, 0, 22, 1)
	require.NoError(t, err)
	require.NoError(t, b.Release(p))
	assert.Error(t, b.Release(p))

	assert.Equal(t, 0.0, testutil.ToFloat64(c.liveHandles.WithLabelValues("particle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.violations.WithLabelValues("release")))
}
