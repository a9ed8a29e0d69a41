//go:build cgo

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestABI_GraphAndNavigation(t *testing.T) {
	ev := hepgo_create_event()
	v := hepgo_create_vertex(0, 0, 0, 0)
	p := hepgo_create_particle(0, 0, 10, 10, 11, 1)
	require.NotZero(t, ev)
	require.NotZero(t, v)
	require.NotZero(t, p)

	require.Equal(t, 1, int(hepgo_add_particle_in(v, p)))
	require.Equal(t, 1, int(hepgo_add_vertex_to_event(ev, v)))

	end := hepgo_end_vertex(p)
	require.NotZero(t, end)
	assert.Equal(t, 1, int(hepgo_vertices_equal(end, v)))
	assert.NotEqual(t, end, v)

	assert.Zero(t, hepgo_production_vertex(p))
	assert.Equal(t, int64(1), int64(hepgo_particles_size(ev)))

	assert.Equal(t, 1, int(hepgo_release(end)))
	assert.Equal(t, 1, int(hepgo_release(p)))
	assert.Equal(t, 1, int(hepgo_release(v)))
	assert.Equal(t, 1, int(hepgo_release(ev)))
}

func TestABI_ContractViolationSetsLastError(t *testing.T) {
	p := hepgo_create_particle(0, 0, 0, 0, 22, 1)
	require.Equal(t, 1, int(hepgo_release(p)))

	assert.Equal(t, 0, int(hepgo_release(p)))
	assert.NotNil(t, hepgo_last_error())

	vec := hepgo_create_particle_vector()
	assert.Equal(t, int64(0), int64(hepgo_vector_size(vec)))
	assert.Zero(t, hepgo_vector_at(vec, 0))
	assert.Equal(t, int64(-1), int64(hepgo_vector_size(0)))
}

func TestABI_Streams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abi.hepmc3")

	ev := hepgo_create_event()
	v := hepgo_create_vertex(0, 0, 0, 0)
	p := hepgo_create_particle(1, 2, 3, 4, 2212, 4)
	require.Equal(t, 1, int(hepgo_add_particle_in(v, p)))
	require.Equal(t, 1, int(hepgo_add_vertex_to_event(ev, v)))

	cpath := cString(path)
	defer freeCString(cpath)

	w := hepgo_create_writer(cpath)
	require.NotZero(t, w)
	require.Equal(t, 1, int(hepgo_write_event(w, ev)))
	require.Equal(t, 1, int(hepgo_close_writer(w)))
	assert.Equal(t, 0, int(hepgo_close_writer(w)))

	r := hepgo_create_reader(cpath)
	require.NotZero(t, r)
	in := hepgo_create_event()
	require.Equal(t, 1, int(hepgo_read_event(r, in)))
	assert.Equal(t, int64(1), int64(hepgo_particles_size(in)))
	assert.Equal(t, 0, int(hepgo_read_event(r, in)))
	assert.Nil(t, hepgo_last_error())
	require.Equal(t, 1, int(hepgo_close_reader(r)))
}
