// Command libhepgo builds the bridge as a C shared library:
//
//	go build -buildmode=c-shared -o libhepgo.so ./cmd/libhepgo
//
// Handles cross as uint64_t, four-vectors as four doubles and booleans as
// int (1 for true). Failing calls return 0 and record a message that
// hepgo_last_error returns until the next failing call.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"log/slog"
	"os"
	"sync"
	"unsafe"

	"github.com/hupe1980/hepgo"
	"github.com/hupe1980/hepgo/attribute"
)

var (
	bridge = newBridge()

	errMu   sync.Mutex
	lastErr *C.char
)

func newBridge() *hepgo.Bridge {
	opts := []hepgo.Option{}
	if os.Getenv("HEPGO_DEBUG") != "" {
		opts = append(opts, hepgo.WithLogLevel(slog.LevelDebug))
	}
	return hepgo.New(opts...)
}

func main() {}

func setLastError(err error) {
	errMu.Lock()
	defer errMu.Unlock()
	if lastErr != nil {
		C.free(unsafe.Pointer(lastErr))
		lastErr = nil
	}
	if err != nil {
		lastErr = C.CString(err.Error())
	}
}

func handleResult(h hepgo.Handle, err error) C.uint64_t {
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.uint64_t(h)
}

func okResult(err error) C.int {
	if err != nil {
		setLastError(err)
		return 0
	}
	return 1
}

func boolResult(v bool, err error) C.int {
	if err != nil {
		setLastError(err)
		return 0
	}
	if v {
		return 1
	}
	return 0
}

func intResult(v int, err error) C.int64_t {
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.int64_t(v)
}

func doubleResult(v float64, err error) C.double {
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.double(v)
}

func handle(h C.uint64_t) hepgo.Handle { return hepgo.Handle(h) }

//export hepgo_last_error
func hepgo_last_error() *C.char {
	errMu.Lock()
	defer errMu.Unlock()
	return lastErr
}

//export hepgo_free_string
func hepgo_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

//export hepgo_release
func hepgo_release(h C.uint64_t) C.int {
	return okResult(bridge.Release(handle(h)))
}

//export hepgo_retain
func hepgo_retain(h C.uint64_t) C.uint64_t {
	return handleResult(bridge.Retain(handle(h)))
}

//export hepgo_live_handles
func hepgo_live_handles() C.int64_t {
	return C.int64_t(bridge.Live())
}

// Particles.

//export hepgo_create_particle
func hepgo_create_particle(px, py, pz, e C.double, pdgID, status C.int64_t) C.uint64_t {
	return handleResult(bridge.CreateParticle(float64(px), float64(py), float64(pz), float64(e), int(pdgID), int(status)))
}

//export hepgo_particles_equal
func hepgo_particles_equal(h1, h2 C.uint64_t) C.int {
	return boolResult(bridge.ParticlesEqual(handle(h1), handle(h2)))
}

//export hepgo_particle_id
func hepgo_particle_id(h C.uint64_t) C.int64_t {
	return intResult(bridge.ParticleID(handle(h)))
}

//export hepgo_particle_status
func hepgo_particle_status(h C.uint64_t) C.int64_t {
	return intResult(bridge.ParticleStatus(handle(h)))
}

//export hepgo_set_particle_status
func hepgo_set_particle_status(h C.uint64_t, status C.int64_t) C.int {
	return okResult(bridge.SetParticleStatus(handle(h), int(status)))
}

//export hepgo_particle_pdg_id
func hepgo_particle_pdg_id(h C.uint64_t) C.int64_t {
	return intResult(bridge.ParticlePDGID(handle(h)))
}

//export hepgo_set_particle_pdg_id
func hepgo_set_particle_pdg_id(h C.uint64_t, pdgID C.int64_t) C.int {
	return okResult(bridge.SetParticlePDGID(handle(h), int(pdgID)))
}

//export hepgo_particle_momentum
func hepgo_particle_momentum(h C.uint64_t, px, py, pz, e *C.double) C.int {
	m, err := bridge.ParticleMomentum(handle(h))
	if err != nil {
		return okResult(err)
	}
	*px, *py, *pz, *e = C.double(m.X), C.double(m.Y), C.double(m.Z), C.double(m.T)
	return 1
}

//export hepgo_set_particle_momentum
func hepgo_set_particle_momentum(h C.uint64_t, px, py, pz, e C.double) C.int {
	return okResult(bridge.SetParticleMomentum(handle(h), float64(px), float64(py), float64(pz), float64(e)))
}

//export hepgo_generated_mass
func hepgo_generated_mass(h C.uint64_t) C.double {
	return doubleResult(bridge.GeneratedMass(handle(h)))
}

//export hepgo_set_generated_mass
func hepgo_set_generated_mass(h C.uint64_t, m C.double) C.int {
	return okResult(bridge.SetGeneratedMass(handle(h), float64(m)))
}

//export hepgo_is_generated_mass_set
func hepgo_is_generated_mass_set(h C.uint64_t) C.int {
	return boolResult(bridge.IsGeneratedMassSet(handle(h)))
}

//export hepgo_unset_generated_mass
func hepgo_unset_generated_mass(h C.uint64_t) C.int {
	return okResult(bridge.UnsetGeneratedMass(handle(h)))
}

//export hepgo_production_vertex
func hepgo_production_vertex(h C.uint64_t) C.uint64_t {
	return handleResult(bridge.ProductionVertex(handle(h)))
}

//export hepgo_end_vertex
func hepgo_end_vertex(h C.uint64_t) C.uint64_t {
	return handleResult(bridge.EndVertex(handle(h)))
}

//export hepgo_parents
func hepgo_parents(h C.uint64_t) C.uint64_t {
	return handleResult(bridge.Parents(handle(h)))
}

//export hepgo_children
func hepgo_children(h C.uint64_t) C.uint64_t {
	return handleResult(bridge.Children(handle(h)))
}

// Vertices.

//export hepgo_create_vertex
func hepgo_create_vertex(x, y, z, t C.double) C.uint64_t {
	return handleResult(bridge.CreateVertex(float64(x), float64(y), float64(z), float64(t)))
}

//export hepgo_vertices_equal
func hepgo_vertices_equal(h1, h2 C.uint64_t) C.int {
	return boolResult(bridge.VerticesEqual(handle(h1), handle(h2)))
}

//export hepgo_vertex_id
func hepgo_vertex_id(h C.uint64_t) C.int64_t {
	return intResult(bridge.VertexID(handle(h)))
}

//export hepgo_vertex_status
func hepgo_vertex_status(h C.uint64_t) C.int64_t {
	return intResult(bridge.VertexStatus(handle(h)))
}

//export hepgo_set_vertex_status
func hepgo_set_vertex_status(h C.uint64_t, status C.int64_t) C.int {
	return okResult(bridge.SetVertexStatus(handle(h), int(status)))
}

//export hepgo_vertex_position
func hepgo_vertex_position(h C.uint64_t, x, y, z, t *C.double) C.int {
	p, err := bridge.VertexPosition(handle(h))
	if err != nil {
		return okResult(err)
	}
	*x, *y, *z, *t = C.double(p.X), C.double(p.Y), C.double(p.Z), C.double(p.T)
	return 1
}

//export hepgo_set_vertex_position
func hepgo_set_vertex_position(h C.uint64_t, x, y, z, t C.double) C.int {
	return okResult(bridge.SetVertexPosition(handle(h), float64(x), float64(y), float64(z), float64(t)))
}

//export hepgo_add_particle_in
func hepgo_add_particle_in(v, p C.uint64_t) C.int {
	return okResult(bridge.AddParticleIn(handle(v), handle(p)))
}

//export hepgo_add_particle_out
func hepgo_add_particle_out(v, p C.uint64_t) C.int {
	return okResult(bridge.AddParticleOut(handle(v), handle(p)))
}

//export hepgo_particles_in
func hepgo_particles_in(v C.uint64_t) C.uint64_t {
	return handleResult(bridge.ParticlesIn(handle(v)))
}

//export hepgo_particles_out
func hepgo_particles_out(v C.uint64_t) C.uint64_t {
	return handleResult(bridge.ParticlesOut(handle(v)))
}

// Events.

//export hepgo_create_event
func hepgo_create_event() C.uint64_t {
	return handleResult(bridge.CreateEvent())
}

//export hepgo_add_vertex_to_event
func hepgo_add_vertex_to_event(e, v C.uint64_t) C.int {
	return okResult(bridge.AddVertexToEvent(handle(e), handle(v)))
}

//export hepgo_add_particle_to_event
func hepgo_add_particle_to_event(e, p C.uint64_t) C.int {
	return okResult(bridge.AddParticleToEvent(handle(e), handle(p)))
}

//export hepgo_remove_particle_from_event
func hepgo_remove_particle_from_event(e, p C.uint64_t) C.int {
	return okResult(bridge.RemoveParticleFromEvent(handle(e), handle(p)))
}

//export hepgo_remove_vertex_from_event
func hepgo_remove_vertex_from_event(e, v C.uint64_t) C.int {
	return okResult(bridge.RemoveVertexFromEvent(handle(e), handle(v)))
}

//export hepgo_particles_size
func hepgo_particles_size(e C.uint64_t) C.int64_t {
	return intResult(bridge.ParticlesSize(handle(e)))
}

//export hepgo_vertices_size
func hepgo_vertices_size(e C.uint64_t) C.int64_t {
	return intResult(bridge.VerticesSize(handle(e)))
}

//export hepgo_particle_at
func hepgo_particle_at(e C.uint64_t, i C.int64_t) C.uint64_t {
	return handleResult(bridge.ParticleAt(handle(e), int(i)))
}

//export hepgo_vertex_at
func hepgo_vertex_at(e C.uint64_t, i C.int64_t) C.uint64_t {
	return handleResult(bridge.VertexAt(handle(e), int(i)))
}

//export hepgo_event_particles
func hepgo_event_particles(e C.uint64_t) C.uint64_t {
	return handleResult(bridge.EventParticles(handle(e)))
}

//export hepgo_event_vertices
func hepgo_event_vertices(e C.uint64_t) C.uint64_t {
	return handleResult(bridge.EventVertices(handle(e)))
}

//export hepgo_shift_event_position
func hepgo_shift_event_position(e C.uint64_t, x, y, z, t C.double) C.int {
	return okResult(bridge.ShiftEventPosition(handle(e), float64(x), float64(y), float64(z), float64(t)))
}

//export hepgo_event_number
func hepgo_event_number(e C.uint64_t) C.int64_t {
	return intResult(bridge.EventNumber(handle(e)))
}

//export hepgo_set_event_number
func hepgo_set_event_number(e C.uint64_t, n C.int64_t) C.int {
	return okResult(bridge.SetEventNumber(handle(e), int(n)))
}

//export hepgo_set_weights
func hepgo_set_weights(e C.uint64_t, w *C.double, n C.int64_t) C.int {
	weights := make([]float64, int(n))
	if n > 0 {
		for i, v := range unsafe.Slice(w, int(n)) {
			weights[i] = float64(v)
		}
	}
	return okResult(bridge.SetWeights(handle(e), weights))
}

// hepgo_weights copies up to capacity weights into out and returns the total
// number of weights, or -1 on failure.
//
//export hepgo_weights
func hepgo_weights(e C.uint64_t, out *C.double, capacity C.int64_t) C.int64_t {
	weights, err := bridge.Weights(handle(e))
	if err != nil {
		setLastError(err)
		return -1
	}
	if capacity > 0 && out != nil {
		dst := unsafe.Slice(out, int(capacity))
		for i := 0; i < len(weights) && i < len(dst); i++ {
			dst[i] = C.double(weights[i])
		}
	}
	return C.int64_t(len(weights))
}

// Run info.

//export hepgo_create_run_info
func hepgo_create_run_info() C.uint64_t {
	return handleResult(bridge.CreateRunInfo())
}

//export hepgo_set_run_info
func hepgo_set_run_info(e, ri C.uint64_t) C.int {
	return okResult(bridge.SetRunInfo(handle(e), handle(ri)))
}

//export hepgo_run_info
func hepgo_run_info(e C.uint64_t) C.uint64_t {
	return handleResult(bridge.RunInfo(handle(e)))
}

//export hepgo_set_weight_names
func hepgo_set_weight_names(ri C.uint64_t, names **C.char, n C.int64_t) C.int {
	out := make([]string, int(n))
	if n > 0 {
		for i, s := range unsafe.Slice(names, int(n)) {
			out[i] = C.GoString(s)
		}
	}
	return okResult(bridge.SetWeightNames(handle(ri), out))
}

//export hepgo_weight_names_size
func hepgo_weight_names_size(ri C.uint64_t) C.int64_t {
	names, err := bridge.WeightNames(handle(ri))
	return intResult(len(names), err)
}

// hepgo_weight_name_at returns a copy of the i-th weight name. The caller
// frees it with hepgo_free_string.
//
//export hepgo_weight_name_at
func hepgo_weight_name_at(ri C.uint64_t, i C.int64_t) *C.char {
	names, err := bridge.WeightNames(handle(ri))
	if err != nil {
		setLastError(err)
		return nil
	}
	if int(i) < 0 || int(i) >= len(names) {
		setLastError(&hepgo.IndexError{Index: int(i), Size: len(names)})
		return nil
	}
	return C.CString(names[int(i)])
}

// Attributes.

//export hepgo_create_int_attribute
func hepgo_create_int_attribute(v C.int64_t) C.uint64_t {
	return handleResult(bridge.CreateIntAttribute(int64(v)))
}

//export hepgo_create_double_attribute
func hepgo_create_double_attribute(v C.double) C.uint64_t {
	return handleResult(bridge.CreateDoubleAttribute(float64(v)))
}

//export hepgo_create_string_attribute
func hepgo_create_string_attribute(v *C.char) C.uint64_t {
	return handleResult(bridge.CreateStringAttribute(C.GoString(v)))
}

//export hepgo_create_pdf_info
func hepgo_create_pdf_info(parton1, parton2 C.int64_t, x1, x2, q, xf1, xf2 C.double, pdfSet1, pdfSet2 C.int64_t) C.uint64_t {
	return handleResult(bridge.CreatePdfInfo(attribute.PdfInfo{
		Parton1: int(parton1),
		Parton2: int(parton2),
		X1:      float64(x1),
		X2:      float64(x2),
		Q:       float64(q),
		XF1:     float64(xf1),
		XF2:     float64(xf2),
		PdfSet1: int(pdfSet1),
		PdfSet2: int(pdfSet2),
	}))
}

//export hepgo_create_cross_section
func hepgo_create_cross_section(value, xsErr C.double, accepted, attempted C.int64_t) C.uint64_t {
	return handleResult(bridge.CreateCrossSection(attribute.CrossSection{
		Value:           float64(value),
		Error:           float64(xsErr),
		AcceptedEvents:  int64(accepted),
		AttemptedEvents: int64(attempted),
	}))
}

//export hepgo_create_heavy_ion
func hepgo_create_heavy_ion(
	ncollHard, npartProj, npartTarg, ncoll, nspecNeutrons, nspecProtons,
	nNwoundedCollisions, nwoundedNCollisions, nwoundedNwoundedCollisions C.int64_t,
	impactParameter, eventPlaneAngle, eccentricity, sigmaInelNN C.double,
) C.uint64_t {
	return handleResult(bridge.CreateHeavyIon(attribute.HeavyIon{
		NcollHard:                  int(ncollHard),
		NpartProj:                  int(npartProj),
		NpartTarg:                  int(npartTarg),
		Ncoll:                      int(ncoll),
		NspecNeutrons:              int(nspecNeutrons),
		NspecProtons:               int(nspecProtons),
		NNwoundedCollisions:        int(nNwoundedCollisions),
		NwoundedNCollisions:        int(nwoundedNCollisions),
		NwoundedNwoundedCollisions: int(nwoundedNwoundedCollisions),
		ImpactParameter:            float64(impactParameter),
		EventPlaneAngle:            float64(eventPlaneAngle),
		Eccentricity:               float64(eccentricity),
		SigmaInelNN:                float64(sigmaInelNN),
	}))
}

//export hepgo_add_particle_attribute
func hepgo_add_particle_attribute(p C.uint64_t, name *C.char, a C.uint64_t) C.int {
	return okResult(bridge.AddParticleAttribute(handle(p), C.GoString(name), handle(a)))
}

//export hepgo_add_vertex_attribute
func hepgo_add_vertex_attribute(v C.uint64_t, name *C.char, a C.uint64_t) C.int {
	return okResult(bridge.AddVertexAttribute(handle(v), C.GoString(name), handle(a)))
}

//export hepgo_add_event_attribute
func hepgo_add_event_attribute(e C.uint64_t, name *C.char, a C.uint64_t, index C.int64_t) C.int {
	return okResult(bridge.AddEventAttribute(handle(e), C.GoString(name), handle(a), int(index)))
}

//export hepgo_add_pdf_info_attribute
func hepgo_add_pdf_info_attribute(e, a C.uint64_t) C.int {
	return okResult(bridge.AddPdfInfoAttribute(handle(e), handle(a)))
}

//export hepgo_add_cross_section_attribute
func hepgo_add_cross_section_attribute(e, a C.uint64_t) C.int {
	return okResult(bridge.AddCrossSectionAttribute(handle(e), handle(a)))
}

//export hepgo_add_heavy_ion_attribute
func hepgo_add_heavy_ion_attribute(e, a C.uint64_t) C.int {
	return okResult(bridge.AddHeavyIonAttribute(handle(e), handle(a)))
}

//export hepgo_remove_event_attribute
func hepgo_remove_event_attribute(e C.uint64_t, name *C.char) C.int {
	return okResult(bridge.RemoveEventAttribute(handle(e), C.GoString(name)))
}

//export hepgo_particle_attribute
func hepgo_particle_attribute(p C.uint64_t, name *C.char) C.uint64_t {
	return handleResult(bridge.ParticleAttribute(handle(p), C.GoString(name)))
}

//export hepgo_vertex_attribute
func hepgo_vertex_attribute(v C.uint64_t, name *C.char) C.uint64_t {
	return handleResult(bridge.VertexAttribute(handle(v), C.GoString(name)))
}

//export hepgo_event_attribute
func hepgo_event_attribute(e C.uint64_t, name *C.char, index C.int64_t) C.uint64_t {
	return handleResult(bridge.EventAttribute(handle(e), C.GoString(name), int(index)))
}

// hepgo_attribute_kind returns 1 int, 2 double, 3 string, 4 PDF info,
// 5 cross section, 6 heavy ion, or 0 on failure.
//
//export hepgo_attribute_kind
func hepgo_attribute_kind(a C.uint64_t) C.int {
	k, err := bridge.AttributeKind(handle(a))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.int(k)
}

//export hepgo_attribute_int
func hepgo_attribute_int(a C.uint64_t) C.int64_t {
	v, err := bridge.AttributeInt(handle(a))
	return intResult(int(v), err)
}

//export hepgo_attribute_double
func hepgo_attribute_double(a C.uint64_t) C.double {
	return doubleResult(bridge.AttributeDouble(handle(a)))
}

// hepgo_attribute_string returns a copy of the string value, or NULL. The
// caller frees it with hepgo_free_string.
//
//export hepgo_attribute_string
func hepgo_attribute_string(a C.uint64_t) *C.char {
	s, err := bridge.AttributeString(handle(a))
	if err != nil {
		setLastError(err)
		return nil
	}
	return C.CString(s)
}

// Vectors.

//export hepgo_create_particle_vector
func hepgo_create_particle_vector() C.uint64_t {
	return handleResult(bridge.CreateParticleVector())
}

//export hepgo_create_vertex_vector
func hepgo_create_vertex_vector() C.uint64_t {
	return handleResult(bridge.CreateVertexVector())
}

//export hepgo_create_event_vector
func hepgo_create_event_vector() C.uint64_t {
	return handleResult(bridge.CreateEventVector())
}

//export hepgo_vector_push
func hepgo_vector_push(vec, h C.uint64_t) C.int {
	return okResult(bridge.VectorPush(handle(vec), handle(h)))
}

// hepgo_vector_size returns the element count, or -1 on failure.
//
//export hepgo_vector_size
func hepgo_vector_size(vec C.uint64_t) C.int64_t {
	n, err := bridge.VectorSize(handle(vec))
	if err != nil {
		setLastError(err)
		return -1
	}
	return C.int64_t(n)
}

//export hepgo_vector_at
func hepgo_vector_at(vec C.uint64_t, i C.int64_t) C.uint64_t {
	return handleResult(bridge.VectorAt(handle(vec), int(i)))
}

// Streams.

//export hepgo_create_reader
func hepgo_create_reader(path *C.char) C.uint64_t {
	return handleResult(bridge.CreateReader(C.GoString(path)))
}

// hepgo_read_event returns 1 when an event was read and 0 at the end of the
// stream or on failure; hepgo_last_error distinguishes the two.
//
//export hepgo_read_event
func hepgo_read_event(r, e C.uint64_t) C.int {
	setLastError(nil)
	return boolResult(bridge.ReadEvent(handle(r), handle(e)))
}

//export hepgo_read_events
func hepgo_read_events(r C.uint64_t, max C.int64_t) C.uint64_t {
	return handleResult(bridge.ReadEvents(handle(r), int(max)))
}

//export hepgo_reader_run_info
func hepgo_reader_run_info(r C.uint64_t) C.uint64_t {
	return handleResult(bridge.ReaderRunInfo(handle(r)))
}

//export hepgo_close_reader
func hepgo_close_reader(r C.uint64_t) C.int {
	return okResult(bridge.CloseReader(handle(r)))
}

//export hepgo_create_writer
func hepgo_create_writer(path *C.char) C.uint64_t {
	return handleResult(bridge.CreateWriter(C.GoString(path)))
}

//export hepgo_write_event
func hepgo_write_event(w, e C.uint64_t) C.int {
	return boolResult(bridge.WriteEvent(handle(w), handle(e)))
}

//export hepgo_close_writer
func hepgo_close_writer(w C.uint64_t) C.int {
	return okResult(bridge.CloseWriter(handle(w)))
}
