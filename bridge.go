package hepgo

import (
	"context"

	"github.com/hupe1980/hepgo/attribute"
	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/internal/arena"
)

// Handle is an opaque share of ownership of a bridged value.
// The zero Handle never refers to a value.
type Handle = arena.Handle

// Null is the zero handle, returned for unset relations.
const Null = arena.Null

// Stats reports handle table usage.
type Stats = arena.Stats

// Bridge maps handles to particles, vertices, events, run info, attributes,
// vectors, readers and writers.
type Bridge struct {
	table *arena.Table
	opts  options
}

// New creates a Bridge with an empty handle table.
func New(optFns ...Option) *Bridge {
	o := applyOptions(optFns)

	var tableOpts []arena.Option
	if o.capacity > 0 {
		tableOpts = append(tableOpts, arena.WithCapacity(o.capacity))
	}

	return &Bridge{
		table: arena.NewTable(tableOpts...),
		opts:  o,
	}
}

// Release drops the share held by h. The value itself stays reachable
// through every other handle and container that refers to it.
func (b *Bridge) Release(h Handle) error {
	v, err := b.table.Lookup(h)
	if err != nil {
		return b.violation("release", h, err)
	}
	if err := b.table.Release(h); err != nil {
		return b.violation("release", h, err)
	}
	b.opts.metricsCollector.RecordRelease(kindOf(v))
	return nil
}

// Retain returns a new handle sharing ownership with h.
func (b *Bridge) Retain(h Handle) (Handle, error) {
	v, err := b.table.Lookup(h)
	if err != nil {
		return Null, b.violation("retain", h, err)
	}
	return b.mint("retain", v)
}

// Valid reports whether h currently refers to a value.
func (b *Bridge) Valid(h Handle) bool {
	return b.table.Contains(h)
}

// Live returns the number of outstanding handles.
func (b *Bridge) Live() int {
	return b.table.Len()
}

// LiveHandles returns every outstanding handle in slot order.
func (b *Bridge) LiveHandles() []Handle {
	return b.table.Live()
}

// Stats returns a snapshot of the handle table counters.
func (b *Bridge) Stats() Stats {
	return b.table.Stats()
}

// Kind returns the kind of value behind h: "particle", "vertex", "event",
// "run_info", "attribute", "vector", "reader" or "writer".
func (b *Bridge) Kind(h Handle) (string, error) {
	v, err := b.table.Lookup(h)
	if err != nil {
		return "", b.violation("kind", h, err)
	}
	return kindOf(v), nil
}

func (b *Bridge) mint(op string, v any) (Handle, error) {
	h, err := b.table.Insert(v)
	if err != nil {
		return Null, &HandleError{Op: op, Handle: Null, cause: err}
	}
	b.opts.metricsCollector.RecordHandle(kindOf(v))
	return h, nil
}

// mintOrNull returns Null for a nil entity, so unset relations cross the
// boundary as the zero handle.
func mintOrNull[T comparable](b *Bridge, op string, v T) (Handle, error) {
	var zero T
	if v == zero {
		return Null, nil
	}
	return b.mint(op, v)
}

func (b *Bridge) violation(op string, h Handle, err error) error {
	if isContractViolation(err) {
		b.opts.logger.LogContractViolation(context.Background(), op, h, err)
		b.opts.metricsCollector.RecordViolation(op, err)
	}
	return &HandleError{Op: op, Handle: h, cause: err}
}

func get[T any](b *Bridge, op string, h Handle) (T, error) {
	v, err := arena.Get[T](b.table, h)
	if err != nil {
		var zero T
		return zero, b.violation(op, h, err)
	}
	return v, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case *event.Particle:
		return "particle"
	case *event.Vertex:
		return "vertex"
	case *event.Event:
		return "event"
	case *event.RunInfo:
		return "run_info"
	case attribute.Value:
		return "attribute"
	case *vector:
		return "vector"
	case *readerBox:
		return "reader"
	case *writerBox:
		return "writer"
	default:
		return "unknown"
	}
}
