package hepgo

import (
	"fmt"

	"github.com/hupe1980/hepgo/event"
)

const (
	kindParticle = "particle"
	kindVertex   = "vertex"
	kindEvent    = "event"
)

// vector is an ordered list of entities of one kind. Elements are held
// directly, so releasing the handle a value was pushed with does not affect
// the vector.
type vector struct {
	kind  string
	items []any
}

func newVector[T any](kind string, items []T) *vector {
	v := &vector{kind: kind, items: make([]any, len(items))}
	for i, it := range items {
		v.items[i] = it
	}
	return v
}

func (b *Bridge) CreateParticleVector() (Handle, error) {
	return b.mint("create_vector", newVector[*event.Particle](kindParticle, nil))
}

func (b *Bridge) CreateVertexVector() (Handle, error) {
	return b.mint("create_vector", newVector[*event.Vertex](kindVertex, nil))
}

func (b *Bridge) CreateEventVector() (Handle, error) {
	return b.mint("create_vector", newVector[*event.Event](kindEvent, nil))
}

// VectorPush appends the value behind h to the vector. The vector holds its
// own share, so h may be released afterwards.
func (b *Bridge) VectorPush(vh, h Handle) error {
	vec, err := get[*vector](b, "vector_push", vh)
	if err != nil {
		return err
	}
	v, err := b.table.Lookup(h)
	if err != nil {
		return b.violation("vector_push", h, err)
	}
	if kind := kindOf(v); kind != vec.kind {
		return b.violation("vector_push", h, fmt.Errorf("%w: %s vector cannot hold %s", ErrTypeMismatch, vec.kind, kind))
	}
	vec.items = append(vec.items, v)
	return nil
}

// VectorSize returns the number of elements.
func (b *Bridge) VectorSize(vh Handle) (int, error) {
	vec, err := get[*vector](b, "vector_size", vh)
	if err != nil {
		return 0, err
	}
	return len(vec.items), nil
}

// VectorKind returns "particle", "vertex" or "event".
func (b *Bridge) VectorKind(vh Handle) (string, error) {
	vec, err := get[*vector](b, "vector_kind", vh)
	if err != nil {
		return "", err
	}
	return vec.kind, nil
}

// VectorAt returns a new handle sharing ownership with the i-th element.
// The handle outlives the vector. Indices outside [0, size) are rejected with
// ErrIndexOutOfRange.
func (b *Bridge) VectorAt(vh Handle, i int) (Handle, error) {
	vec, err := get[*vector](b, "vector_at", vh)
	if err != nil {
		return Null, err
	}
	if i < 0 || i >= len(vec.items) {
		return Null, b.violation("vector_at", vh, &IndexError{Index: i, Size: len(vec.items)})
	}
	return b.mint("vector_at", vec.items[i])
}
