package arena

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrNullHandle is returned when the zero handle is dereferenced.
	ErrNullHandle = errors.New("arena: null handle")
	// ErrStaleHandle is returned when a handle's generation no longer matches its slot.
	ErrStaleHandle = errors.New("arena: stale handle")
	// ErrTypeMismatch is returned when a handle refers to a value of another type.
	ErrTypeMismatch = errors.New("arena: type mismatch")
	// ErrNilValue is returned when inserting a nil value.
	ErrNilValue = errors.New("arena: nil value")
	// ErrTableFull is returned when every slot index is in use.
	ErrTableFull = errors.New("arena: table full")
)

// Handle is an opaque reference to a table slot.
// The low 32 bits hold the slot index, the high 32 bits its generation.
type Handle uint64

// Null is the handle that never refers to a value.
const Null Handle = 0

func makeHandle(gen, slot uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(slot))
}

// Slot returns the slot index encoded in h.
func (h Handle) Slot() uint32 { return uint32(h) }

// Gen returns the generation encoded in h.
func (h Handle) Gen() uint32 { return uint32(h >> 32) }

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == Null }

// String returns a debug representation of the handle.
func (h Handle) String() string {
	if h.IsNull() {
		return "Handle(null)"
	}
	return fmt.Sprintf("Handle(%d@%d)", h.Slot(), h.Gen())
}

// Stats tracks table usage.
//
//   - Inserted: cumulative successful inserts
//   - Released: cumulative successful releases
//   - Rejected: lookups or releases refused as null/stale/mistyped
//   - Live: handles currently outstanding
type Stats struct {
	Inserted uint64
	Released uint64
	Rejected uint64
	Live     uint64
}

type slot struct {
	gen   uint32
	value any
}

// Table is a generation-tagged slot table.
type Table struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
	live  *roaring.Bitmap

	inserted atomic.Uint64
	released atomic.Uint64
	rejected atomic.Uint64
}

// Option is a configuration option for Table.
type Option func(*Table)

// WithCapacity preallocates room for n slots.
func WithCapacity(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.slots = make([]slot, 1, n+1)
		}
	}
}

// NewTable creates an empty table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		live: roaring.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.slots == nil {
		t.slots = make([]slot, 1, 64)
	}
	// Slot 0 stays empty so that Null never resolves.
	t.slots[0] = slot{}
	return t
}

// Insert stores v in a fresh slot and returns its handle.
func (t *Table) Insert(v any) (Handle, error) {
	if v == nil {
		return Null, ErrNilValue
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if uint64(len(t.slots)) >= math.MaxUint32 {
			return Null, ErrTableFull
		}
		t.slots = append(t.slots, slot{gen: 1})
		idx = uint32(len(t.slots) - 1) //nolint:gosec // bounded above
	}

	s := &t.slots[idx]
	s.value = v
	t.live.Add(idx)
	t.inserted.Add(1)

	return makeHandle(s.gen, idx), nil
}

// Lookup returns the value stored under h.
func (t *Table) Lookup(h Handle) (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.resolveLocked(h)
	if err != nil {
		return nil, err
	}
	return s.value, nil
}

// Release frees the slot behind h. The handle and every copy of it become stale.
func (t *Table) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.resolveLocked(h)
	if err != nil {
		return err
	}

	s.value = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}

	t.live.Remove(h.Slot())
	t.free = append(t.free, h.Slot())
	t.released.Add(1)
	return nil
}

// Contains reports whether h currently resolves.
func (t *Table) Contains(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h.IsNull() {
		return false
	}
	idx := h.Slot()
	if int(idx) >= len(t.slots) {
		return false
	}
	return t.live.Contains(idx) && t.slots[idx].gen == h.Gen()
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.live.GetCardinality()) //nolint:gosec // bounded by slot count
}

// Live returns every live handle in slot order.
func (t *Table) Live() []Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	idxs := t.live.ToArray()
	out := make([]Handle, len(idxs))
	for i, idx := range idxs {
		out[i] = makeHandle(t.slots[idx].gen, idx)
	}
	return out
}

// Stats returns a snapshot of the table counters.
func (t *Table) Stats() Stats {
	t.mu.Lock()
	live := t.live.GetCardinality()
	t.mu.Unlock()

	return Stats{
		Inserted: t.inserted.Load(),
		Released: t.released.Load(),
		Rejected: t.rejected.Load(),
		Live:     live,
	}
}

func (t *Table) resolveLocked(h Handle) (*slot, error) {
	if h.IsNull() {
		t.rejected.Add(1)
		return nil, ErrNullHandle
	}
	idx := h.Slot()
	if idx == 0 || int(idx) >= len(t.slots) || !t.live.Contains(idx) {
		t.rejected.Add(1)
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	s := &t.slots[idx]
	if s.gen != h.Gen() {
		t.rejected.Add(1)
		return nil, fmt.Errorf("%w: %s (current generation %d)", ErrStaleHandle, h, s.gen)
	}
	return s, nil
}

// Get resolves h and asserts the stored value has type T.
func Get[T any](t *Table, h Handle) (T, error) {
	var zero T

	v, err := t.Lookup(h)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		t.rejected.Add(1)
		return zero, fmt.Errorf("%w: %s holds %T, want %T", ErrTypeMismatch, h, v, zero)
	}
	return typed, nil
}
