package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hupe1980/hepgo/blobstore"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail writes past this many bytes. Zero disables.
	FailOnCreate   bool
	FailOnOpen     bool
	FailOnSync     bool
	FailOnClose    bool
	Err            error
}

// FaultyStore is a BlobStore wrapper that can inject errors.
type FaultyStore struct {
	Store   blobstore.BlobStore
	Default Fault

	mu    sync.Mutex
	rules map[string]Fault // Name pattern -> Fault
}

// NewFaultyStore wraps store without any faults enabled.
func NewFaultyStore(store blobstore.BlobStore) *FaultyStore {
	return &FaultyStore{
		Store: store,
		rules: make(map[string]Fault),
	}
}

// AddRule applies fault to every blob whose name contains pattern.
func (f *FaultyStore) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

func (f *FaultyStore) fault(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := f.Default
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

func (f *FaultyStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if fault := f.fault(name); fault.FailOnOpen {
		return nil, fault.Err
	}
	return f.Store.Open(ctx, name)
}

func (f *FaultyStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	fault := f.fault(name)
	if fault.FailOnCreate {
		return nil, fault.Err
	}
	wb, err := f.Store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &faultyBlob{WritableBlob: wb, fault: fault}, nil
}

func (f *FaultyStore) Put(ctx context.Context, name string, data []byte) error {
	if fault := f.fault(name); fault.FailAfterBytes > 0 && int64(len(data)) > fault.FailAfterBytes {
		return fault.Err
	}
	return f.Store.Put(ctx, name, data)
}

func (f *FaultyStore) Delete(ctx context.Context, name string) error {
	return f.Store.Delete(ctx, name)
}

func (f *FaultyStore) List(ctx context.Context, prefix string) ([]string, error) {
	return f.Store.List(ctx, prefix)
}

type faultyBlob struct {
	blobstore.WritableBlob
	fault   Fault
	written int64
}

func (b *faultyBlob) Write(p []byte) (int, error) {
	if limit := b.fault.FailAfterBytes; limit > 0 && b.written+int64(len(p)) > limit {
		n := int(limit - b.written)
		if n > 0 {
			n, _ = b.WritableBlob.Write(p[:n])
			b.written += int64(n)
		}
		return n, b.fault.Err
	}
	n, err := b.WritableBlob.Write(p)
	b.written += int64(n)
	return n, err
}

func (b *faultyBlob) Sync() error {
	if b.fault.FailOnSync {
		return b.fault.Err
	}
	return b.WritableBlob.Sync()
}

func (b *faultyBlob) Close() error {
	err := b.WritableBlob.Close()
	if b.fault.FailOnClose {
		return b.fault.Err
	}
	return err
}
