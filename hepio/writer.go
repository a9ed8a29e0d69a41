package hepio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/codec"
	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/resource"
)

type encoder interface {
	encode(ev *event.Event) error
	setRunInfo(ri *event.RunInfo)
	finish() error
}

// Writer encodes events to a stream. Output is complete only after Close.
type Writer struct {
	enc     encoder
	format  Format
	counter *countingWriter
	closers []func() error
	events  int
	err     error
	closed  bool
}

// Create creates the named stream. Format and compression default to what
// the path suffix indicates. The stream becomes visible when the Writer is
// closed.
func Create(ctx context.Context, name string, optFns ...Option) (*Writer, error) {
	o := applyOptions(optFns)

	f, c := DetectPath(name)
	if o.format == FormatAuto {
		o.format = f
	}
	if o.compression == CompressionAuto {
		o.compression = c
	}

	if o.format > FormatMsgpack || o.compression > CompressionLZ4 {
		return nil, fmt.Errorf("create %s: %w", name, ErrUnknownFormat)
	}

	store, key := o.store, name
	if store == nil {
		store, key = blobstore.NewLocalStore(filepath.Dir(name)), filepath.Base(name)
	}

	wb, err := store.Create(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	w, err := newWriter(ctx, wb, o)
	if err != nil {
		_ = wb.Close()
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	w.closers = append(w.closers, wb.Close)
	return w, nil
}

// NewWriter encodes events to w. Closing the Writer flushes but does not
// close w. The default format is FormatAsciiV3 without compression.
func NewWriter(w io.Writer, optFns ...Option) (*Writer, error) {
	return newWriter(context.Background(), w, applyOptions(optFns))
}

func newWriter(ctx context.Context, w io.Writer, o options) (*Writer, error) {
	counter := &countingWriter{w: w}
	var dst io.Writer = counter
	if o.controller != nil {
		dst = resource.NewRateLimitedWriter(ctx, dst, o.controller)
	}

	comp := o.compression
	if comp == CompressionAuto {
		comp = CompressionNone
	}
	zw, closeFn, err := compress(dst, comp, o.compressionLevel)
	if err != nil {
		return nil, err
	}

	format := o.format
	if format == FormatAuto {
		format = FormatAsciiV3
	}

	var enc encoder
	switch format {
	case FormatAsciiV3:
		enc = newASCIIEncoder(zw)
	case FormatJSON:
		c := o.codec
		if c == nil {
			c = codec.Default
		}
		enc = newRecordEncoder(zw, c, false)
	case FormatMsgpack:
		enc = newRecordEncoder(zw, codec.MsgPack{}, true)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if o.runInfo != nil {
		enc.setRunInfo(o.runInfo)
	}

	return &Writer{
		enc:     enc,
		format:  format,
		counter: counter,
		closers: []func() error{enc.finish, closeFn},
	}, nil
}

// Format returns the stream format in use.
func (w *Writer) Format() Format { return w.format }

// Write encodes ev. After a failed write every later Write returns the same
// error.
func (w *Writer) Write(ev *event.Event) error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if err := w.enc.encode(ev); err != nil {
		w.err = err
		return err
	}
	w.events++
	return nil
}

// Events returns the number of events written so far.
func (w *Writer) Events() int { return w.events }

// BytesWritten returns the number of stream bytes emitted so far.
func (w *Writer) BytesWritten() int64 { return w.counter.n }

// Close writes the stream trailer and releases the stream. A second Close
// returns ErrClosed.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true

	var errs []error
	for _, fn := range w.closers {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
