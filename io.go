package hepgo

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/hepio"
)

type readerBox struct {
	r    *hepio.Reader
	path string
}

type writerBox struct {
	w    *hepio.Writer
	path string
}

func isEOF(err error) bool { return errors.Is(err, io.EOF) }

// CreateReader opens path for reading. On failure it returns Null and the
// error.
func (b *Bridge) CreateReader(path string) (Handle, error) {
	return b.CreateReaderContext(context.Background(), path)
}

// CreateReaderContext is like CreateReader but uses ctx for opening the
// underlying blob.
func (b *Bridge) CreateReaderContext(ctx context.Context, path string) (Handle, error) {
	r, err := hepio.Open(ctx, path, b.opts.streamOptions()...)
	b.opts.logger.LogOpen(ctx, "read", path, err)
	if err != nil {
		return Null, err
	}
	h, err := b.mint("create_reader", &readerBox{r: r, path: path})
	if err != nil {
		_ = r.Close()
		return Null, err
	}
	return h, nil
}

// ReadEvent decodes the next event into the event behind eh. It returns
// false with a nil error at the end of the stream, and false with the error
// for malformed input. The event is left cleared whenever it returns false.
// Events read from one reader share the reader's run info.
func (b *Bridge) ReadEvent(rh, eh Handle) (bool, error) {
	box, err := get[*readerBox](b, "read_event", rh)
	if err != nil {
		return false, err
	}
	e, err := get[*event.Event](b, "read_event", eh)
	if err != nil {
		return false, err
	}

	start := time.Now()
	before := box.r.BytesRead()
	err = box.r.Read(e)
	b.opts.metricsCollector.RecordRead(box.r.BytesRead()-before, time.Since(start), err)

	switch {
	case err == nil:
		b.opts.logger.LogRead(context.Background(), e.EventNumber(), e.NumParticles(), e.NumVertices(), nil)
		return true, nil
	case isEOF(err):
		return false, nil
	case errors.Is(err, ErrClosed):
		return false, b.violation("read_event", rh, err)
	default:
		b.opts.logger.WithPath(box.path).LogRead(context.Background(), 0, 0, 0, err)
		return false, &HandleError{Op: "read_event", Handle: rh, cause: err}
	}
}

// ReadEvents reads up to max events (all remaining when max <= 0) and
// returns them as an event vector. Events decoded before a failure are kept
// in the vector and the error is returned alongside it.
func (b *Bridge) ReadEvents(rh Handle, max int) (Handle, error) {
	box, err := get[*readerBox](b, "read_events", rh)
	if err != nil {
		return Null, err
	}

	start := time.Now()
	before := box.r.BytesRead()
	events, readErr := box.r.ReadAll(max)
	b.opts.metricsCollector.RecordRead(box.r.BytesRead()-before, time.Since(start), readErr)

	vh, err := b.mint("read_events", newVector(kindEvent, events))
	if err != nil {
		return Null, err
	}
	if readErr != nil {
		if errors.Is(readErr, ErrClosed) {
			return vh, b.violation("read_events", rh, readErr)
		}
		return vh, &HandleError{Op: "read_events", Handle: rh, cause: readErr}
	}
	return vh, nil
}

// ReaderRunInfo returns a new handle to the run info read from the stream
// header, or Null when the stream has none.
func (b *Bridge) ReaderRunInfo(rh Handle) (Handle, error) {
	box, err := get[*readerBox](b, "reader_run_info", rh)
	if err != nil {
		return Null, err
	}
	return mintOrNull(b, "reader_run_info", box.r.RunInfo())
}

// ReaderBytesRead returns the number of stream bytes consumed so far.
func (b *Bridge) ReaderBytesRead(rh Handle) (int64, error) {
	box, err := get[*readerBox](b, "reader_bytes_read", rh)
	if err != nil {
		return 0, err
	}
	return box.r.BytesRead(), nil
}

// CloseReader releases the stream. Closing twice returns ErrClosed. The
// handle itself stays valid until Release.
func (b *Bridge) CloseReader(rh Handle) error {
	box, err := get[*readerBox](b, "close_reader", rh)
	if err != nil {
		return err
	}
	err = box.r.Close()
	if errors.Is(err, ErrClosed) {
		return b.violation("close_reader", rh, err)
	}
	b.opts.logger.WithPath(box.path).LogClose(context.Background(), "read", box.r.Events(), box.r.BytesRead(), err)
	if err != nil {
		return &HandleError{Op: "close_reader", Handle: rh, cause: err}
	}
	return nil
}

// CreateWriter creates path for writing. On failure it returns Null and the
// error.
func (b *Bridge) CreateWriter(path string) (Handle, error) {
	return b.CreateWriterContext(context.Background(), path)
}

// CreateWriterContext is like CreateWriter but uses ctx for creating the
// underlying blob.
func (b *Bridge) CreateWriterContext(ctx context.Context, path string) (Handle, error) {
	w, err := hepio.Create(ctx, path, b.opts.streamOptions()...)
	b.opts.logger.LogOpen(ctx, "write", path, err)
	if err != nil {
		return Null, err
	}
	h, err := b.mint("create_writer", &writerBox{w: w, path: path})
	if err != nil {
		_ = w.Close()
		return Null, err
	}
	return h, nil
}

// WriteEvent encodes the event behind eh. It returns false with the error
// when the stream cannot be written; the failure is sticky.
func (b *Bridge) WriteEvent(wh, eh Handle) (bool, error) {
	box, err := get[*writerBox](b, "write_event", wh)
	if err != nil {
		return false, err
	}
	e, err := get[*event.Event](b, "write_event", eh)
	if err != nil {
		return false, err
	}

	start := time.Now()
	before := box.w.BytesWritten()
	err = box.w.Write(e)
	b.opts.metricsCollector.RecordWrite(box.w.BytesWritten()-before, time.Since(start), err)
	b.opts.logger.WithPath(box.path).LogWrite(context.Background(), e.EventNumber(), e.NumParticles(), e.NumVertices(), err)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrClosed):
		return false, b.violation("write_event", wh, err)
	default:
		return false, &HandleError{Op: "write_event", Handle: wh, cause: err}
	}
}

// WriterBytesWritten returns the number of stream bytes emitted so far.
func (b *Bridge) WriterBytesWritten(wh Handle) (int64, error) {
	box, err := get[*writerBox](b, "writer_bytes_written", wh)
	if err != nil {
		return 0, err
	}
	return box.w.BytesWritten(), nil
}

// CloseWriter flushes and releases the stream. Closing twice returns
// ErrClosed. The handle itself stays valid until Release.
func (b *Bridge) CloseWriter(wh Handle) error {
	box, err := get[*writerBox](b, "close_writer", wh)
	if err != nil {
		return err
	}
	err = box.w.Close()
	if errors.Is(err, ErrClosed) {
		return b.violation("close_writer", wh, err)
	}
	b.opts.logger.WithPath(box.path).LogClose(context.Background(), "write", box.w.Events(), box.w.BytesWritten(), err)
	if err != nil {
		return &HandleError{Op: "close_writer", Handle: wh, cause: err}
	}
	return nil
}
