package hepio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/codec"
	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/resource"
)

type decoder interface {
	decode(ev *event.Event) error
	sharedRunInfo() *event.RunInfo
}

func (d *asciiDecoder) sharedRunInfo() *event.RunInfo  { return d.runInfo }
func (d *recordDecoder) sharedRunInfo() *event.RunInfo { return d.runInfo }

// Reader decodes events from a stream.
type Reader struct {
	dec     decoder
	format  Format
	counter *countingReader
	closers []func() error
	events  int
	closed  bool
}

// Open opens the named stream for reading. Format and compression default
// to what the path suffix and the stream content indicate.
func Open(ctx context.Context, name string, optFns ...Option) (*Reader, error) {
	o := applyOptions(optFns)

	store, key := o.store, name
	if store == nil {
		store, key = blobstore.NewLocalStore(filepath.Dir(name)), filepath.Base(name)
	}

	blob, err := store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	rc, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	if o.format == FormatAuto || o.compression == CompressionAuto {
		f, c := DetectPath(name)
		if o.format == FormatAuto && f != FormatAsciiV3 {
			o.format = f
		}
		if o.compression == CompressionAuto && c != CompressionNone {
			o.compression = c
		}
	}

	r, err := newReader(ctx, rc, o)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	r.closers = append(r.closers, rc.Close)
	return r, nil
}

// NewReader decodes events from r. Closing the Reader does not close r.
func NewReader(r io.Reader, optFns ...Option) (*Reader, error) {
	return newReader(context.Background(), r, applyOptions(optFns))
}

func newReader(ctx context.Context, r io.Reader, o options) (*Reader, error) {
	counter := &countingReader{r: r}
	var src io.Reader = counter
	if o.controller != nil {
		src = resource.NewRateLimitedReader(ctx, src, o.controller)
	}

	plain, closeFn, err := decompress(src, o.compression)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(plain, 64*1024)
	format := o.format
	if format == FormatAuto {
		format = sniffFormat(br)
	}

	rd := &Reader{format: format, counter: counter, closers: []func() error{closeFn}}
	switch format {
	case FormatAsciiV3:
		rd.dec = newASCIIDecoder(br)
	case FormatJSON:
		c := o.codec
		if c == nil {
			c = codec.Default
		}
		rd.dec = newRecordDecoder(br, c, false)
	case FormatMsgpack:
		rd.dec = newRecordDecoder(br, codec.MsgPack{}, true)
	default:
		_ = closeFn()
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	return rd, nil
}

// sniffFormat guesses the format from the stream head. A msgpack record is
// a 4-byte length followed by a map header; anything else starting with '{'
// is JSON and the rest is taken as a text listing.
func sniffFormat(br *bufio.Reader) Format {
	if head, _ := br.Peek(5); len(head) == 5 {
		n := binary.LittleEndian.Uint32(head)
		m := head[4]
		if n > 0 && n <= maxRecordSize && (m&0xf0 == 0x80 || m == 0xde || m == 0xdf) {
			return FormatMsgpack
		}
	}
	head, _ := br.Peek(64)
	if trimmed := bytes.TrimLeft(head, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatAsciiV3
}

// Format returns the stream format in use.
func (r *Reader) Format() Format { return r.format }

// Read decodes the next event into ev. It returns io.EOF at the end of the
// stream. On any error ev is left cleared.
func (r *Reader) Read(ev *event.Event) error {
	if r.closed {
		ev.Clear()
		return ErrClosed
	}
	if err := r.dec.decode(ev); err != nil {
		return err
	}
	r.events++
	return nil
}

// ReadAll reads up to max events (all when max <= 0).
func (r *Reader) ReadAll(max int) ([]*event.Event, error) {
	var out []*event.Event
	for max <= 0 || len(out) < max {
		ev := event.New()
		if err := r.Read(ev); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// RunInfo returns the run info shared by all events of the stream. For text
// listings it is available after the first Read.
func (r *Reader) RunInfo() *event.RunInfo { return r.dec.sharedRunInfo() }

// Events returns the number of events decoded so far.
func (r *Reader) Events() int { return r.events }

// BytesRead returns the number of stream bytes consumed so far.
func (r *Reader) BytesRead() int64 { return r.counter.n }

// Close releases the stream. A second Close returns ErrClosed.
func (r *Reader) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true

	var errs []error
	for _, fn := range r.closers {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
