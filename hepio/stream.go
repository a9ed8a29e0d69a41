package hepio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/hepgo/codec"
	"github.com/hupe1980/hepgo/event"
)

// maxRecordSize bounds a single length-prefixed record.
const maxRecordSize = 1 << 30

// recordEncoder writes one Record per event, newline-delimited or
// length-prefixed.
type recordEncoder struct {
	w        *bufio.Writer
	codec    codec.Codec
	prefixed bool
	runInfo  *event.RunInfo
	first    bool
}

func newRecordEncoder(w io.Writer, c codec.Codec, prefixed bool) *recordEncoder {
	return &recordEncoder{
		w:        bufio.NewWriterSize(w, 64*1024),
		codec:    c,
		prefixed: prefixed,
		first:    true,
	}
}

func (e *recordEncoder) setRunInfo(ri *event.RunInfo) { e.runInfo = ri }

func (e *recordEncoder) encode(ev *event.Event) error {
	rec := NewRecord(ev, e.first)
	if e.first && e.runInfo != nil {
		rec.Run = newRunRecord(e.runInfo)
	}
	e.first = false

	data, err := e.codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode event %d: %w", ev.EventNumber(), err)
	}

	if e.prefixed {
		if len(data) > maxRecordSize {
			return fmt.Errorf("encode event %d: record of %d bytes exceeds limit", ev.EventNumber(), len(data))
		}
		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], uint32(len(data)))
		if _, err := e.w.Write(hdr[:]); err != nil {
			return err
		}
		_, err = e.w.Write(data)
		return err
	}

	if bytes.IndexByte(data, '\n') >= 0 {
		return fmt.Errorf("encode event %d: codec %s produced a multi-line record", ev.EventNumber(), e.codec.Name())
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

func (e *recordEncoder) finish() error {
	return e.w.Flush()
}

// recordDecoder reads the records written by recordEncoder.
type recordDecoder struct {
	r        *bufio.Reader
	codec    codec.Codec
	prefixed bool
	runInfo  *event.RunInfo
	first    bool
	buf      []byte
}

func newRecordDecoder(r io.Reader, c codec.Codec, prefixed bool) *recordDecoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &recordDecoder{r: br, codec: c, prefixed: prefixed, first: true}
}

func (d *recordDecoder) next() ([]byte, error) {
	if d.prefixed {
		var hdr [4]byte
		if _, err := io.ReadFull(d.r, hdr[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: truncated record header", ErrMalformed)
			}
			return nil, err
		}
		n := binary.LittleEndian.Uint32(hdr[:])
		if n > maxRecordSize || n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: record of %d bytes exceeds limit", ErrMalformed, n)
		}
		if cap(d.buf) < int(n) {
			d.buf = make([]byte, n)
		}
		d.buf = d.buf[:n]
		if _, err := io.ReadFull(d.r, d.buf); err != nil {
			return nil, fmt.Errorf("%w: truncated record: %w", ErrMalformed, err)
		}
		return d.buf, nil
	}

	for {
		line, err := d.r.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			return line, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (d *recordDecoder) decode(ev *event.Event) error {
	data, err := d.next()
	if err != nil {
		ev.Clear()
		return err
	}

	var rec Record
	if err := d.codec.Unmarshal(data, &rec); err != nil {
		ev.Clear()
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if d.first {
		d.first = false
		ri, err := rec.Run.RunInfo()
		if err != nil {
			ev.Clear()
			return err
		}
		if ri == nil {
			ri = event.NewRunInfo()
		}
		d.runInfo = ri
	}

	return rec.Decode(ev, d.runInfo)
}
