package hepio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// sniffCompression inspects the first bytes of br without consuming them.
func sniffCompression(br *bufio.Reader) Compression {
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// decompress wraps r according to c. CompressionAuto sniffs the magic bytes.
func decompress(r io.Reader, c Compression) (io.Reader, func() error, error) {
	nop := func() error { return nil }

	if c == CompressionAuto {
		br := bufio.NewReader(r)
		c = sniffCompression(br)
		r = br
	}

	switch c {
	case CompressionNone:
		return r, nop, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, zr.Close, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, func() error { zr.Close(); return nil }, nil
	case CompressionLZ4:
		return lz4.NewReader(r), nop, nil
	default:
		return nil, nil, fmt.Errorf("%w: compression %d", ErrUnknownFormat, c)
	}
}

// compress wraps w according to c. The returned closer flushes the
// compressor but does not close w.
func compress(w io.Writer, c Compression, level int) (io.Writer, func() error, error) {
	switch c {
	case CompressionAuto, CompressionNone:
		return w, func() error { return nil }, nil
	case CompressionGzip:
		if level == 0 {
			level = gzip.DefaultCompression
		}
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zw, zw.Close, nil
	case CompressionZstd:
		encLevel := zstd.SpeedDefault
		if level != 0 {
			encLevel = zstd.EncoderLevelFromZstd(level)
		}
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(encLevel))
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, zw.Close, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if level > 0 {
			level = min(level, 9)
			if err := zw.Apply(lz4.CompressionLevelOption(lz4.CompressionLevel(1 << (7 + level)))); err != nil {
				return nil, nil, fmt.Errorf("lz4: %w", err)
			}
		}
		return zw, zw.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: compression %d", ErrUnknownFormat, c)
	}
}
