package hepio

import (
	"fmt"
	"path"
	"strings"
)

// Format identifies an event stream encoding.
type Format uint8

const (
	// FormatAuto picks the format from the path suffix on Create and from the
	// stream content on Open.
	FormatAuto Format = iota
	FormatAsciiV3
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatAsciiV3:
		return "ascii"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "auto"
	}
}

// ParseFormat parses a format name as produced by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "ascii", "asciiv3", "hepmc3", "hepmc":
		return FormatAsciiV3, nil
	case "json", "jsonl", "ndjson":
		return FormatJSON, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Compression identifies a stream compression.
type Compression uint8

const (
	// CompressionAuto picks the compression from the path suffix on Create
	// and from the stream magic on Open.
	CompressionAuto Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "auto"
	}
}

// ParseCompression parses a compression name as produced by Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionAuto, fmt.Errorf("%w: compression %q", ErrUnknownFormat, s)
	}
}

// DetectPath derives format and compression from a file name such as
// "run.hepmc3.zst". Unknown suffixes yield FormatAsciiV3 and CompressionNone.
func DetectPath(name string) (Format, Compression) {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))

	comp := CompressionNone
	switch ext := path.Ext(base); ext {
	case ".gz", ".gzip":
		comp = CompressionGzip
	case ".zst", ".zstd":
		comp = CompressionZstd
	case ".lz4":
		comp = CompressionLZ4
	}
	if comp != CompressionNone {
		base = strings.TrimSuffix(base, path.Ext(base))
	}

	switch path.Ext(base) {
	case ".jsonl", ".ndjson", ".json":
		return FormatJSON, comp
	case ".msgpack", ".mpk":
		return FormatMsgpack, comp
	default:
		return FormatAsciiV3, comp
	}
}
