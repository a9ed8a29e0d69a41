package hepgo

import (
	"log/slog"

	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/codec"
	"github.com/hupe1980/hepgo/hepio"
	"github.com/hupe1980/hepgo/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	capacity         int

	format           hepio.Format
	compression      hepio.Compression
	compressionLevel int
	store            blobstore.BlobStore
	controller       *resource.Controller
	codec            codec.Codec
}

// Option configures a Bridge.
type Option func(*options)

// WithLogger sets the logger. Contract violations, stream opens and closes are
// logged through it.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLogLevel replaces the logger with a text logger at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithCapacity preallocates room for n handles.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithFormat forces the stream format of readers and writers. By default it
// is derived from the path and, for readers, the stream content.
func WithFormat(f hepio.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithCompression forces the stream compression of readers and writers.
func WithCompression(c hepio.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCompressionLevel sets the encoder level used by writers.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.compressionLevel = level
	}
}

// WithBlobStore resolves reader and writer paths against store instead of
// the local file system.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithResourceController throttles reader and writer IO.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithCodec selects the codec for JSON record streams.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

func (o options) streamOptions() []hepio.Option {
	opts := []hepio.Option{
		hepio.WithFormat(o.format),
		hepio.WithCompression(o.compression),
		hepio.WithCompressionLevel(o.compressionLevel),
		hepio.WithResourceController(o.controller),
	}
	if o.store != nil {
		opts = append(opts, hepio.WithBlobStore(o.store))
	}
	if o.codec != nil {
		opts = append(opts, hepio.WithCodec(o.codec))
	}
	return opts
}
