package hepio

import (
	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/codec"
	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/resource"
)

// Option configures Open, Create, NewReader and NewWriter.
type Option func(*options)

type options struct {
	format           Format
	compression      Compression
	compressionLevel int
	store            blobstore.BlobStore
	controller       *resource.Controller
	codec            codec.Codec
	runInfo          *event.RunInfo
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithFormat forces the stream format.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithCompression forces the stream compression.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithCompressionLevel sets the encoder level. 0 selects the codec default.
func WithCompressionLevel(level int) Option {
	return func(o *options) { o.compressionLevel = level }
}

// WithBlobStore resolves paths against store instead of the local file system.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) { o.store = store }
}

// WithResourceController throttles stream IO through c.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithCodec selects the codec for FormatJSON streams. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithRunInfo sets the run info a Writer emits in its header. Without it the
// first event's run info is used.
func WithRunInfo(ri *event.RunInfo) Option {
	return func(o *options) { o.runInfo = ri }
}
