package benchmark_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/hepio"
	"github.com/hupe1980/hepgo/testutil"
)

// Run: go test -bench=. -run=^$ ./benchmark_test/...

var streamCases = []struct {
	format      hepio.Format
	compression hepio.Compression
}{
	{hepio.FormatAsciiV3, hepio.CompressionNone},
	{hepio.FormatAsciiV3, hepio.CompressionGzip},
	{hepio.FormatAsciiV3, hepio.CompressionZstd},
	{hepio.FormatJSON, hepio.CompressionNone},
	{hepio.FormatMsgpack, hepio.CompressionNone},
	{hepio.FormatMsgpack, hepio.CompressionLZ4},
}

func fixtureEvents(n int) []*event.Event {
	return testutil.NewRNG(1).Events(n, testutil.CascadeConfig{
		MaxDepth:    5,
		MaxChildren: 4,
		Weights:     4,
		Attributes:  true,
	})
}

func encode(b *testing.B, evs []*event.Event, opts ...hepio.Option) []byte {
	b.Helper()

	var buf bytes.Buffer
	w, err := hepio.NewWriter(&buf, opts...)
	if err != nil {
		b.Fatal(err)
	}
	for _, ev := range evs {
		if err := w.Write(ev); err != nil {
			b.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		b.Fatal(err)
	}
	return buf.Bytes()
}

func BenchmarkWrite(b *testing.B) {
	evs := fixtureEvents(100)

	for _, tc := range streamCases {
		b.Run(fmt.Sprintf("%s/%s", tc.format, tc.compression), func(b *testing.B) {
			b.ReportAllocs()
			opts := []hepio.Option{hepio.WithFormat(tc.format), hepio.WithCompression(tc.compression)}

			var size int
			for i := 0; i < b.N; i++ {
				size = len(encode(b, evs, opts...))
			}
			b.ReportMetric(float64(size)/float64(len(evs)), "bytes/event")
		})
	}
}

func BenchmarkRead(b *testing.B) {
	evs := fixtureEvents(100)

	for _, tc := range streamCases {
		b.Run(fmt.Sprintf("%s/%s", tc.format, tc.compression), func(b *testing.B) {
			b.ReportAllocs()
			data := encode(b, evs, hepio.WithFormat(tc.format), hepio.WithCompression(tc.compression))
			b.SetBytes(int64(len(data)))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r, err := hepio.NewReader(bytes.NewReader(data))
				if err != nil {
					b.Fatal(err)
				}
				got, err := r.ReadAll(0)
				if err != nil {
					b.Fatal(err)
				}
				if len(got) != len(evs) {
					b.Fatalf("read %d events, want %d", len(got), len(evs))
				}
				_ = r.Close()
			}
		})
	}
}

func BenchmarkCascade(b *testing.B) {
	b.ReportAllocs()
	rng := testutil.NewRNG(1)
	cfg := testutil.CascadeConfig{MaxDepth: 5, MaxChildren: 4}

	for i := 0; i < b.N; i++ {
		if ev := rng.Cascade(cfg); ev.NumParticles() == 0 {
			b.Fatal("empty cascade")
		}
	}
}
