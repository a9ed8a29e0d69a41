package hepgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// metrics/prometheus for a Prometheus implementation.
type MetricsCollector interface {
	// RecordHandle is called after a handle of the given kind is minted.
	RecordHandle(kind string)

	// RecordRelease is called after a handle is released.
	RecordRelease(kind string)

	// RecordRead is called after each event read. bytes is the number of
	// stream bytes consumed; err is nil on success and io.EOF at the end.
	RecordRead(bytes int64, duration time.Duration, err error)

	// RecordWrite is called after each event write.
	RecordWrite(bytes int64, duration time.Duration, err error)

	// RecordViolation is called when a call is rejected as a contract violation.
	RecordViolation(op string, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordHandle(string)                     {}
func (NoopMetricsCollector) RecordRelease(string)                    {}
func (NoopMetricsCollector) RecordRead(int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordWrite(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordViolation(string, error)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and leak checks without external dependencies.
type BasicMetricsCollector struct {
	HandlesCreated  atomic.Int64
	HandlesReleased atomic.Int64
	ReadCount       atomic.Int64
	ReadErrors      atomic.Int64
	ReadBytes       atomic.Int64
	ReadTotalNanos  atomic.Int64
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
	WriteBytes      atomic.Int64
	WriteTotalNanos atomic.Int64
	Violations      atomic.Int64
}

// RecordHandle implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHandle(string) {
	b.HandlesCreated.Add(1)
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(string) {
	b.HandlesReleased.Add(1)
}

// RecordRead implements MetricsCollector. End of stream is not counted.
func (b *BasicMetricsCollector) RecordRead(bytes int64, duration time.Duration, err error) {
	b.ReadBytes.Add(bytes)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err == nil:
		b.ReadCount.Add(1)
	case !isEOF(err):
		b.ReadErrors.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(bytes int64, duration time.Duration, err error) {
	b.WriteBytes.Add(bytes)
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteCount.Add(1)
}

// RecordViolation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordViolation(string, error) {
	b.Violations.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		HandlesCreated:  b.HandlesCreated.Load(),
		HandlesReleased: b.HandlesReleased.Load(),
		ReadCount:       b.ReadCount.Load(),
		ReadErrors:      b.ReadErrors.Load(),
		ReadBytes:       b.ReadBytes.Load(),
		ReadAvgNanos:    avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		WriteCount:      b.WriteCount.Load(),
		WriteErrors:     b.WriteErrors.Load(),
		WriteBytes:      b.WriteBytes.Load(),
		WriteAvgNanos:   avg(b.WriteTotalNanos.Load(), b.WriteCount.Load()),
		Violations:      b.Violations.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	HandlesCreated  int64
	HandlesReleased int64
	ReadCount       int64
	ReadErrors      int64
	ReadBytes       int64
	ReadAvgNanos    int64
	WriteCount      int64
	WriteErrors     int64
	WriteBytes      int64
	WriteAvgNanos   int64
	Violations      int64
}
