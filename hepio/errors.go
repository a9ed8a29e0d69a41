package hepio

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed Reader or Writer.
	ErrClosed = errors.New("hepio: closed")

	// ErrMalformed is returned when a stream cannot be parsed.
	ErrMalformed = errors.New("hepio: malformed stream")

	// ErrUnknownFormat is returned for an unrecognized format or compression name.
	ErrUnknownFormat = errors.New("hepio: unknown format")
)

// ParseError reports a malformed line in a text stream.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hepio: line %d %q: %v", e.Line, truncate(e.Text, 64), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformed) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
