package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/hepgo/attribute"
)

var (
	// ErrInvalidArgument is returned for nil entities and similar misuse.
	ErrInvalidArgument = errors.New("event: invalid argument")
	// ErrForeignEvent is returned when linking entities owned by different events.
	ErrForeignEvent = errors.New("event: entity belongs to another event")
	// ErrNotInEvent is returned when removing an entity the event does not own.
	ErrNotInEvent = errors.New("event: entity not in event")
	// ErrAttributeKind is returned when a reserved attribute name is given a value of the wrong kind.
	ErrAttributeKind = errors.New("event: attribute kind does not match reserved name")
	// ErrAttributeName is returned for empty names or names containing whitespace.
	ErrAttributeName = errors.New("event: invalid attribute name")
	// ErrInconsistent is returned by Validate when the graph breaks an invariant.
	ErrInconsistent = errors.New("event: inconsistent graph")
)

func checkAttribute(name string, v attribute.Value) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrAttributeName, name)
	}
	if !v.IsValid() {
		return fmt.Errorf("%w: %q has no value", ErrInvalidArgument, name)
	}
	if kind, ok := attribute.ReservedKind(name); ok && kind != v.Kind {
		return fmt.Errorf("%w: %s requires %s, got %s", ErrAttributeKind, name, kind, v.Kind)
	}
	if v.Kind.IsComposite() {
		if _, ok := attribute.ReservedKind(name); !ok {
			return fmt.Errorf("%w: %s value stored under %q", ErrAttributeKind, v.Kind, name)
		}
	}
	return nil
}
