// Package attribute provides the typed annotation values attached to
// particles, vertices and events.
//
// A Value is a tagged union: the Kind field selects which payload is
// meaningful. Scalars (int, double, string) live inline; the three composite
// record attributes (PDF info, cross section, heavy-ion geometry) are held by
// pointer and must be treated as immutable once wrapped.
//
// Values render to and parse from the single-line text form used by the
// Asciiv3 event listing (see Format and Parse).
package attribute
