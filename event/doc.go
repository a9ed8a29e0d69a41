// Package event implements the event record graph: particles joined by
// vertices, grouped into events that share run metadata.
//
// Links are bidirectional. A vertex's outgoing list and each listed
// particle's production vertex always agree, as do the incoming list and the
// particles' end vertex. Every mutating method updates both sides before it
// returns and validates its preconditions before touching either side, so a
// failed call leaves the graph as it was.
//
// Ids follow the listing convention: particles are numbered 1..N and
// vertices -1..-M in insertion order. Detached entities have id 0.
//
// The graph is not safe for concurrent mutation.
package event
