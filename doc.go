// Package hepgo exposes a particle/vertex event record through opaque handles.
//
// A Bridge owns a generation-tagged handle table. Every entity the caller
// sees (particles, vertices, events, run info, attributes, vectors, readers
// and writers) is a Handle: a share of ownership that stays valid until it
// is passed to Release. Released or mistyped handles are rejected with an
// error instead of being dereferenced.
//
// # Quick Start
//
//	b := hepgo.New()
//
//	ev, _ := b.CreateEvent()
//	v, _ := b.CreateVertex(0, 0, 0, 0)
//	beam, _ := b.CreateParticle(0, 0, 7000, 7000, 2212, 4)
//	_ = b.AddParticleIn(v, beam)
//	_ = b.AddVertexToEvent(ev, v)
//
//	w, _ := b.CreateWriter("events.hepmc3")
//	ok, _ := b.WriteEvent(w, ev)
//	_ = b.CloseWriter(w)
//
// # Identity
//
// Navigation calls such as ProductionVertex or VectorAt mint a new handle on
// each call. Two handles to the same particle compare unequal as integers;
// use ParticlesEqual and VerticesEqual.
//
// # Streams
//
// Readers and writers handle the HepMC3 Asciiv3 listing plus JSON and
// msgpack record streams, optionally compressed with gzip, zstd or lz4, on
// local disk or any blobstore.BlobStore (S3, MinIO, memory).
//
// # Threading
//
// The handle table is safe for concurrent use. The event graph is not: the
// caller serializes mutation of entities reachable from the same event.
package hepgo
