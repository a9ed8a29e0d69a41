// Package testutil provides testing utilities for hepgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded generator for random but physically consistent
// event graphs and a blob store wrapper that injects I/O faults.
//
// # Random Events
//
//	rng := testutil.NewRNG(seed)
//	ev := rng.Cascade(testutil.CascadeConfig{MaxDepth: 3, MaxChildren: 4})
//
// Every vertex of a generated cascade conserves four-momentum, so
// ev.Validate() succeeds and readers can be checked for exact round trips.
//
// # Fault Injection
//
//	store := testutil.NewFaultyStore(blobstore.NewMemoryStore())
//	store.AddRule(".hepmc3", testutil.Fault{FailAfterBytes: 4096})
package testutil
