// Package mmap provides read-only memory-mapped file access.
//
// Event listings are read front to back exactly once, so the mapping is
// advised for sequential access where the platform supports it.
//
//	m, err := mmap.Open("events.hepmc3")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// On Windows the file is read into memory instead of mapped.
package mmap
