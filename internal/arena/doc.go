// Package arena provides a generation-tagged slot table that maps small
// integer handles to Go values.
//
// A Handle packs a 32-bit slot index and a 32-bit generation. Releasing a
// handle frees its slot and bumps the generation, so any copy of the old
// handle is detected as stale instead of aliasing whatever is stored in the
// slot next.
//
// # Features
//
//   - Slot 0 is reserved so the zero Handle always means "no value"
//   - Free slots are recycled LIFO
//   - Live slots are tracked in a roaring bitmap for leak diagnostics
//
// # Safety
//
// All methods return errors instead of panicking. The table is guarded by a
// mutex; values stored in it are not.
package arena
