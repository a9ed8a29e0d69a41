// Package resource bounds the work a process does on event files.
//
// A Controller caps how many files are converted concurrently, how many
// bytes of decoded events may be buffered, and how fast event streams are
// read and written. A nil *Controller imposes no limits.
package resource
