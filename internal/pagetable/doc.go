// Package pagetable implements a growable table of pages shared by many
// goroutines without locks.
//
// The table is an immutable slice of pages published through one atomic
// pointer. Readers load the pointer and index into the slice; they never
// observe a partially built table. Growth copies the current page references
// into a larger slice, appends freshly allocated pages and installs the copy
// with compare-and-swap only if the table it started from is still current.
// A goroutine that loses the race discards its extra pages and retries on the
// winner's table, so each growth event has exactly one winner and readers are
// never blocked.
package pagetable
