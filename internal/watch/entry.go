package watch

import (
	"path/filepath"
	"time"
)

// Entry tracks one monitored directory. The path is fixed at startup;
// Registered records whether the directory was successfully added to the
// notification subsystem, and lastMod is the modification time last seen
// by the polling detector. Both detectors share the same entries, and
// only the control loop goroutine touches them.
type Entry struct {
	Path       string
	Registered bool

	lastMod time.Time
}

// NewEntries builds the watch list from an ordered set of directory
// paths. Order is preserved; the polling detector reports in this order.
func NewEntries(paths []string) []*Entry {
	entries := make([]*Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, &Entry{Path: filepath.Clean(p)})
	}
	return entries
}
