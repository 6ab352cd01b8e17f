package watch

import (
	"fmt"
	"path/filepath"

	"codeberg.org/mutker/sysmond/internal/logsink"
	"github.com/fsnotify/fsnotify"
)

// Event categories, in classification priority order. The notification
// library reports a moved-to file as a creation in the destination
// directory, so CategoryMovedTo is the lowest-priority fallback.
const (
	CategoryCreation     = "creation"
	CategoryDeletion     = "deletion"
	CategoryModification = "modification"
	CategoryMovedFrom    = "moved from"
	CategoryMovedTo      = "moved to"
)

// EventDetector consumes the asynchronous filesystem notification stream
// for the watched directories. Check performs a non-blocking drain of
// whatever events are pending; it never waits for the OS.
//
// If the notification subsystem cannot be initialized the detector is a
// permanent no-op: a warning is logged once and change detection falls
// back entirely to the polling path.
type EventDetector struct {
	watcher *fsnotify.Watcher
	entries []*Entry
	logBase string
	log     logsink.Logger
}

// NewEventDetector registers every entry with the notification
// subsystem. Registration failures are non-fatal: the entry keeps
// participating in polling-based detection.
func NewEventDetector(entries []*Entry, logFile string, log logsink.Logger) *EventDetector {
	d := &EventDetector{
		entries: entries,
		logBase: filepath.Base(logFile),
		log:     log,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Msgf("Failed to initialize directory monitoring: %v", err)
		return d
	}

	for _, e := range entries {
		if err := watcher.Add(e.Path); err != nil {
			log.Warn().Msgf("Failed to watch directory %s: %v", e.Path, err)
			continue
		}
		e.Registered = true
	}

	d.watcher = watcher
	return d
}

// Check drains pending events without blocking and logs one line per
// qualifying event.
func (d *EventDetector) Check() {
	if d.watcher == nil {
		return
	}

	for {
		select {
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if line, ok := d.describe(ev); ok {
				d.log.Info().Msg(line)
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.log.Warn().Msgf("Directory monitoring error: %v", err)
		default:
			return
		}
	}
}

// describe maps an event to its log line. The second return is false
// when the event is dropped: either no watched directory owns it, or it
// names the daemon's own log file. The latter is a deliberate
// anti-amplification guard — logging the event would modify the log
// file and generate another event, forever.
func (d *EventDetector) describe(ev fsnotify.Event) (string, bool) {
	entry := d.resolve(ev.Name)
	if entry == nil {
		return "", false
	}

	name := filepath.Base(ev.Name)
	if ev.Name != entry.Path && name == d.logBase {
		return "", false
	}

	category := Classify(ev.Op)
	if ev.Name == entry.Path {
		return fmt.Sprintf("%s: %s", entry.Path, category), true
	}
	return fmt.Sprintf("%s: %s of file %s", entry.Path, category, name), true
}

// resolve finds the entry owning an event path: either the watched
// directory itself or a direct child of it. Foreign paths are dropped.
func (d *EventDetector) resolve(name string) *Entry {
	clean := filepath.Clean(name)
	dir := filepath.Dir(clean)
	for _, e := range d.entries {
		if clean == e.Path || dir == e.Path {
			return e
		}
	}
	return nil
}

// Classify reduces an event's operation bits to a single category using
// a fixed priority: creation, deletion, modification, moved-from. The
// first matching bit wins regardless of what else is set. Anything left
// (attribute changes) counts as a modification.
func Classify(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return CategoryCreation
	case op.Has(fsnotify.Remove):
		return CategoryDeletion
	case op.Has(fsnotify.Write):
		return CategoryModification
	case op.Has(fsnotify.Rename):
		return CategoryMovedFrom
	default:
		return CategoryModification
	}
}

// Close releases the notification subsystem handle.
func (d *EventDetector) Close() error {
	if d.watcher == nil {
		return nil
	}
	watcher := d.watcher
	d.watcher = nil
	return watcher.Close()
}
