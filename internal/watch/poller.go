package watch

import (
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/sysmond/internal/logsink"
)

// Directory mtimes move at a coarser grain than the sampling tick, so
// the poller runs at most once per pollInterval no matter how often it
// is invoked.
const pollInterval = 30 * time.Second

// Poller infers directory changes from modification-time deltas. It
// corroborates the event-driven detector and is the only detection path
// for entries whose watch registration failed.
type Poller struct {
	entries []*Entry
	logFile string
	logDir  string
	log     logsink.Logger

	interval time.Duration
	lastRun  time.Time

	// Injection points for tests.
	now  func() time.Time
	stat func(string) (os.FileInfo, error)
}

func NewPoller(entries []*Entry, logFile string, log logsink.Logger) *Poller {
	logFile = filepath.Clean(logFile)
	return &Poller{
		entries:  entries,
		logFile:  logFile,
		logDir:   filepath.Dir(logFile),
		log:      log,
		interval: pollInterval,
		now:      time.Now,
		stat:     os.Stat,
	}
}

// Check runs one polling round unless the previous round was less than
// the poll interval ago. Stat failures are transient: the entry is
// skipped this round and retried on the next one.
func (p *Poller) Check() {
	now := p.now()
	if now.Sub(p.lastRun) < p.interval {
		return
	}
	p.lastRun = now

	for _, e := range p.entries {
		info, err := p.stat(e.Path)
		if err != nil {
			continue
		}
		observed := info.ModTime()

		// The sink's own writes bump the log directory's mtime. When
		// the directory and the log file changed at the same instant
		// the mutation is self-caused: record it without logging it.
		if e.Path == p.logDir && !e.lastMod.IsZero() {
			if logInfo, err := p.stat(p.logFile); err == nil && observed.Equal(logInfo.ModTime()) {
				e.lastMod = observed
				continue
			}
		}

		if !e.lastMod.IsZero() && observed.After(e.lastMod) {
			p.log.Info().Msgf("Changes detected in directory: %s", e.Path)
		}
		e.lastMod = observed
	}
}
