package daemon

import (
	"context"
	"os"
	"time"

	"codeberg.org/mutker/sysmond/internal/logsink"
	"codeberg.org/mutker/sysmond/internal/sampler"
	"codeberg.org/mutker/sysmond/internal/watch"
)

// DefaultWatchDirs is the stock watch list. Tests substitute their own
// directories through Config.
var DefaultWatchDirs = []string{"/etc", "/var/log", "/tmp"}

type Config struct {
	// Interval is the time between sampling ticks.
	Interval time.Duration
	// WatchDirs is the ordered list of directories to monitor.
	WatchDirs []string
}

// Daemon owns the control loop: per tick it runs each sampler, drains
// the event-driven change detector, and gives the polling detector a
// chance to run, emitting everything to the sink in that fixed order.
// All state is mutated by the single goroutine inside Run.
type Daemon struct {
	cfg      Config
	sink     *logsink.Sink
	samplers []sampler.Sampler
	events   *watch.EventDetector
	poller   *watch.Poller
}

func New(cfg Config, sink *logsink.Sink) *Daemon {
	if len(cfg.WatchDirs) == 0 {
		cfg.WatchDirs = DefaultWatchDirs
	}

	entries := watch.NewEntries(cfg.WatchDirs)

	return &Daemon{
		cfg:  cfg,
		sink: sink,
		samplers: []sampler.Sampler{
			sampler.Uptime{},
			sampler.TCPConns{},
			sampler.Inodes{},
		},
		events: watch.NewEventDetector(entries, sink.Path(), sink),
		poller: watch.NewPoller(entries, sink.Path(), sink),
	}
}

// Run executes the loop until the context is cancelled. Sampler and
// detector failures degrade to logged warnings; nothing inside the loop
// terminates it. The interval sleep is the only suspension point and is
// preempted by cancellation, after which the shutdown notice is written
// from this same goroutine.
func (d *Daemon) Run(ctx context.Context) error {
	d.banner()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		d.tick()

		select {
		case <-ctx.Done():
			d.sink.Info().Msg("Termination signal received. Program is stopping.")
			return nil
		case <-ticker.C:
		}
	}
}

// tick runs one iteration in fixed order: uptime, network census,
// inodes, event drain, polling check.
func (d *Daemon) tick() {
	for _, s := range d.samplers {
		line, err := s.Sample()
		if err != nil {
			d.sink.Warn().Msg(err.Error())
			continue
		}
		d.sink.Info().Msg(line)
	}

	d.events.Check()
	d.poller.Check()
}

func (d *Daemon) banner() {
	d.sink.Info().Msg("------------------------------")
	d.sink.Info().Msg("Logging program started")

	if os.Geteuid() == 0 {
		d.sink.Info().Msg("Program is running with root privileges")
	} else {
		d.sink.Info().Msgf("Program is running as user (UID: %d)", os.Getuid())
	}

	if line, err := sampler.HostLine(); err == nil {
		d.sink.Info().Msg(line)
	} else {
		d.sink.Warn().Msgf("Failed to read host information: %v", err)
	}

	d.sink.Info().Msgf("Logging interval: %d seconds", int(d.cfg.Interval.Seconds()))
}

// Close releases the notification subsystem handle. The sink is owned
// by the caller and closed there.
func (d *Daemon) Close() error {
	return d.events.Close()
}
