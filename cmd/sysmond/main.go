package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/sysmond/internal/config"
	"codeberg.org/mutker/sysmond/internal/daemon"
	"codeberg.org/mutker/sysmond/internal/logsink"
	"codeberg.org/mutker/sysmond/internal/pid"
)

const syslogTag = "sysmond"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	sink, err := logsink.Open(logsink.Config{
		Path:      cfg.LogFile,
		UseSyslog: cfg.UseSyslog,
		Tag:       syslogTag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file. Program is terminating: %v\n", err)
		return 1
	}
	defer sink.Close()

	if err := pid.Write(); err != nil {
		sink.Error().Msg(err.Error())
		return 1
	}
	defer pid.Remove()

	d := daemon.New(daemon.Config{
		Interval:  time.Duration(cfg.Interval) * time.Second,
		WatchDirs: daemon.DefaultWatchDirs,
	}, sink)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := d.Run(ctx); err != nil {
		sink.Error().Msg(err.Error())
		return 1
	}

	return 0
}

// handleSignals only cancels the context; all shutdown logging and
// cleanup happens on the control-loop goroutine.
func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	cancel()
}
