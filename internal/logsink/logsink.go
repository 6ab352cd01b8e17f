package logsink

import (
	"fmt"
	"io"
	"log/syslog"
	"os"
	"strings"

	"codeberg.org/mutker/sysmond/internal/errors"
	"github.com/rs/zerolog"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	userFieldName   = "user"
	filePerm        = 0o644
)

// Sink is the daemon's unified log destination: an append-only file in
// "[timestamp] [LEVEL] [user] message" format, optionally mirrored to
// syslog with a 1:1 severity mapping. All writes go through a single
// zerolog.Logger; the file is unbuffered so every line is flushed as it
// is written.
type Sink struct {
	log  zerolog.Logger
	file *os.File
	sys  *syslog.Writer
	path string
}

type Config struct {
	Path      string
	UseSyslog bool
	Tag       string
}

// Open opens the log file and, when enabled, the syslog connection.
// A file that cannot be opened is fatal; a syslog connection that cannot
// be established degrades to file-only logging with a warning.
func Open(cfg Config) (*Sink, error) {
	errFactory := errors.New()

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrOpenLogSink, err)
	}

	s := &Sink{
		file: f,
		path: cfg.Path,
	}

	writers := []io.Writer{fileWriter(f)}

	var syslogErr error
	if cfg.UseSyslog {
		sys, err := syslog.New(syslog.LOG_INFO|syslog.LOG_DAEMON, cfg.Tag)
		if err != nil {
			syslogErr = err
		} else {
			s.sys = sys
			writers = append(writers, zerolog.SyslogLevelWriter(sys))
		}
	}

	zerolog.TimeFieldFormat = timestampLayout

	s.log = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str(userFieldName, username()).
		Logger()

	if syslogErr != nil {
		s.Warn().Msgf("Failed to connect to syslog, continuing with file only: %v", syslogErr)
	}

	return s, nil
}

// fileWriter builds the bracket-format writer for the log file.
func fileWriter(f *os.File) io.Writer {
	return zerolog.ConsoleWriter{
		Out:     f,
		NoColor: true,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			userFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{userFieldName},
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%v]", i)
		},
		FormatLevel: func(i interface{}) string {
			level := strings.ToUpper(fmt.Sprint(i))
			if level == "WARN" {
				level = "WARNING"
			}
			return "[" + level + "]"
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("[%v]", i)
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprint(i)
		},
	}
}

// Path returns the log file path. The watch detectors use it to suppress
// events caused by the sink's own writes.
func (s *Sink) Path() string {
	return s.path
}

// Close closes the log file and the syslog connection, if open.
func (s *Sink) Close() error {
	errFactory := errors.New()

	if s.sys != nil {
		if err := s.sys.Close(); err != nil {
			s.sys = nil
			return errFactory.Wrap(errors.ErrCloseLogSink, err)
		}
		s.sys = nil
	}

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			s.file = nil
			return errFactory.Wrap(errors.ErrCloseLogSink, err)
		}
		s.file = nil
	}

	return nil
}

// Debug logs a debug message
func (s *Sink) Debug() *Event {
	return &Event{s.log.Debug()}
}

// Info logs an info message
func (s *Sink) Info() *Event {
	return &Event{s.log.Info()}
}

// Warn logs a warning message
func (s *Sink) Warn() *Event {
	return &Event{s.log.Warn()}
}

// Error logs an error message
func (s *Sink) Error() *Event {
	return &Event{s.log.Error()}
}

// username resolves the logging identity the way the daemon always has:
// from the environment, falling back to "unknown".
func username() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}
	return "unknown"
}
