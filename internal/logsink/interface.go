package logsink

import "github.com/rs/zerolog"

// Logger defines the interface for logging operations.
type Logger interface {
	Debug() *Event
	Info() *Event
	Warn() *Event
	Error() *Event
}

type Event struct {
	*zerolog.Event
}

func (e *Event) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *Event) Msgf(format string, v ...interface{}) {
	e.Event.Msgf(format, v...)
}

func (e *Event) Send() {
	e.Event.Send()
}
