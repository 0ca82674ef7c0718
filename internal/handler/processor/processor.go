// Package processor provides the per-event chain that turns an acknowledged webhook event into an alert.
package processor

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/alert"
)

// Option is a function that applies an option to a Processor.
type Option = func(Processor)

// Processor advances a single event through one stage of the relay.
// Implementations are shared by concurrent event tasks and must only mutate the bus they are given.
type Processor interface {
	SetLogger(logger *slog.Logger)
	Process(bus *alert.Bus) error
}

// WithLogger sets the component logger of a Processor.
func WithLogger(logger *slog.Logger) Option {
	return func(p Processor) {
		p.SetLogger(logger)
	}
}

// Process runs processors in order until the bus reaches a terminal status or a stage fails.
func Process(bus *alert.Bus, processors ...Processor) error {
	for _, p := range processors {
		if bus.Status.Terminal() {
			return nil
		}
		if err := p.Process(bus); err != nil {
			return err
		}
	}
	return nil
}

func applyOpts(m Processor, opts ...Option) {
	for _, opt := range opts {
		opt(m)
	}
}

// busLogger prefers the per-event logger carried by the bus.
func busLogger(bus *alert.Bus, fallback *slog.Logger) *slog.Logger {
	if bus.Logger != nil {
		return bus.Logger
	}
	return fallback
}
