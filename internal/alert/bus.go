// Package alert provides the per-event state carried through the relay and the pure pieces of
// the alert domain: keyword matching, sender and location context, and alert formatting.
package alert

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/models"
)

// EventStatus represents the position of a single event in the relay state machine.
type EventStatus string

const (
	// Received is the initial status of every event in an acknowledged batch.
	Received EventStatus = "received"
	// Classified marks an eligible text message that matched the keyword.
	Classified EventStatus = "classified"
	// Skipped marks an event that needs no alert. Terminal.
	Skipped EventStatus = "skipped"
	// Enriched marks an event whose sender and location have been resolved, possibly with fallbacks.
	Enriched EventStatus = "enriched"
	// Formatted marks an event whose alert body has been built.
	Formatted EventStatus = "formatted"
	// Dispatched marks an event whose alert was accepted by the push API. Terminal.
	Dispatched EventStatus = "dispatched"
	// DispatchFailed marks an event whose alert could not be delivered. Terminal.
	DispatchFailed EventStatus = "dispatch_failed"
)

// Terminal reports whether no further processing applies to an event in this status.
func (s EventStatus) Terminal() bool {
	switch s {
	case Skipped, Dispatched, DispatchFailed:
		return true
	default:
		return false
	}
}

// Message is an outbound alert addressed to the administrator.
type Message struct {
	Recipient string
	Body      string
}

// Bus carries one event through the processor chain. A Bus is owned by exactly one task.
type Bus struct {
	Index  int
	Event  *models.Event
	Logger *slog.Logger

	// Text is the original message text, Normalized its lower-cased form used for matching.
	Text       string
	Normalized string

	Sender   Sender
	Location Location
	Alert    *Message

	Status EventStatus
	Reason string
	Error  error
}

// NewBus returns a Bus in the Received status.
func NewBus(index int, event *models.Event, logger *slog.Logger) *Bus {
	return &Bus{
		Index:  index,
		Event:  event,
		Logger: logger,
		Status: Received,
	}
}

// Skip moves the bus to the terminal Skipped status.
func (b *Bus) Skip(reason string) {
	b.Status = Skipped
	b.Reason = reason
}

// Fail moves the bus to the terminal DispatchFailed status.
func (b *Bus) Fail(err error) {
	b.Status = DispatchFailed
	b.Error = err
}

// LogValue generates a structured log value describing the event and its progress.
func (b *Bus) LogValue() slog.Value {
	logAttr := make([]slog.Attr, 0, 6)
	logAttr = append(logAttr,
		slog.Int("index", b.Index),
		slog.String("status", string(b.Status)))
	if b.Event != nil {
		logAttr = append(logAttr,
			slog.String("type", b.Event.RawType),
			slog.Any("source", b.Event.Source))
		if b.Event.WebhookEventID != "" {
			logAttr = append(logAttr, slog.String("webhookEventId", b.Event.WebhookEventID))
		}
	}
	if b.Reason != "" {
		logAttr = append(logAttr, slog.String("reason", b.Reason))
	}
	return slog.GroupValue(logAttr...)
}
