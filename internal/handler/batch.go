package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/handler/processor"
	"github.com/isometry/line-alert-relay/internal/models"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Batch is the completion set of the event tasks of one acknowledged request.
// It exists for observability: the response path never waits on it.
type Batch struct {
	logger     *slog.Logger
	events     []json.RawMessage
	processors []processor.Processor
	owner      *Handler

	buses []*alert.Bus
	group errgroup.Group
	once  sync.Once
	done  chan struct{}
}

func (h *Handler) newBatch(logger *slog.Logger, events []json.RawMessage) *Batch {
	return &Batch{
		logger:     logger,
		events:     events,
		processors: h.processors,
		owner:      h,
		buses:      make([]*alert.Bus, len(events)),
		done:       make(chan struct{}),
	}
}

// Start launches one task per event. Tasks share nothing but the read-only processors;
// each writes only its own slot of the completion set.
func (b *Batch) Start() {
	b.once.Do(func() {
		if !b.owner.track() {
			for i := range b.events {
				bus := alert.NewBus(i, nil, b.logger)
				bus.Skip("handler shutting down")
				b.buses[i] = bus
			}
			b.logger.Warn("dropping acknowledged batch, handler is shutting down", slog.Int("events", len(b.events)))
			close(b.done)
			return
		}
		for i, raw := range b.events {
			b.group.Go(func() error {
				return b.run(i, raw)
			})
		}
		go func() {
			defer b.owner.inflight.Done()
			defer close(b.done)
			err := b.group.Wait()
			b.logger.Info("processed batch", slog.Any("outcome", b.summary()), slog.Any("firstError", err))
		}()
	})
}

// Wait starts the batch if needed and blocks until every event reached a terminal status.
func (b *Batch) Wait() []*alert.Bus {
	b.Start()
	<-b.done
	return b.buses
}

func (b *Batch) run(index int, raw json.RawMessage) (err error) {
	logger := b.logger.With(slog.Int("eventIndex", index))
	bus := alert.NewBus(index, nil, logger)
	b.buses[index] = bus

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("event task panicked: %v", r)
			bus.Fail(err)
			logger.Error("event task panicked", slog.Any("error", err))
		}
	}()

	bus.Event = new(models.Event)
	if err = json.Unmarshal(raw, bus.Event); err != nil {
		bus.Event = nil
		bus.Skip("malformed event")
		bus.Error = errors.Wrap(alert.ErrMalformedPayload, "decoding event")
		logger.Warn("skipping malformed event", slog.Any("error", err))
		return nil
	}

	bus.Logger = logger.With(
		slog.String("webhookEventId", bus.Event.WebhookEventID),
		slog.Bool("redelivery", bus.Event.Redelivery))
	if bus.Event.Redelivery {
		bus.Logger.Info("processing redelivered event, a duplicate alert may follow")
	}

	err = processor.Process(bus, b.processors...)
	bus.Logger.Debug("event done", slog.Any("event", bus))
	return err
}

func (b *Batch) summary() map[alert.EventStatus]int {
	counts := make(map[alert.EventStatus]int)
	for _, bus := range b.buses {
		if bus != nil {
			counts[bus.Status]++
		}
	}
	return counts
}
