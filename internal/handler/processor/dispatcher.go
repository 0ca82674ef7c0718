package processor

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/platform"
)

type dispatcherProcessor struct {
	logger *slog.Logger
	client platform.Client
}

// NewDispatcherProcessor returns a Processor that pushes the formatted alert exactly once.
// Delivery is best effort: failures are recorded on the bus and never retried.
func NewDispatcherProcessor(client platform.Client, opts ...Option) Processor {
	_inst := &dispatcherProcessor{client: client, logger: helpers.NewNoopLogger()}
	applyOpts(_inst, opts...)
	return _inst
}

func (p *dispatcherProcessor) SetLogger(logger *slog.Logger) {
	p.logger = logger.WithGroup("processor:dispatcher")
}

func (p *dispatcherProcessor) Process(bus *alert.Bus) error {
	logger := busLogger(bus, p.logger)
	if bus.Alert == nil {
		bus.Skip("no alert to dispatch")
		return nil
	}

	if err := p.client.PushMessage(bus.Alert.Recipient, platform.TextMessage{Text: bus.Alert.Body}); err != nil {
		dispatchErr := &alert.DispatchError{Recipient: bus.Alert.Recipient, Cause: err}
		bus.Fail(dispatchErr)
		logger.Error("failed to dispatch alert", slog.Any("error", dispatchErr))
		return dispatchErr
	}

	bus.Status = alert.Dispatched
	logger.Info("dispatched alert", slog.String("recipient", bus.Alert.Recipient))
	return nil
}
