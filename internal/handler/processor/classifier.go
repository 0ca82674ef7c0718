package processor

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/models"
)

type classifierProcessor struct {
	logger  *slog.Logger
	keyword alert.Keyword
}

// NewClassifierProcessor returns a Processor that keeps only text messages containing keyword.
// Every other event is skipped before any platform call is made.
func NewClassifierProcessor(keyword alert.Keyword, opts ...Option) Processor {
	_inst := &classifierProcessor{keyword: keyword, logger: helpers.NewNoopLogger()}
	applyOpts(_inst, opts...)
	return _inst
}

func (p *classifierProcessor) SetLogger(logger *slog.Logger) {
	p.logger = logger.WithGroup("processor:classifier")
}

func (p *classifierProcessor) Process(bus *alert.Bus) error {
	logger := busLogger(bus, p.logger)
	event := bus.Event

	if event == nil || event.Type != models.EventMessage {
		bus.Skip("not a message event")
		logger.Debug("skipping event", slog.Any("event", bus))
		return nil
	}
	if event.Message == nil || event.Message.Type != models.MessageText {
		bus.Skip("not a text message")
		logger.Debug("skipping event", slog.Any("event", bus))
		return nil
	}

	bus.Text = event.Message.Text
	bus.Normalized = alert.Normalize(bus.Text)
	if !p.keyword.Match(bus.Normalized) {
		bus.Skip("keyword not matched")
		logger.Debug("skipping event", slog.Any("event", bus))
		return nil
	}

	bus.Status = alert.Classified
	logger.Info("keyword matched", slog.String("keyword", string(p.keyword)))
	return nil
}
