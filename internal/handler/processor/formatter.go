package processor

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/helpers"
)

type formatterProcessor struct {
	logger     *slog.Logger
	keyword    alert.Keyword
	recipient  string
	truncateAt int
}

// NewFormatterProcessor returns a Processor that builds the alert addressed to recipient.
func NewFormatterProcessor(keyword alert.Keyword, recipient string, truncateAt int, opts ...Option) Processor {
	_inst := &formatterProcessor{
		keyword:    keyword,
		recipient:  recipient,
		truncateAt: truncateAt,
		logger:     helpers.NewNoopLogger(),
	}
	applyOpts(_inst, opts...)
	return _inst
}

func (p *formatterProcessor) SetLogger(logger *slog.Logger) {
	p.logger = logger.WithGroup("processor:formatter")
}

func (p *formatterProcessor) Process(bus *alert.Bus) error {
	bus.Alert = &alert.Message{
		Recipient: p.recipient,
		Body:      alert.Format(p.keyword, bus.Sender, bus.Location, bus.Text, p.truncateAt),
	}
	bus.Status = alert.Formatted
	return nil
}
