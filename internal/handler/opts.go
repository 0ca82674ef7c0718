package handler

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/alert"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithKeyword sets the keyword that triggers an alert.
func WithKeyword(keyword string) Option {
	return func(h *Handler) {
		h.keyword = alert.NewKeyword(keyword)
	}
}

// WithAdminRecipient sets the id every alert is pushed to.
func WithAdminRecipient(recipient string) Option {
	return func(h *Handler) {
		h.adminRecipient = recipient
	}
}

// WithTruncateAt sets the maximum number of characters of the original message quoted in an alert.
func WithTruncateAt(n int) Option {
	return func(h *Handler) {
		h.truncateAt = n
	}
}
