// Package handler implements the webhook pipeline: verify the raw request, acknowledge it, then
// process every event of the batch independently.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/handler/processor"
	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/models"
	"github.com/isometry/line-alert-relay/internal/platform"
	"github.com/isometry/line-alert-relay/internal/validation"
	"github.com/pkg/errors"
)

// RequestIDHeader is used to correlate the logs of a request with its event tasks.
const RequestIDHeader = "X-Request-Id"

// Option is a functional option of the Handler.
type Option func(*Handler)

// Handler verifies and acknowledges webhook requests and fans their events out to the processor chain.
type Handler struct {
	logger         *slog.Logger
	client         platform.Client
	keyword        alert.Keyword
	adminRecipient string
	truncateAt     int

	processors []processor.Processor

	// mu guards closed so that no batch is added to inflight once Wait has begun.
	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// Result is the outcome of Process. Response must be sent to the caller before Batch is started.
type Result struct {
	Response models.Response
	Batch    *Batch
}

// Start launches the event tasks of an acknowledged request. It is a no-op for rejected requests.
func (r *Result) Start() {
	if r != nil && r.Batch != nil {
		r.Batch.Start()
	}
}

// NewHandler creates a Handler bound to client.
func NewHandler(client platform.Client, options ...Option) (*Handler, error) {
	_inst := &Handler{
		client:     client,
		logger:     helpers.NewNoopLogger(),
		keyword:    alert.DefaultKeyword,
		truncateAt: alert.DefaultTruncateAt,
	}
	for _, opt := range options {
		opt(_inst)
	}

	if _inst.client == nil {
		return nil, ErrNoClient
	}
	if _inst.adminRecipient == "" {
		return nil, ErrNoRecipient
	}

	_inst.processors = []processor.Processor{
		processor.NewClassifierProcessor(_inst.keyword,
			processor.WithLogger(_inst.logger)),
		processor.NewResolverProcessor(_inst.client,
			processor.WithLogger(_inst.logger)),
		processor.NewFormatterProcessor(_inst.keyword, _inst.adminRecipient, _inst.truncateAt,
			processor.WithLogger(_inst.logger)),
		processor.NewDispatcherProcessor(_inst.client,
			processor.WithLogger(_inst.logger)),
	}
	return _inst, nil
}

// Process authenticates a raw webhook request and decodes its envelope. It performs no platform
// call besides signature verification; event work only begins once the returned Result is started.
func (h *Handler) Process(req models.Request) (*Result, error) {
	requestID, _ := req.Header(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := h.logger.With(slog.String("requestID", requestID))
	headers := map[string]string{RequestIDHeader: requestID}

	signature, _ := req.Header(validation.SignatureHeader)
	verification := h.client.VerifySignature(req.Body, signature)
	if !verification.Valid {
		logger.Info("rejecting request", slog.String("reason", "invalid signature"), slog.Bool("signaturePresent", signature != ""))
		helpers.OnceAMinute.Do(func() {
			logger.Warn("signature mismatch", slog.Any("verification", verification))
		})
		return &Result{
			Response: models.Response{StatusCode: http.StatusUnauthorized, Headers: headers},
		}, alert.ErrSignatureInvalid
	}
	logger.Debug("request signature is valid")

	var payload models.Payload
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		logger.Warn("rejecting request", slog.String("reason", "undecodable body"), slog.Any("error", err))
		return &Result{
			Response: models.Response{StatusCode: http.StatusBadRequest, Headers: headers},
		}, errors.Wrap(alert.ErrMalformedPayload, "decoding body")
	}
	if payload.Events == nil {
		logger.Warn("rejecting request", slog.String("reason", "missing events"))
		return &Result{
			Response: models.Response{StatusCode: http.StatusBadRequest, Headers: headers},
		}, errors.Wrap(alert.ErrMalformedPayload, "missing events")
	}

	logger.Info("acknowledging request", slog.Int("events", len(payload.Events)))
	return &Result{
		Response: models.Response{StatusCode: http.StatusOK, Body: "OK", Headers: headers},
		Batch:    h.newBatch(logger, payload.Events),
	}, nil
}

// Wait stops the handler from starting new batches and blocks until every started batch has completed.
// Batches acknowledged but started after Wait are dropped.
func (h *Handler) Wait() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.inflight.Wait()
}

// Drain is Wait bounded by ctx. Tasks still running when ctx is done are abandoned.
func (h *Handler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "event tasks still running")
	}
}

// track registers a batch as in flight. It reports false once the handler is closed.
func (h *Handler) track() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.inflight.Add(1)
	return true
}
