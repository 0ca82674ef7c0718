// Package runtime adapts the webhook handler to net/http.
package runtime

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/handler"
	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/models"
)

// DefaultMaxBodyBytes caps the size of a webhook body.
const DefaultMaxBodyBytes int64 = 1 << 20

// Option is a functional option of the Runtime.
type Option func(*Runtime)

// WithLogger sets the logger of the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMaxBodyBytes caps the size of accepted webhook bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(r *Runtime) {
		r.maxBodyBytes = n
	}
}

// Runtime serves the webhook endpoint.
type Runtime struct {
	*handler.Handler
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewRuntime creates a new runtime instance
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler, maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// ServeHTTP is the HTTP handler for the runtime. The raw body is captured before anything
// decodes it, the response is flushed, and only then are the events of the batch started.
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		break
	default:
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, nil, resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	body, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, r.maxBodyBytes))
	if err != nil {
		status := http.StatusInternalServerError
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusBadRequest
			err = alert.ErrMalformedPayload
		}
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: status}, err, resp)
		return
	}

	headers := make(map[string]string, len(req.Header))
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}

	result, err := r.Handler.Process(models.Request{Body: body, Headers: headers})
	helpers.RespondHTTP(result.Response, err, resp)
	if f, ok := resp.(http.Flusher); ok {
		f.Flush()
	}
	result.Start()
}
