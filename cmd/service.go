package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/isometry/line-alert-relay/internal/config"
	"github.com/isometry/line-alert-relay/internal/controllers/line"
	"github.com/isometry/line-alert-relay/internal/handler"
	"github.com/isometry/line-alert-relay/internal/runtime"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// HealthMessage is the body served on GET /.
const HealthMessage = "Server is running"

// shutdownGrace bounds the time given to in-flight requests and alert tasks once a termination signal is received.
var shutdownGrace = 10 * time.Second

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "standalone", "server"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Validate(); err != nil {
				return errors.Wrap(err, "invalid configuration")
			}
			logger = logger.With("mode", config.ModeService)
			logger.Info("spawning...")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rtm, hdl, err := setup(ctx)
			if err != nil {
				return err
			}

			logger.Debug("creating HTTP server...")
			s := &http.Server{
				Handler:           newRouter(rtm, config.Service.Path),
				Addr:              net.JoinHostPort(config.Service.Addr, config.Service.Port),
				ReadHeaderTimeout: config.Service.Timeout,
				ReadTimeout:       config.Service.Timeout,
				WriteTimeout:      config.Service.Timeout,
				IdleTimeout:       config.Service.Timeout,
			}

			logger.Info("serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
			return serve(ctx, s, hdl)
		},
	}

	return cmd
}

// setup builds the LINE controller, the alert handler and the HTTP runtime from the configuration.
func setup(ctx context.Context) (*runtime.Runtime, *handler.Handler, error) {
	logger.Debug("creating LINE controller...")
	lineCtl, err := line.NewController(
		line.WithAuthMode(config.Line.AuthMode),
		line.WithSSMKey(config.Line.SSMKey),
		line.WithChannelSecret(config.Line.ChannelSecret),
		line.WithChannelAccessToken(config.Line.ChannelAccessToken),
		line.WithEndpoint(config.Line.APIEndpoint),
		line.WithTimeout(config.Line.APITimeout),
		line.WithContext(ctx),
		line.WithLogger(logger.With("controller", "line")))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create LINE controller")
	}

	logger.Debug("creating alert handler...")
	hdl, err := handler.NewHandler(lineCtl,
		handler.WithKeyword(config.Relay.Keyword),
		handler.WithAdminRecipient(config.Relay.AdminRecipientID),
		handler.WithTruncateAt(int(config.Relay.TruncateAt)),
		handler.WithLogger(logger.With("component", "alert-handler")))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create alert handler")
	}

	logger.Debug("creating runtime...")
	rtm := runtime.NewRuntime(hdl,
		runtime.WithMaxBodyBytes(config.Service.MaxBodyBytes),
		runtime.WithLogger(logger.With("component", "runtime")))
	return rtm, hdl, nil
}

// newRouter mounts the webhook runtime on path and the health check on GET /.
func newRouter(rtm http.Handler, path string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Handle(path, rtm)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(HealthMessage))
	})
	return r
}

// serve runs s until ctx is cancelled, then stops accepting requests and drains the alert tasks already started.
// Both steps share the shutdown grace period.
func serve(ctx context.Context, s *http.Server, hdl *handler.Handler) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Warn("failed to stop the server gracefully", "error", err)
	}
	if err := hdl.Drain(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to drain alert tasks")
	}
	logger.Info("shut down")
	return nil
}
