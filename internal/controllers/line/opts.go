package line

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/isometry/line-alert-relay/internal/controllers/aws"
	"github.com/isometry/line-alert-relay/internal/validation"
)

// WithAuthMode sets the credentials provider. Supported values are "token" and "ssm".
func WithAuthMode(mode string) Option {
	return func(c *Controller) {
		c.authMode = mode
	}
}

// WithSSMKey sets the SSM parameter holding the channel credentials.
func WithSSMKey(key string) Option {
	return func(c *Controller) {
		c.ssmKey = key
	}
}

// WithChannelSecret sets the channel secret used to verify webhook signatures.
func WithChannelSecret(secret string) Option {
	return func(c *Controller) {
		if secret != "" {
			c.ChannelSecret = validation.NewChannelSecret(secret)
		}
	}
}

// WithChannelAccessToken sets the long-lived channel access token.
func WithChannelAccessToken(token string) Option {
	return func(c *Controller) {
		c.ChannelAccessToken = token
	}
}

// WithEndpoint overrides the Messaging API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Controller) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds each Messaging API call. Non-positive values keep DefaultTimeout.
// It is ignored when a client is supplied with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets the HTTP client used for Messaging API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) {
		c.httpClient = client
	}
}

// WithAWSController sets the AWS controller used by the "ssm" auth mode.
func WithAWSController(ctl *aws.Controller) Option {
	return func(c *Controller) {
		c.awsController = ctl
	}
}

// WithLogger sets a custom logger for the Controller instance.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithContext sets the context used while retrieving credentials.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}
