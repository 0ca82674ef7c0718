// Package line provides a Controller implementing platform.Client on top of the LINE Messaging API.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/isometry/line-alert-relay/internal/controllers/aws"
	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/platform"
	"github.com/isometry/line-alert-relay/internal/validation"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/pkg/errors"
)

const (
	// AuthModeToken reads the channel credentials from flags, environment or configuration file.
	AuthModeToken = "token"
	// AuthModeSSM reads the channel credentials from an SSM parameter holding a JSON document.
	AuthModeSSM = "ssm"

	// DefaultTimeout bounds every Messaging API call, lookups and pushes alike.
	DefaultTimeout = 10 * time.Second
)

// Option is a functional option used to configure a Controller instance.
type Option func(*Controller)

// Credentials is a helper struct to hold the channel credentials.
type Credentials struct {
	ChannelSecret      *validation.ChannelSecret `json:"channel_secret"`
	ChannelAccessToken string                    `json:"channel_access_token"`
}

// Controller wraps the Messaging API client. It holds no per-request state and is safe for concurrent use.
type Controller struct {
	Credentials

	authMode      string
	ssmKey        string
	endpoint      string
	timeout       time.Duration
	ctx           context.Context
	logger        *slog.Logger
	httpClient    *http.Client
	awsController *aws.Controller

	api *messaging_api.MessagingApiAPI
}

var _ platform.Client = (*Controller)(nil)

// NewController retrieves the channel credentials and builds the Messaging API client.
// Missing credentials are reported here so that they fail the process at startup.
func NewController(opts ...Option) (*Controller, error) {
	_inst := &Controller{authMode: AuthModeToken, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("authMode", _inst.authMode)

	if err := _inst.RetrieveCredentials(); err != nil {
		return nil, err
	}

	if _inst.httpClient == nil {
		_inst.httpClient = &http.Client{
			Timeout:   _inst.timeout,
			Transport: &loggingRoundTripper{logger: _inst.logger},
		}
	}
	apiOpts := []messaging_api.MessagingApiAPIOption{
		messaging_api.WithHTTPClient(_inst.httpClient),
	}
	if _inst.endpoint != "" {
		apiOpts = append(apiOpts, messaging_api.WithEndpoint(_inst.endpoint))
	}
	api, err := messaging_api.NewMessagingApiAPI(_inst.ChannelAccessToken, apiOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create messaging API client")
	}
	_inst.api = api
	return _inst, nil
}

// RetrieveCredentials fetches the channel credentials according to the configured auth mode.
func (c *Controller) RetrieveCredentials() error {
	switch strings.TrimSpace(strings.ToLower(c.authMode)) {
	case AuthModeToken:
	case AuthModeSSM:
		if c.ssmKey == "" {
			return errors.New("missing SSM key for credentials")
		}
		if c.awsController == nil {
			awsCtl, err := aws.NewController(
				aws.WithContext(c.ctx),
				aws.WithLogger(c.logger))
			if err != nil {
				return errors.Wrap(err, "failed to create AWS controller")
			}
			c.awsController = awsCtl
		}
		c.logger.Debug("retrieving credentials from SSM...")
		secret, err := c.awsController.GetSecret(c.ssmKey, true)
		if err != nil {
			return errors.Wrap(err, "failed to fetch credentials from SSM")
		}
		if err = json.Unmarshal([]byte(helpers.String(secret)), &c.Credentials); err != nil {
			return errors.Wrap(err, "failed to unmarshal credentials")
		}
	default:
		return fmt.Errorf("unsupported auth mode: %s", c.authMode)
	}

	if c.ChannelSecret == nil || *c.ChannelSecret == "" {
		return errors.New("missing channel secret [LINE_CHANNEL_SECRET]")
	}
	if c.ChannelAccessToken == "" {
		return errors.New("missing channel access token [LINE_CHANNEL_ACCESS_TOKEN]")
	}
	return nil
}

// VerifySignature checks signature against the raw body with the channel secret.
func (c *Controller) VerifySignature(body []byte, signature string) validation.Result {
	return c.ChannelSecret.Verify(body, signature)
}

// GetUserProfile resolves a user id to its display name.
func (c *Controller) GetUserProfile(userID string) (*platform.Profile, error) {
	resp, err := c.api.GetProfile(userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get profile of %s", userID)
	}
	return &platform.Profile{UserID: resp.UserId, DisplayName: resp.DisplayName}, nil
}

// GetGroupMemberProfile resolves a group member, whether or not they befriended the bot.
func (c *Controller) GetGroupMemberProfile(groupID, userID string) (*platform.Profile, error) {
	resp, err := c.api.GetGroupMemberProfile(groupID, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get profile of %s in group %s", userID, groupID)
	}
	return &platform.Profile{UserID: resp.UserId, DisplayName: resp.DisplayName}, nil
}

// GetRoomMemberProfile resolves a room member, whether or not they befriended the bot.
func (c *Controller) GetRoomMemberProfile(roomID, userID string) (*platform.Profile, error) {
	resp, err := c.api.GetRoomMemberProfile(roomID, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get profile of %s in room %s", userID, roomID)
	}
	return &platform.Profile{UserID: resp.UserId, DisplayName: resp.DisplayName}, nil
}

// GetGroupInfo resolves a group id to its name.
func (c *Controller) GetGroupInfo(groupID string) (*platform.Group, error) {
	resp, err := c.api.GetGroupSummary(groupID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get summary of group %s", groupID)
	}
	return &platform.Group{GroupID: resp.GroupId, GroupName: resp.GroupName}, nil
}

// PushMessage sends a text message to recipientID. No retry key is set: a failed push is not retried.
func (c *Controller) PushMessage(recipientID string, message platform.TextMessage) error {
	_, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To: recipientID,
		Messages: []messaging_api.MessageInterface{
			&messaging_api.TextMessage{Text: message.Text},
		},
	}, "")
	if err != nil {
		return errors.Wrapf(err, "failed to push message to %s", recipientID)
	}
	return nil
}

// loggingRoundTripper logs outbound Messaging API traffic at trace level.
type loggingRoundTripper struct {
	logger *slog.Logger
}

// RoundTrip logs the request and response.
func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var buf bytes.Buffer
	if req.Body != nil {
		_, _ = io.ReadAll(io.TeeReader(req.Body, &buf))
		req.Body = io.NopCloser(&buf)
	}
	var container map[string]any
	_ = json.Unmarshal(buf.Bytes(), &container)
	l.logger.Log(req.Context(), slog.Level(-8), "sending request", slog.String("method", req.Method), slog.String("url", req.URL.String()), slog.Any("body", container))
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		l.logger.Log(req.Context(), slog.Level(-8), "failed to send request", slog.Any("error", err))
		return nil, err
	}
	l.logger.Log(req.Context(), slog.Level(-8), "received response", slog.Any("status", resp.Status))
	return resp, nil
}
