// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

// ModeService is the only supported runtime mode: a long-running HTTP server.
const ModeService = "service"

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Line is a struct that contains the configuration for the LINE channel.
	Line line
	// Relay is a struct that contains the configuration for keyword alerts.
	Relay relay
	// Service is a struct that contains the configuration for the service mode.
	Service service
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type line struct {
	// AuthMode selects where the channel credentials come from: 'token' or 'ssm'.
	AuthMode           string `yaml:"authMode,omitempty" default:"token"`
	SSMKey             string `yaml:"ssmKey,omitempty"`
	ChannelSecret      string `yaml:"channelSecret,omitempty"`
	ChannelAccessToken string `yaml:"channelAccessToken,omitempty"`
	// APIEndpoint overrides the Messaging API base URL.
	APIEndpoint string `yaml:"apiEndpoint,omitempty"`
	// APITimeout bounds each Messaging API call.
	APITimeout time.Duration `yaml:"apiTimeout,omitempty" default:"10s"`
}

type relay struct {
	// Keyword is the case-insensitive substring that triggers an alert.
	Keyword string `yaml:"keyword,omitempty" default:"urgent"`
	// AdminRecipientID is the LINE user id receiving alerts.
	AdminRecipientID string `yaml:"adminRecipientId,omitempty"`
	// TruncateAt is the number of characters of the original message quoted in an alert.
	TruncateAt int64 `yaml:"truncateAt,omitempty" default:"100"`
}

type service struct {
	Path         string        `yaml:"path,omitempty" default:"/webhook"`
	Addr         string        `yaml:"addr,omitempty"`
	Port         string        `yaml:"port,omitempty" default:"3000"`
	Timeout      time.Duration `yaml:"timeout,omitempty" default:"5s"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes,omitempty" default:"1048576"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Line),
		defaults.Set(&Relay),
		defaults.Set(&Service),
	)
}

// Validate reports the settings the relay cannot start without.
// Credentials are checked by the LINE controller since they may come from SSM.
func Validate() error {
	var errs []error
	if strings.TrimSpace(Global.Mode) != ModeService {
		errs = append(errs, fmt.Errorf("invalid mode: %s", Global.Mode))
	}
	if strings.TrimSpace(Relay.AdminRecipientID) == "" {
		errs = append(errs, errors.New("missing admin recipient [ADMIN_USER_ID]"))
	}
	if !strings.HasPrefix(Service.Path, "/") {
		errs = append(errs, fmt.Errorf("service path must start with '/': %s", Service.Path))
	}
	if Service.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("invalid maximum body size: %d", Service.MaxBodyBytes))
	}
	return errors.Join(errs...)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		Line    line    `yaml:"line,omitempty"`
		Relay   relay   `yaml:"relay,omitempty"`
		Service service `yaml:"service,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Line = a.Line
	Relay = a.Relay
	Service = a.Service

	return nil
}
