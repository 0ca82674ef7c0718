package cmd

import (
	"time"

	"github.com/isometry/line-alert-relay/internal/config"
	"github.com/isometry/line-alert-relay/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. The only supported value is 'service'",
		Short:       helpers.Ptr("m"),
	},
	&config.Line.AuthMode: {
		Name:        "line-auth-mode",
		Description: "Channel credentials provider. Supported values are 'token' and 'ssm'",
		Short:       helpers.Ptr("A"),
	},
	&config.Line.SSMKey: {
		Name:        "line-ssm-key",
		Description: "The SSM parameter key to use when fetching the channel credentials",
	},
	&config.Line.ChannelSecret: {
		Name:        "line-channel-secret",
		Description: "The channel secret used to verify webhook signatures",
		Hidden:      true,
	},
	&config.Line.ChannelAccessToken: {
		Name:        "line-channel-access-token",
		Description: "The channel access token used to call the Messaging API",
		Hidden:      true,
	},
	&config.Line.APIEndpoint: {
		Name:        "line-api-endpoint",
		Description: "Override the Messaging API base URL",
	},
	&config.Relay.Keyword: {
		Name:        "keyword",
		Description: "The case-insensitive keyword that triggers an alert",
		Short:       helpers.Ptr("k"),
		Env:         helpers.Ptr("KEYWORD"),
	},
	&config.Relay.AdminRecipientID: {
		Name:        "admin-user-id",
		Description: "The LINE user id receiving alerts",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapInt64 = map[*int64]boundEnvVar[int64]{
	&config.Relay.TruncateAt: {
		Name:        "truncate-at",
		Description: "The number of characters of the original message quoted in an alert. Zero disables truncation",
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Line.APITimeout: {
		Name:        "line-api-timeout",
		Description: "The timeout of each Messaging API call (profile, group and push)",
	},
}
