package processor

import (
	"log/slog"

	"github.com/isometry/line-alert-relay/internal/alert"
	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/models"
	"github.com/isometry/line-alert-relay/internal/platform"
	"github.com/pkg/errors"
)

type resolverProcessor struct {
	logger *slog.Logger
	client platform.Client
}

// NewResolverProcessor returns a Processor that resolves the sender name and the conversation location.
// Lookup failures degrade the alert to fallback values and never stop the event.
func NewResolverProcessor(client platform.Client, opts ...Option) Processor {
	_inst := &resolverProcessor{client: client, logger: helpers.NewNoopLogger()}
	applyOpts(_inst, opts...)
	return _inst
}

func (p *resolverProcessor) SetLogger(logger *slog.Logger) {
	p.logger = logger.WithGroup("processor:resolver")
}

func (p *resolverProcessor) Process(bus *alert.Bus) error {
	logger := busLogger(bus, p.logger)
	source := bus.Event.Source

	bus.Sender = p.resolveSender(logger, source)
	bus.Location = p.resolveLocation(logger, source)
	bus.Status = alert.Enriched

	logger.Debug("resolved context",
		slog.String("sender", bus.Sender.String()),
		slog.Bool("senderResolved", bus.Sender.Resolved),
		slog.String("location", bus.Location.String()))
	return nil
}

func (p *resolverProcessor) resolveSender(logger *slog.Logger, source models.Source) alert.Sender {
	userID := source.UserID
	if userID == "" {
		return alert.FallbackSender(userID)
	}

	profile, err := p.lookupProfile(source)
	if err == nil && (profile == nil || profile.DisplayName == "") {
		err = errors.New("empty display name")
	}
	if err != nil {
		lookupErr := &alert.LookupError{Kind: alert.ProfileLookup, ID: userID, Cause: err}
		logger.Warn("failed to resolve sender, using fallback", slog.Any("error", lookupErr))
		return alert.FallbackSender(userID)
	}
	return alert.ResolvedSender(profile.DisplayName)
}

// lookupProfile uses the member endpoints inside groups and rooms: the plain profile endpoint only
// knows users who befriended the bot.
func (p *resolverProcessor) lookupProfile(source models.Source) (*platform.Profile, error) {
	switch {
	case source.Type == models.SourceGroup && source.GroupID != "":
		return p.client.GetGroupMemberProfile(source.GroupID, source.UserID)
	case source.Type == models.SourceRoom && source.RoomID != "":
		return p.client.GetRoomMemberProfile(source.RoomID, source.UserID)
	default:
		return p.client.GetUserProfile(source.UserID)
	}
}

func (p *resolverProcessor) resolveLocation(logger *slog.Logger, source models.Source) alert.Location {
	location := alert.Location{Kind: source.Type}
	if source.Type != models.SourceGroup || source.GroupID == "" {
		return location
	}

	group, err := p.client.GetGroupInfo(source.GroupID)
	if err == nil && group == nil {
		err = errors.New("empty group summary")
	}
	if err != nil {
		lookupErr := &alert.LookupError{Kind: alert.GroupLookup, ID: source.GroupID, Cause: err}
		logger.Warn("failed to resolve group name, using fallback", slog.Any("error", lookupErr))
		return location
	}
	location.GroupName = group.GroupName
	return location
}
