package alert

import (
	"fmt"

	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/models"
)

// fallbackIDLength is the number of leading id characters kept in a fallback sender name.
const fallbackIDLength = 8

// Sender is the human readable identity of the author of a message. Name is never empty.
type Sender struct {
	Name     string
	Resolved bool
}

// ResolvedSender wraps a display name returned by the profile lookup.
func ResolvedSender(displayName string) Sender {
	return Sender{Name: displayName, Resolved: true}
}

// FallbackSender derives a deterministic placeholder from an opaque user id.
func FallbackSender(userID string) Sender {
	if userID == "" {
		return Sender{Name: "an unknown user"}
	}
	return Sender{Name: fmt.Sprintf("user %s", helpers.Obfuscate(userID, fallbackIDLength))}
}

func (s Sender) String() string {
	return s.Name
}

// Location describes where a message was posted.
type Location struct {
	Kind      models.SourceType
	GroupName string
}

// String renders the location for the alert body.
func (l Location) String() string {
	switch l.Kind {
	case models.SourceUser:
		return "private chat"
	case models.SourceGroup:
		if l.GroupName == "" {
			return "a group"
		}
		return fmt.Sprintf("group \"%s\"", l.GroupName)
	case models.SourceRoom:
		return "a room"
	default:
		return "an unknown chat"
	}
}
