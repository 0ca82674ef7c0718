// Package platform defines the capabilities the relay needs from the messaging platform.
package platform

import "github.com/isometry/line-alert-relay/internal/validation"

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/isometry/line-alert-relay/internal/platform Client

// Profile is the subset of a user profile used to name the sender of an alert.
type Profile struct {
	UserID      string
	DisplayName string
}

// Group is the subset of a group summary used to describe where an alert originated.
type Group struct {
	GroupID   string
	GroupName string
}

// TextMessage is a plain text push message.
type TextMessage struct {
	Text string
}

// Client is the messaging platform as seen by the relay. Implementations must be safe for
// concurrent use by simultaneous event tasks.
type Client interface {
	// VerifySignature checks signature against the raw request body with the channel secret.
	VerifySignature(body []byte, signature string) validation.Result
	// GetUserProfile resolves a user id to its profile. It only succeeds for users who befriended the bot.
	GetUserProfile(userID string) (*Profile, error)
	// GetGroupMemberProfile resolves a member of a group the bot belongs to.
	GetGroupMemberProfile(groupID, userID string) (*Profile, error)
	// GetRoomMemberProfile resolves a member of a room the bot belongs to.
	GetRoomMemberProfile(roomID, userID string) (*Profile, error)
	// GetGroupInfo resolves a group id to its summary.
	GetGroupInfo(groupID string) (*Group, error)
	// PushMessage sends message to recipientID outside of a reply flow.
	PushMessage(recipientID string, message TextMessage) error
}
