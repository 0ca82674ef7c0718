package models

import (
	"encoding/json"
	"log/slog"
)

// Payload is the envelope delivered by the platform on every webhook call.
// Events are kept raw so that a single malformed event can be skipped without rejecting its siblings.
type Payload struct {
	Destination string            `json:"destination"`
	Events      []json.RawMessage `json:"events"`
}

// EventType is the top-level kind of a webhook event.
type EventType string

const (
	// EventMessage is delivered when a user sends a message.
	EventMessage EventType = "message"
	// EventFollow is delivered when a user adds the bot as a friend.
	EventFollow EventType = "follow"
	// EventJoin is delivered when the bot joins a group or room.
	EventJoin EventType = "join"
	// EventOther covers every kind this service does not act upon.
	EventOther EventType = "other"
)

// MessageType is the kind of content carried by a message event.
type MessageType string

const (
	// MessageText is a plain text message.
	MessageText MessageType = "text"
	// MessageOther covers stickers, images, video, audio, files and locations.
	MessageOther MessageType = "other"
)

// SourceType is the kind of conversation an event originated from.
type SourceType string

const (
	SourceUser  SourceType = "user"
	SourceGroup SourceType = "group"
	SourceRoom  SourceType = "room"
	SourceOther SourceType = "other"
)

// Event is a decoded webhook event. Unknown kinds are mapped to the Other variants and
// the wire value is preserved in RawType for logging.
type Event struct {
	Type           EventType
	RawType        string
	Message        *Message
	Source         Source
	Timestamp      int64
	WebhookEventID string
	ReplyToken     string
	Mode           string
	Redelivery     bool
}

// Message is the payload of a message event.
type Message struct {
	Type    MessageType
	RawType string
	ID      string
	Text    string
}

// Source identifies the conversation an event originated from.
type Source struct {
	Type    SourceType
	RawType string
	UserID  string
	GroupID string
	RoomID  string
}

type wireEvent struct {
	Type    string `json:"type"`
	Message *struct {
		Type string `json:"type"`
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"message"`
	Source *struct {
		Type    string `json:"type"`
		UserID  string `json:"userId"`
		GroupID string `json:"groupId"`
		RoomID  string `json:"roomId"`
	} `json:"source"`
	Timestamp       int64  `json:"timestamp"`
	WebhookEventID  string `json:"webhookEventId"`
	ReplyToken      string `json:"replyToken"`
	Mode            string `json:"mode"`
	DeliveryContext struct {
		IsRedelivery bool `json:"isRedelivery"`
	} `json:"deliveryContext"`
}

// UnmarshalJSON decodes a wire event into its tagged variant form.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Event{
		Type:           eventType(w.Type),
		RawType:        w.Type,
		Timestamp:      w.Timestamp,
		WebhookEventID: w.WebhookEventID,
		ReplyToken:     w.ReplyToken,
		Mode:           w.Mode,
		Redelivery:     w.DeliveryContext.IsRedelivery,
		Source:         Source{Type: SourceOther},
	}
	if w.Source != nil {
		e.Source = Source{
			Type:    sourceType(w.Source.Type),
			RawType: w.Source.Type,
			UserID:  w.Source.UserID,
			GroupID: w.Source.GroupID,
			RoomID:  w.Source.RoomID,
		}
	}
	if e.Type == EventMessage && w.Message != nil {
		e.Message = &Message{
			Type:    messageType(w.Message.Type),
			RawType: w.Message.Type,
			ID:      w.Message.ID,
			Text:    w.Message.Text,
		}
	}
	return nil
}

func eventType(t string) EventType {
	switch EventType(t) {
	case EventMessage, EventFollow, EventJoin:
		return EventType(t)
	default:
		return EventOther
	}
}

func messageType(t string) MessageType {
	if MessageType(t) == MessageText {
		return MessageText
	}
	return MessageOther
}

func sourceType(t string) SourceType {
	switch SourceType(t) {
	case SourceUser, SourceGroup, SourceRoom:
		return SourceType(t)
	default:
		return SourceOther
	}
}

// LogValue renders the source with only the identifiers relevant to its kind.
func (s Source) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("type", string(s.Type))}
	if s.UserID != "" {
		attrs = append(attrs, slog.String("userId", s.UserID))
	}
	switch s.Type {
	case SourceGroup:
		attrs = append(attrs, slog.String("groupId", s.GroupID))
	case SourceRoom:
		attrs = append(attrs, slog.String("roomId", s.RoomID))
	}
	return slog.GroupValue(attrs...)
}
