package handler

import "errors"

var (
	// ErrNoClient is returned when the handler is built without a platform client.
	ErrNoClient = errors.New("no platform client configured")
	// ErrNoRecipient is returned when the handler is built without an administrator recipient.
	ErrNoRecipient = errors.New("no admin recipient configured")
)
