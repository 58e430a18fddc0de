package service

import "errors"

// Sentinel errors mapped to HTTP statuses at the controller boundary. The
// messages double as the JSON error bodies, so they stay user-facing.
var (
	ErrChatNotFound = errors.New("Chat not found")
	ErrEmptyMessage = errors.New("No message or files provided")
)
