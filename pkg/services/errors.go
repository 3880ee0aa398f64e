package services

import "errors"

// Sentinel errors for everything the HTTP layer turns into a 4xx. Storage
// failures pass through unwrapped and become a generic 500.
var (
	ErrChatNotFound       = errors.New("chat not found")
	ErrMessageNotFound    = errors.New("user message not found")
	ErrEmptyTitle         = errors.New("title is required")
	ErrEmptyMessage       = errors.New("message content is required")
	ErrMessageTooLong     = errors.New("message too long (max 4096 characters)")
	ErrNoPairToRegenerate = errors.New("need at least one user message and one assistant response")
	ErrInvalidMessagePair = errors.New("last pair must be user message followed by assistant response")
)
