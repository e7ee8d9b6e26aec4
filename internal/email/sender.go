package email

import (
	"context"
	"errors"
)

// Sender is the interface that all email transports must implement.
// Implementations wrap their failures with ErrAuthFailed, ErrTransport or
// ErrConfigInvalid so the dispatcher can tell causes apart.
type Sender interface {
	// Send makes a single delivery attempt.
	Send(ctx context.Context, msg Message) error
}

// Message represents an email message to be sent.
type Message struct {
	From     string // sender address
	FromName string // optional display name
	To       string // recipient email address
	Subject  string // email subject
	HTMLBody string // HTML email body
	TextBody string // plain-text alternative
}

// Transport failure causes
var (
	ErrConfigInvalid = errors.New("email transport configuration is incomplete")
	ErrAuthFailed    = errors.New("email authentication failed")
	ErrTransport     = errors.New("email transport failure")
)
