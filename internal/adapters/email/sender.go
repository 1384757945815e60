// Package email sends bonus statements via an external provider.
package email

import (
	"context"
	"time"
)

// SendRequest contains the data for one outgoing email.
type SendRequest struct {
	To      []string
	From    string // sender address, falls back to the configured default
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult contains the provider's response.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
