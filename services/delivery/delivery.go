// Package delivery is the outbound messaging boundary: it turns one
// formatted invitation into per-channel send attempts against the
// configured gateways. It knows nothing about guest records.
package delivery

import (
	"context"

	"gather.link/models"
)

// Message is one guest's formatted invitation, ready to send.
type Message struct {
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	Subject       string
	Body          string
	InvitationURL string
}

// ChannelResult reports one channel's attempt.
type ChannelResult struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Result aggregates the per-channel outcomes for one guest. Success is
// true when at least one requested channel delivered; callers inspect
// the channel entries for detail.
type Result struct {
	Success bool           `json:"success"`
	Email   *ChannelResult `json:"email,omitempty"`
	SMS     *ChannelResult `json:"sms,omitempty"`
}

// Provider sends one message across the requested channels. Channels are
// attempted independently: an email failure never blocks the SMS attempt
// and vice versa.
type Provider interface {
	Send(ctx context.Context, msg Message, channels []models.Channel) Result
}
