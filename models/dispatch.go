package models

import "fmt"

// DispatchType selects which guests a send targets when no explicit
// guest list is supplied.
type DispatchType string

const (
	DispatchTypeInvitation DispatchType = "invitation"
	DispatchTypeReminder   DispatchType = "reminder"
)

// ParseDispatchType validates a raw dispatch type string.
func ParseDispatchType(raw string) (DispatchType, error) {
	switch t := DispatchType(raw); t {
	case DispatchTypeInvitation, DispatchTypeReminder:
		return t, nil
	default:
		return "", fmt.Errorf("unknown dispatch type %q", raw)
	}
}

// Channel is a delivery medium for an invitation.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// ParseChannel validates a raw channel string.
func ParseChannel(raw string) (Channel, error) {
	switch ch := Channel(raw); ch {
	case ChannelEmail, ChannelSMS:
		return ch, nil
	default:
		return "", fmt.Errorf("unknown channel %q", raw)
	}
}
