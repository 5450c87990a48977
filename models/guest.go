package models

import (
	"fmt"
	"strings"
	"time"
)

// GuestStatus is a guest's invitation/RSVP state. The column is plain
// varchar, so the store accepts whatever it is handed; API boundaries
// parse into this closed set and reject anything else.
type GuestStatus string

const (
	GuestStatusPending   GuestStatus = "PENDING"
	GuestStatusInvited   GuestStatus = "INVITED"
	GuestStatusConfirmed GuestStatus = "CONFIRMED"
	GuestStatusDeclined  GuestStatus = "DECLINED"
	GuestStatusMaybe     GuestStatus = "MAYBE"
)

// ParseGuestStatus validates a raw status string against the closed set.
func ParseGuestStatus(raw string) (GuestStatus, error) {
	switch s := GuestStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case GuestStatusPending, GuestStatusInvited, GuestStatusConfirmed, GuestStatusDeclined, GuestStatusMaybe:
		return s, nil
	default:
		return "", fmt.Errorf("unknown guest status %q", raw)
	}
}

// ParseRSVPStatus validates a guest-supplied RSVP choice. INVITED is not
// a choice a guest can make; only the dispatcher sets it.
func ParseRSVPStatus(raw string) (GuestStatus, error) {
	s, err := ParseGuestStatus(raw)
	if err != nil {
		return "", err
	}
	if s == GuestStatusInvited {
		return "", fmt.Errorf("status %q cannot be set via RSVP", raw)
	}
	return s, nil
}

// Guest is a person on an event's guest list. Name is required; at least
// one of Email/Phone is expected by convention but not enforced here.
type Guest struct {
	BaseModel
	EventID   uint        `gorm:"index;not null" json:"eventId"`
	Name      string      `gorm:"type:varchar(150);not null" json:"name"`
	Email     string      `gorm:"type:varchar(150);index" json:"email"`
	Phone     string      `gorm:"type:varchar(30)" json:"phone"`
	Status    GuestStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	InvitedAt *time.Time  `gorm:"type:timestamptz" json:"invitedAt"`
	Response  string      `gorm:"type:text" json:"response"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Contact returns the guest's reachable address(es) for result reporting.
func (g *Guest) Contact() string {
	parts := make([]string, 0, 2)
	if g.Email != "" {
		parts = append(parts, g.Email)
	}
	if g.Phone != "" {
		parts = append(parts, g.Phone)
	}
	return strings.Join(parts, " / ")
}

// AwaitingFirstInvite reports whether a successful send should flip the
// guest to INVITED rather than just refreshing InvitedAt.
func (g *Guest) AwaitingFirstInvite() bool {
	return g.Status == "" || g.Status == GuestStatusPending
}
