package models

import (
	"fmt"
	"strings"
	"time"
)

// Event is a hosted occasion guests are invited to. It owns its guest
// list; deleting an event cascades to its guests.
type Event struct {
	BaseModel
	CreatorUserID   uint      `gorm:"index;not null" json:"creatorUserId"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	StartDateTime   time.Time `gorm:"index;type:timestamptz;not null" json:"startDateTime"`
	Timezone        string    `gorm:"type:varchar(50);default:'UTC'" json:"timezone"`
	LocationAddress string    `gorm:"type:varchar(255)" json:"locationAddress"`
	LocationUnit    string    `gorm:"type:varchar(50)" json:"locationUnit"`
	ImageKey        string    `gorm:"type:varchar(255)" json:"imageKey"`
	IsEnabled       bool      `gorm:"default:true;index" json:"isEnabled"`

	Creator User    `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Guests  []Guest `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// LocalStart returns the start time in the event's own timezone. An
// unknown or empty timezone falls back to UTC.
func (e *Event) LocalStart() time.Time {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil || e.Timezone == "" {
		loc = time.UTC
	}
	return e.StartDateTime.In(loc)
}

// LocationLine joins address and unit into one display string.
func (e *Event) LocationLine() string {
	parts := make([]string, 0, 2)
	if e.LocationAddress != "" {
		parts = append(parts, e.LocationAddress)
	}
	if e.LocationUnit != "" {
		parts = append(parts, fmt.Sprintf("Unit %s", e.LocationUnit))
	}
	return strings.Join(parts, ", ")
}

// Summary is the subset of event fields echoed to guests alongside RSVP
// responses and rendered on public pages.
type EventSummary struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartDateTime   time.Time `json:"startDateTime"`
	Timezone        string    `json:"timezone"`
	LocationAddress string    `json:"locationAddress"`
	LocationUnit    string    `json:"locationUnit"`
}

// Summarize builds the guest-facing summary view.
func (e *Event) Summarize() EventSummary {
	return EventSummary{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		StartDateTime:   e.StartDateTime,
		Timezone:        e.Timezone,
		LocationAddress: e.LocationAddress,
		LocationUnit:    e.LocationUnit,
	}
}
