package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/repositories"
	"gather.link/services/delivery"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DispatchServiceError is a typed service-level error.
type DispatchServiceError string

func (e DispatchServiceError) Error() string { return string(e) }

const (
	// ErrDispatchInvalidParams covers a bad type/channel with no explicit
	// guest list to fall back on.
	ErrDispatchInvalidParams DispatchServiceError = "invalid request parameters"
)

// DispatchRequest is one send-invitations call. GuestIDs, when present,
// selects guests explicitly and Type is not consulted for selection.
type DispatchRequest struct {
	EventID  uint     `json:"-"`
	Type     string   `json:"type"`
	GuestIDs []uint   `json:"guestIds"`
	Channels []string `json:"channels"`
}

// GuestDispatchResult is one guest's delivery attempt.
type GuestDispatchResult struct {
	GuestID       uint                    `json:"guestId"`
	GuestName     string                  `json:"guestName"`
	Contact       string                  `json:"contact"`
	InvitationURL string                  `json:"invitationUrl"`
	Success       bool                    `json:"success"`
	Error         string                  `json:"error,omitempty"`
	Email         *delivery.ChannelResult `json:"email,omitempty"`
	SMS           *delivery.ChannelResult `json:"sms,omitempty"`
}

// DispatchSummary aggregates a batch.
type DispatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// DispatchOutcome is the full response for one dispatch call. A batch
// with member failures is still a successful outcome; callers inspect
// Summary.Failed.
type DispatchOutcome struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Results []GuestDispatchResult `json:"results"`
	Summary DispatchSummary       `json:"summary"`
}

// IDispatchService sends invitations and reminders.
type IDispatchService interface {
	SendInvitations(ctx context.Context, actingUserID uint, req DispatchRequest) (*DispatchOutcome, error)
}

// DispatchService walks the selected guests sequentially within the
// request, one awaited send-and-update per guest. There is no retry,
// no queue and no cross-request lock: two hosts triggering reminders
// for the same event at the same time can double-send. Recovery from a
// failed send is re-running the call; failed guests keep their status
// and are re-selected next time.
type DispatchService struct {
	eventService IEventService
	guests       repositories.IGuestRepository
	provider     delivery.Provider
	baseURL      string
	now          func() time.Time
}

func NewDispatchService(db *gorm.DB, provider delivery.Provider, baseURL string) IDispatchService {
	return &DispatchService{
		eventService: NewEventService(db),
		guests:       repositories.NewGuestRepository(db),
		provider:     provider,
		baseURL:      strings.TrimRight(baseURL, "/"),
		now:          time.Now,
	}
}

// NewDispatchServiceWith wires explicit dependencies.
func NewDispatchServiceWith(eventService IEventService, guests repositories.IGuestRepository, provider delivery.Provider, baseURL string, now func() time.Time) IDispatchService {
	if now == nil {
		now = time.Now
	}
	return &DispatchService{
		eventService: eventService,
		guests:       guests,
		provider:     provider,
		baseURL:      strings.TrimRight(baseURL, "/"),
		now:          now,
	}
}

func (s *DispatchService) SendInvitations(ctx context.Context, actingUserID uint, req DispatchRequest) (*DispatchOutcome, error) {
	sel := repositories.DispatchSelection{GuestIDs: req.GuestIDs}
	if len(req.GuestIDs) == 0 {
		dispatchType, err := models.ParseDispatchType(req.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDispatchInvalidParams, err)
		}
		sel.Type = dispatchType
	}

	channels, err := parseChannels(req.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDispatchInvalidParams, err)
	}

	event, err := s.eventService.GetEventByID(ctx, req.EventID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !event.IsEnabled {
		return nil, ErrEventNotFound
	}

	guests, err := s.guests.FindForDispatch(ctx, event.ID, sel)
	if err != nil {
		return nil, err
	}
	if len(guests) == 0 {
		return &DispatchOutcome{
			Success: true,
			Message: "No guests matched the selection; nothing to send.",
			Results: []GuestDispatchResult{},
		}, nil
	}

	isReminder := sel.Type == models.DispatchTypeReminder
	results := make([]GuestDispatchResult, 0, len(guests))
	summary := DispatchSummary{Total: len(guests)}

	for i := range guests {
		result := s.dispatchOne(ctx, event, &guests[i], channels, isReminder)
		if result.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
		results = append(results, result)
	}

	configslog.SLog.Infof("Dispatch for event %d finished: %d sent, %d failed (by %d)",
		event.ID, summary.Successful, summary.Failed, actingUserID)

	return &DispatchOutcome{
		Success: true,
		Message: fmt.Sprintf("Processed %d guest(s): %d sent, %d failed.", summary.Total, summary.Successful, summary.Failed),
		Results: results,
		Summary: summary,
	}, nil
}

// dispatchOne handles a single guest end to end. A panic inside one
// iteration is converted into a failure entry so one malformed record
// cannot abort the batch.
func (s *DispatchService) dispatchOne(ctx context.Context, event *models.Event, guest *models.Guest, channels []models.Channel, isReminder bool) (result GuestDispatchResult) {
	result = GuestDispatchResult{
		GuestID:       guest.ID,
		GuestName:     guest.Name,
		Contact:       guest.Contact(),
		InvitationURL: s.invitationURL(event.ID, guest.ID),
	}
	defer func() {
		if r := recover(); r != nil {
			configslog.Log.Error("Dispatch iteration panicked",
				zap.Uint("eventID", event.ID), zap.Uint("guestID", guest.ID), zap.Any("panic", r))
			result.Success = false
			result.Error = fmt.Sprintf("unexpected error: %v", r)
		}
	}()

	msg := buildInvitationMessage(event, guest, result.InvitationURL, isReminder)
	sendResult := s.provider.Send(ctx, msg, channels)
	result.Email = sendResult.Email
	result.SMS = sendResult.SMS

	if !sendResult.Success {
		result.Error = "delivery failed on all requested channels"
		return result
	}

	// The guest row is touched only after a successful send; a failed
	// send leaves it eligible for the next run.
	if err := s.guests.UpdateAfterSend(ctx, guest.ID, s.now().UTC()); err != nil {
		configslog.Log.Error("Post-send guest update failed",
			zap.Uint("guestID", guest.ID), zap.Error(err))
		result.Error = fmt.Sprintf("delivered but status update failed: %v", err)
		return result
	}

	result.Success = true
	return result
}

func (s *DispatchService) invitationURL(eventID, guestID uint) string {
	// Plain concatenation: links carry no signature or expiry.
	return fmt.Sprintf("%s/invite/%d/%d", s.baseURL, eventID, guestID)
}

func parseChannels(raw []string) ([]models.Channel, error) {
	if len(raw) == 0 {
		return []models.Channel{models.ChannelEmail, models.ChannelSMS}, nil
	}
	channels := make([]models.Channel, 0, len(raw))
	for _, r := range raw {
		ch, err := models.ParseChannel(r)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// buildInvitationMessage combines guest and event fields into one
// formatted message, with the start time rendered in the event's
// timezone.
func buildInvitationMessage(event *models.Event, guest *models.Guest, invitationURL string, isReminder bool) delivery.Message {
	subject := fmt.Sprintf("You're invited: %s", event.Title)
	if isReminder {
		subject = fmt.Sprintf("Reminder: %s", event.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", guest.Name)
	fmt.Fprintf(&b, "You're invited to %s.\n", event.Title)
	if event.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", event.Description)
	}
	fmt.Fprintf(&b, "\nWhen: %s\n", event.LocalStart().Format("Monday, January 2, 2006 at 3:04 PM (MST)"))
	if loc := event.LocationLine(); loc != "" {
		fmt.Fprintf(&b, "Where: %s\n", loc)
	}
	fmt.Fprintf(&b, "\nRSVP here: %s\n", invitationURL)

	return delivery.Message{
		GuestName:     guest.Name,
		GuestEmail:    guest.Email,
		GuestPhone:    guest.Phone,
		Subject:       subject,
		Body:          b.String(),
		InvitationURL: invitationURL,
	}
}

var _ IDispatchService = (*DispatchService)(nil)
