package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RSVPServiceError is a typed service-level error.
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPGuestNotFound    RSVPServiceError = "guest not found for RSVP"
	ErrRSVPInvalidStatus    RSVPServiceError = "invalid RSVP status"
	ErrRSVPInvalidInput     RSVPServiceError = "invalid RSVP request"
	ErrRSVPEmailAlreadySet  RSVPServiceError = "guest already has an email on file"
	ErrRSVPTransitionDenied RSVPServiceError = "status change not allowed"
)

// TransitionGuard decides whether a status change is allowed. The
// shipped implementation allows everything; the seam exists so a real
// transition table can be installed without touching call sites.
type TransitionGuard interface {
	Allow(from, to models.GuestStatus) bool
}

// AllowAllTransitions is the default guard: any status may be set from
// any prior status, including walking a CONFIRMED guest back to PENDING.
type AllowAllTransitions struct{}

func (AllowAllTransitions) Allow(_, _ models.GuestStatus) bool { return true }

// RSVPRequest is a guest-side status change. GuestID or EventID+Email
// must identify the guest; Email takes priority when both are present.
type RSVPRequest struct {
	GuestID  uint    `json:"guestId"`
	EventID  uint    `json:"eventId"`
	Email    string  `json:"email"`
	Status   string  `json:"status"`
	Response *string `json:"response"`
}

// RSVPResult echoes the updated guest with its event summary so the UI
// can refresh without a second round trip.
type RSVPResult struct {
	Guest models.Guest       `json:"guest"`
	Event models.EventSummary `json:"event"`
}

// IRSVPService is the guest-facing status setter.
type IRSVPService interface {
	SubmitRSVP(ctx context.Context, req RSVPRequest) (*RSVPResult, error)
	LookupGuest(ctx context.Context, eventID uint, guestID uint, email string) (*RSVPResult, error)
	CollectEmail(ctx context.Context, guestID uint, email string) (*models.Guest, error)
}

type RSVPService struct {
	guests repositories.IGuestRepository
	events repositories.IEventRepository
	guard  TransitionGuard
}

func NewRSVPService(db *gorm.DB) IRSVPService {
	return &RSVPService{
		guests: repositories.NewGuestRepository(db),
		events: repositories.NewEventRepository(db),
		guard:  AllowAllTransitions{},
	}
}

// NewRSVPServiceWith wires explicit dependencies.
func NewRSVPServiceWith(guests repositories.IGuestRepository, events repositories.IEventRepository, guard TransitionGuard) IRSVPService {
	if guard == nil {
		guard = AllowAllTransitions{}
	}
	return &RSVPService{guests: guests, events: events, guard: guard}
}

// resolveGuest finds the addressed guest: by event+email when an email
// is supplied, falling back to the guest ID.
func (s *RSVPService) resolveGuest(ctx context.Context, eventID uint, guestID uint, email string) (*models.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && eventID != 0 {
		guest, err := s.guests.FindByEventAndEmail(ctx, eventID, email)
		if err == nil {
			return guest, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		// fall through to the ID lookup
	}
	if guestID == 0 {
		return nil, ErrRSVPGuestNotFound
	}
	guest, err := s.guests.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPGuestNotFound
		}
		return nil, err
	}
	if eventID != 0 && guest.EventID != eventID {
		return nil, ErrRSVPGuestNotFound
	}
	return guest, nil
}

func (s *RSVPService) eventSummary(ctx context.Context, eventID uint) (models.EventSummary, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.EventSummary{}, ErrRSVPGuestNotFound
		}
		return models.EventSummary{}, err
	}
	return event.Summarize(), nil
}

// SubmitRSVP sets the guest's status to the supplied value. The raw
// status is parsed against the closed set; beyond that no transition
// table is enforced (see TransitionGuard).
func (s *RSVPService) SubmitRSVP(ctx context.Context, req RSVPRequest) (*RSVPResult, error) {
	status, err := models.ParseRSVPStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRSVPInvalidStatus, err)
	}

	guest, err := s.resolveGuest(ctx, req.EventID, req.GuestID, req.Email)
	if err != nil {
		return nil, err
	}
	if !s.guard.Allow(guest.Status, status) {
		return nil, ErrRSVPTransitionDenied
	}

	if err := s.guests.UpdateStatus(ctx, guest.ID, status, req.Response); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPGuestNotFound
		}
		configslog.Log.Error("RSVPService.SubmitRSVP: update failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, err
	}

	guest.Status = status
	if req.Response != nil {
		guest.Response = *req.Response
	}
	summary, err := s.eventSummary(ctx, guest.EventID)
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("RSVP recorded: guest %d -> %s (event %d)", guest.ID, status, guest.EventID)
	return &RSVPResult{Guest: *guest, Event: summary}, nil
}

// LookupGuest resolves a guest for the public RSVP page.
func (s *RSVPService) LookupGuest(ctx context.Context, eventID uint, guestID uint, email string) (*RSVPResult, error) {
	guest, err := s.resolveGuest(ctx, eventID, guestID, email)
	if err != nil {
		return nil, err
	}
	summary, err := s.eventSummary(ctx, guest.EventID)
	if err != nil {
		return nil, err
	}
	return &RSVPResult{Guest: *guest, Event: summary}, nil
}

// CollectEmail records a phone-only guest's email before their RSVP is
// taken. An email already on file is never overwritten, and a blank
// submission changes nothing.
func (s *RSVPService) CollectEmail(ctx context.Context, guestID uint, email string) (*models.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrRSVPInvalidInput)
	}
	guest, err := s.guests.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPGuestNotFound
		}
		return nil, err
	}
	if guest.Email != "" {
		return nil, ErrRSVPEmailAlreadySet
	}

	guest.Email = email
	if err := s.guests.Save(ctx, guest); err != nil {
		configslog.Log.Error("RSVPService.CollectEmail: save failed", zap.Uint("guestID", guestID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Email collected for guest %d", guestID)
	return guest, nil
}

var _ IRSVPService = (*RSVPService)(nil)
