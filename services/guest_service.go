package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/pkg/queryparams"
	"gather.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GuestServiceError is a typed service-level error.
type GuestServiceError string

func (e GuestServiceError) Error() string { return string(e) }

const (
	ErrGuestNotFound        GuestServiceError = "guest not found"
	ErrGuestInvalidInput    GuestServiceError = "invalid guest data"
	ErrGuestNameRequired    GuestServiceError = "guest name is required"
	ErrGuestContactRequired GuestServiceError = "guest needs an email or a phone number"
	ErrGuestInvalidStatus   GuestServiceError = "invalid guest status"
)

// IGuestService manages guest lists on behalf of hosts.
type IGuestService interface {
	AddGuests(ctx context.Context, eventID uint, actingUserID uint, guests []models.Guest) ([]models.Guest, error)
	GetGuestByID(ctx context.Context, id uint, actingUserID uint) (*models.Guest, error)
	GetGuestsForEvent(ctx context.Context, eventID uint, actingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateGuest(ctx context.Context, id uint, actingUserID uint, updates GuestUpdate) (*models.Guest, error)
	DeleteGuest(ctx context.Context, id uint, actingUserID uint) error
}

// GuestUpdate carries the host-editable guest fields. Nil pointers mean
// "no change". An empty-string email collapses to "no change" as well:
// an existing address is never cleared through this path.
type GuestUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Status   *string
	Response *string
}

type GuestService struct {
	repo         repositories.IGuestRepository
	eventService IEventService
}

func NewGuestService(db *gorm.DB) IGuestService {
	return &GuestService{
		repo:         repositories.NewGuestRepository(db),
		eventService: NewEventService(db),
	}
}

// NewGuestServiceWith wires explicit dependencies.
func NewGuestServiceWith(repo repositories.IGuestRepository, eventService IEventService) IGuestService {
	return &GuestService{repo: repo, eventService: eventService}
}

// ValidateNewGuest checks the fields required at creation time: a name,
// and at least one contact channel.
func ValidateNewGuest(guest models.Guest) error {
	if strings.TrimSpace(guest.Name) == "" {
		return ErrGuestNameRequired
	}
	if strings.TrimSpace(guest.Email) == "" && strings.TrimSpace(guest.Phone) == "" {
		return ErrGuestContactRequired
	}
	return nil
}

// AddGuests creates one or more guests under an event the acting user
// manages. The batch is validated up front and written atomically:
// creation is fail-fast, unlike dispatch.
func (s *GuestService) AddGuests(ctx context.Context, eventID uint, actingUserID uint, guests []models.Guest) ([]models.Guest, error) {
	if len(guests) == 0 {
		return nil, fmt.Errorf("%w: empty guest list", ErrGuestInvalidInput)
	}
	if _, err := s.eventService.GetEventByID(ctx, eventID, actingUserID); err != nil {
		return nil, err
	}

	records := make([]*models.Guest, 0, len(guests))
	for i := range guests {
		g := guests[i]
		if err := ValidateNewGuest(g); err != nil {
			return nil, fmt.Errorf("%w: guest %d: %v", ErrGuestInvalidInput, i+1, err)
		}
		g.EventID = eventID
		g.Email = strings.ToLower(strings.TrimSpace(g.Email))
		if g.Status == "" {
			g.Status = models.GuestStatusPending
		} else if _, err := models.ParseGuestStatus(string(g.Status)); err != nil {
			return nil, fmt.Errorf("%w: guest %d: %v", ErrGuestInvalidStatus, i+1, err)
		}
		records = append(records, &g)
	}

	ctx = models.ContextWithUserID(ctx, actingUserID)
	if err := s.repo.CreateBatch(ctx, records); err != nil {
		configslog.Log.Error("GuestService.AddGuests failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}

	created := make([]models.Guest, len(records))
	for i, g := range records {
		created[i] = *g
	}
	configslog.SLog.Infof("Added %d guest(s) to event %d (by %d)", len(created), eventID, actingUserID)
	return created, nil
}

func (s *GuestService) loadAuthorized(ctx context.Context, id uint, actingUserID uint) (*models.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if _, err := s.eventService.GetEventByID(ctx, guest.EventID, actingUserID); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) GetGuestByID(ctx context.Context, id uint, actingUserID uint) (*models.Guest, error) {
	return s.loadAuthorized(ctx, id, actingUserID)
}

func (s *GuestService) GetGuestsForEvent(ctx context.Context, eventID uint, actingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.eventService.GetEventByID(ctx, eventID, actingUserID); err != nil {
		return nil, err
	}
	params.Validate()
	guests, totalCount, err := s.repo.FindAllByEventPaginated(ctx, eventID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: guests,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateGuest applies host edits. Status strings are parsed against the
// closed set; a blank email never clears a stored address.
func (s *GuestService) UpdateGuest(ctx context.Context, id uint, actingUserID uint, updates GuestUpdate) (*models.Guest, error) {
	guest, err := s.loadAuthorized(ctx, id, actingUserID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		if strings.TrimSpace(*updates.Name) == "" {
			return nil, fmt.Errorf("%w: %v", ErrGuestInvalidInput, ErrGuestNameRequired)
		}
		guest.Name = strings.TrimSpace(*updates.Name)
	}
	if updates.Email != nil {
		if email := strings.ToLower(strings.TrimSpace(*updates.Email)); email != "" {
			guest.Email = email
		}
	}
	if updates.Phone != nil {
		guest.Phone = strings.TrimSpace(*updates.Phone)
	}
	if updates.Status != nil {
		status, err := models.ParseGuestStatus(*updates.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGuestInvalidStatus, err)
		}
		guest.Status = status
	}
	if updates.Response != nil {
		guest.Response = *updates.Response
	}

	ctx = models.ContextWithUserID(ctx, actingUserID)
	if err := s.repo.Save(ctx, guest); err != nil {
		configslog.Log.Error("GuestService.UpdateGuest failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) DeleteGuest(ctx context.Context, id uint, actingUserID uint) error {
	if _, err := s.loadAuthorized(ctx, id, actingUserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, actingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		configslog.Log.Error("GuestService.DeleteGuest failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Guest deleted: ID %d (by %d)", id, actingUserID)
	return nil
}

var _ IGuestService = (*GuestService)(nil)
