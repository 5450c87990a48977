package services

import (
	"context"
	"errors"
	"fmt"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/pkg/queryparams"
	"gather.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventServiceError is a typed service-level error.
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound      EventServiceError = "event not found"
	ErrEventForbidden     EventServiceError = "not allowed to manage this event"
	ErrEventInvalidInput  EventServiceError = "invalid event data"
	ErrEventTitleRequired EventServiceError = "event title is required"
	ErrEventTimeRequired  EventServiceError = "event start time is required"
)

// IEventService manages event lifecycle on behalf of hosts and admins.
type IEventService interface {
	CreateEvent(ctx context.Context, creatorUserID uint, event models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint, requestingUserID uint) (*models.Event, error)
	GetPublicEventByID(ctx context.Context, id uint) (*models.Event, error)
	GetEventsForUser(ctx context.Context, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateEvent(ctx context.Context, id uint, updatingUserID uint, updates models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint, deletingUserID uint) error
}

type EventService struct {
	repo        repositories.IEventRepository
	userService IUserService
}

func NewEventService(db *gorm.DB) IEventService {
	return &EventService{
		repo:        repositories.NewEventRepository(db),
		userService: NewUserService(db),
	}
}

// NewEventServiceWith wires explicit dependencies.
func NewEventServiceWith(repo repositories.IEventRepository, userService IUserService) IEventService {
	return &EventService{repo: repo, userService: userService}
}

// ValidateEvent checks required fields before anything is persisted.
func ValidateEvent(event models.Event) error {
	if event.Title == "" {
		return ErrEventTitleRequired
	}
	if event.StartDateTime.IsZero() {
		return ErrEventTimeRequired
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, creatorUserID uint, event models.Event) (*models.Event, error) {
	if err := ValidateEvent(event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEventInvalidInput, err)
	}
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: missing creator", ErrEventInvalidInput)
	}
	if event.Timezone == "" {
		event.Timezone = "UTC"
	}
	event.CreatorUserID = creatorUserID
	event.IsEnabled = true

	ctx = models.ContextWithUserID(ctx, creatorUserID)
	if err := s.repo.Create(ctx, &event); err != nil {
		configslog.Log.Error("EventService.CreateEvent failed", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Event created: ID %d, title %q (creator %d)", event.ID, event.Title, creatorUserID)
	return &event, nil
}

// authorize loads the event and checks the requesting user may manage it.
func (s *EventService) authorize(ctx context.Context, eventID, requestingUserID uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	user, err := s.userService.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, ErrEventForbidden
	}
	if !user.IsSystem && event.CreatorUserID != requestingUserID {
		return nil, ErrEventForbidden
	}
	return event, nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uint, requestingUserID uint) (*models.Event, error) {
	return s.authorize(ctx, id, requestingUserID)
}

// GetPublicEventByID resolves an event for guest-facing pages. Disabled
// events are indistinguishable from missing ones on purpose.
func (s *EventService) GetPublicEventByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.IsEnabled {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) GetEventsForUser(ctx context.Context, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	user, err := s.userService.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	params.Validate()

	var events []models.Event
	var totalCount int64
	if user.IsSystem {
		events, totalCount, err = s.repo.FindAllPaginated(ctx, params)
	} else {
		events, totalCount, err = s.repo.FindAllByUserPaginated(ctx, requestingUserID, params)
	}
	if err != nil {
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint, updatingUserID uint, updates models.Event) (*models.Event, error) {
	if err := ValidateEvent(updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEventInvalidInput, err)
	}
	event, err := s.authorize(ctx, id, updatingUserID)
	if err != nil {
		return nil, err
	}

	event.Title = updates.Title
	event.Description = updates.Description
	event.StartDateTime = updates.StartDateTime
	if updates.Timezone != "" {
		event.Timezone = updates.Timezone
	}
	event.LocationAddress = updates.LocationAddress
	event.LocationUnit = updates.LocationUnit
	if updates.ImageKey != "" {
		event.ImageKey = updates.ImageKey
	}
	event.IsEnabled = updates.IsEnabled

	ctx = models.ContextWithUserID(ctx, updatingUserID)
	if err := s.repo.Save(ctx, event); err != nil {
		configslog.Log.Error("EventService.UpdateEvent failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Event updated: ID %d (by %d)", id, updatingUserID)
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint, deletingUserID uint) error {
	if _, err := s.authorize(ctx, id, deletingUserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, deletingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		configslog.Log.Error("EventService.DeleteEvent failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Event deleted: ID %d (by %d)", id, deletingUserID)
	return nil
}

var _ IEventService = (*EventService)(nil)
