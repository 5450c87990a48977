package repositories

import (
	"context"
	"errors"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventRepository is the event persistence boundary.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint, deletedByUserID uint) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

type EventRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Event]
}

func NewEventRepository(db *gorm.DB) IEventRepository {
	base := NewBaseRepository[models.Event](db)
	base.SetAllowedSortColumns(map[string]string{
		"id":              "id",
		"created_at":      "created_at",
		"title":           "title",
		"start_date_time": "start_date_time",
		"is_enabled":      "is_enabled",
	})
	return &EventRepository{db: db, base: base}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.CreatorUserID == 0 {
		return errors.New("event without a creator cannot be persisted")
	}
	return r.base.Create(ctx, event)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return r.base.FindByID(ctx, id)
}

func (r *EventRepository) applyFilters(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	if params.Name != "" {
		query = query.Where("title ILIKE ?", "%"+params.Name+"%")
	}
	if params.Status != "" {
		query = query.Where("is_enabled = ?", params.Status == "true")
	}
	return r.base.ApplySort(query, params, "created_at")
}

func (r *EventRepository) findPaginated(ctx context.Context, scope func(*gorm.DB) *gorm.DB, params queryparams.ListParams) ([]models.Event, int64, error) {
	var events []models.Event
	var totalCount int64

	query := r.applyFilters(scope(dbFromContext(ctx, r.db).Model(&models.Event{})), params)
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository: count failed", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository: find failed", zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

func (r *EventRepository) FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("invalid user ID")
	}
	return r.findPaginated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("creator_user_id = ?", userID)
	}, params)
}

func (r *EventRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error) {
	return r.findPaginated(ctx, func(q *gorm.DB) *gorm.DB { return q }, params)
}

func (r *EventRepository) Save(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("event to update is not persisted")
	}
	return r.base.Save(ctx, event)
}

func (r *EventRepository) Delete(ctx context.Context, id uint, deletedByUserID uint) error {
	return r.base.SoftDelete(ctx, id, deletedByUserID)
}

func (r *EventRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.Event{}).Where("creator_user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ IEventRepository = (*EventRepository)(nil)
