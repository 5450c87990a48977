package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DispatchSelection identifies the guests a send targets: either an
// explicit ID list, or the status rule implied by the dispatch type.
// A non-empty GuestIDs list always wins over Type.
type DispatchSelection struct {
	GuestIDs []uint
	Type     models.DispatchType
}

// IGuestRepository is the guest record store boundary.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	CreateBatch(ctx context.Context, guests []*models.Guest) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindByEventAndEmail(ctx context.Context, eventID uint, email string) (*models.Guest, error)
	FindAllByEventPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.Guest, int64, error)
	FindForDispatch(ctx context.Context, eventID uint, sel DispatchSelection) ([]models.Guest, error)
	UpdateAfterSend(ctx context.Context, guestID uint, sentAt time.Time) error
	UpdateStatus(ctx context.Context, guestID uint, status models.GuestStatus, response *string) error
	Save(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, id uint, deletedByUserID uint) error
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
}

type GuestRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Guest]
}

func NewGuestRepository(db *gorm.DB) IGuestRepository {
	base := NewBaseRepository[models.Guest](db)
	base.SetAllowedSortColumns(map[string]string{
		"id":         "id",
		"created_at": "created_at",
		"name":       "name",
		"status":     "status",
		"invited_at": "invited_at",
	})
	return &GuestRepository{db: db, base: base}
}

func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	if guest == nil || guest.EventID == 0 {
		return errors.New("guest without an event cannot be persisted")
	}
	return r.base.Create(ctx, guest)
}

func (r *GuestRepository) CreateBatch(ctx context.Context, guests []*models.Guest) error {
	if len(guests) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).Create(guests).Error
}

func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	return r.base.FindByID(ctx, id)
}

func (r *GuestRepository) FindByEventAndEmail(ctx context.Context, eventID uint, email string) (*models.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if eventID == 0 || email == "" {
		return nil, ErrNotFound
	}
	var guest models.Guest
	err := dbFromContext(ctx, r.db).
		Where("event_id = ? AND LOWER(email) = ?", eventID, email).
		First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GuestRepository.FindByEventAndEmail: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepository) FindAllByEventPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.Guest, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("invalid event ID")
	}
	var guests []models.Guest
	var totalCount int64

	query := dbFromContext(ctx, r.db).Model(&models.Guest{}).Where("event_id = ?", eventID)
	if params.Name != "" {
		query = query.Where("name ILIKE ?", "%"+params.Name+"%")
	}
	if params.Status != "" {
		query = query.Where("status = ?", strings.ToUpper(params.Status))
	}
	query = r.base.ApplySort(query, params, "created_at")

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("GuestRepository: count failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return guests, 0, nil
	}
	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&guests).Error
	if err != nil {
		configslog.Log.Error("GuestRepository: find failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, totalCount, err
	}
	return guests, totalCount, nil
}

// FindForDispatch resolves the guests a send targets. Status rules treat
// an empty status like PENDING, matching how unset rows behave. Order
// follows whatever the database returns; an empty result is not an error.
func (r *GuestRepository) FindForDispatch(ctx context.Context, eventID uint, sel DispatchSelection) ([]models.Guest, error) {
	if eventID == 0 {
		return nil, errors.New("invalid event ID")
	}
	query := dbFromContext(ctx, r.db).Where("event_id = ?", eventID)

	switch {
	case len(sel.GuestIDs) > 0:
		query = query.Where("id IN ?", sel.GuestIDs)
	case sel.Type == models.DispatchTypeInvitation:
		query = query.Where("status = ? OR status = '' OR status IS NULL", models.GuestStatusPending)
	case sel.Type == models.DispatchTypeReminder:
		query = query.Where("status IN ? OR status = '' OR status IS NULL",
			[]models.GuestStatus{models.GuestStatusPending, models.GuestStatusInvited})
	default:
		return nil, errors.New("dispatch selection has neither guest IDs nor a valid type")
	}

	var guests []models.Guest
	if err := query.Find(&guests).Error; err != nil {
		configslog.Log.Error("GuestRepository.FindForDispatch: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return guests, nil
}

// UpdateAfterSend applies the post-send policy in one statement: a guest
// still on PENDING (or with no status at all) becomes INVITED, everyone
// else only gets invited_at refreshed.
func (r *GuestRepository) UpdateAfterSend(ctx context.Context, guestID uint, sentAt time.Time) error {
	if guestID == 0 {
		return ErrNotFound
	}
	result := dbFromContext(ctx, r.db).Model(&models.Guest{}).
		Where("id = ?", guestID).
		Updates(map[string]interface{}{
			"status": gorm.Expr("CASE WHEN status IS NULL OR status = '' OR status = ? THEN ? ELSE status END",
				models.GuestStatusPending, models.GuestStatusInvited),
			"invited_at": sentAt,
		})
	if result.Error != nil {
		configslog.Log.Error("GuestRepository.UpdateAfterSend: DB error", zap.Uint("guestID", guestID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus overwrites the status field outright; there is no
// transition table at this layer. A nil response leaves the stored
// response untouched.
func (r *GuestRepository) UpdateStatus(ctx context.Context, guestID uint, status models.GuestStatus, response *string) error {
	if guestID == 0 {
		return ErrNotFound
	}
	updates := map[string]interface{}{"status": status}
	if response != nil {
		updates["response"] = *response
	}
	result := dbFromContext(ctx, r.db).Model(&models.Guest{}).Where("id = ?", guestID).Updates(updates)
	if result.Error != nil {
		configslog.Log.Error("GuestRepository.UpdateStatus: DB error", zap.Uint("guestID", guestID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) Save(ctx context.Context, guest *models.Guest) error {
	if guest == nil || guest.ID == 0 {
		return errors.New("guest to update is not persisted")
	}
	return r.base.Save(ctx, guest)
}

func (r *GuestRepository) Delete(ctx context.Context, id uint, deletedByUserID uint) error {
	return r.base.SoftDelete(ctx, id, deletedByUserID)
}

func (r *GuestRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.Guest{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

var _ IGuestRepository = (*GuestRepository)(nil)
