package repositories

import (
	"context"
	"errors"
	"time"

	"gather.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound is the repository-level miss; services translate it into
// their own not-found errors.
var ErrNotFound = errors.New("record not found")

// ctxTxKey is the context key under which a running transaction handle
// is propagated to repositories.
type ctxTxKey struct{}

// ContextWithTx returns a context carrying an open transaction. Every
// repository call made with that context joins the transaction.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxTxKey{}, tx)
}

func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxTxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

// IBaseRepository covers the CRUD shared by every model.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	SoftDelete(ctx context.Context, id uint, deletedByUserID uint) error
	Count(ctx context.Context) (int64, error)
}

// BaseRepository is the generic implementation embedded by the concrete
// repositories.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]string
}

// NewBaseRepository wires a base repository to a connection pool (or an
// open transaction).
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]string{}}
}

// SetAllowedSortColumns whitelists query-string sort keys, mapping each
// to the real column expression.
func (r *BaseRepository[T]) SetAllowedSortColumns(cols map[string]string) {
	r.allowedSortColumns = cols
}

// ApplySort orders the query by a whitelisted column, falling back to
// the given default expression for unknown keys.
func (r *BaseRepository[T]) ApplySort(query *gorm.DB, params queryparams.ListParams, defaultColumn string) *gorm.DB {
	column := defaultColumn
	if c, ok := r.allowedSortColumns[params.SortBy]; ok {
		column = c
	}
	return query.Order(column + " " + params.OrderBy)
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.getDB(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.getDB(ctx).Save(entity).Error
}

// SoftDelete stamps deleted_at/deleted_by instead of removing the row.
func (r *BaseRepository[T]) SoftDelete(ctx context.Context, id uint, deletedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	var entity T
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(&entity).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	err := r.getDB(ctx).Model(&entity).Count(&count).Error
	return count, err
}
