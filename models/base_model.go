package models

import (
	"context"

	"gorm.io/gorm"
	"time"
)

type ctxKey string

// CtxUserIDKey carries the acting user's ID through request contexts so
// the audit hooks can stamp created_by/updated_by/deleted_by.
const CtxUserIDKey ctxKey = "ctx_user_id"

// ContextWithUserID attaches the acting user to a context for the hooks.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, CtxUserIDKey, userID)
}

// UserIDFromContext extracts the acting user, if any.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserIDKey).(uint)
	return id, ok
}

// BaseModel is embedded by every persistent model. It provides the
// primary key, timestamps, soft delete and audit columns.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate stamps CreatedBy from the request context.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.CreatedBy = &id
	}
	return nil
}

// BeforeUpdate stamps UpdatedBy from the request context.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.UpdatedBy = &id
	}
	return nil
}
