package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// contextUserIDKey audit kolonları için işlemi yapan kullanıcıyı taşır.
const contextUserIDKey contextKey = "user_id"

// ContextWithUserID işlemi yapan kullanıcının ID'sini context'e ekler.
// Repository katmanına giden her yazma işleminde servisler bunu kullanır.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(contextUserIDKey).(uint)
	return id, ok
}

// BaseModel tüm tablolara gömülen ortak alanlar.
// Soft delete ve audit (kim oluşturdu/güncelledi/sildi) kolonlarını içerir.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate context'teki kullanıcıyı CreatedBy alanına yazar.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok && userID != 0 {
		m.CreatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'teki kullanıcıyı UpdatedBy alanına yazar.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok && userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
