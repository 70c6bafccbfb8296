package repositories

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IInvitationRepository davet veritabanı işlemleri için arayüz.
type IInvitationRepository interface {
	Create(ctx context.Context, invitation *models.EventInvitation) error
	FindByID(ctx context.Context, id uint) (*models.EventInvitation, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.EventInvitation, error)
	FindAllByInviteeID(ctx context.Context, inviteeID uint) ([]models.EventInvitation, error)
	ExistsForEventAndInvitee(ctx context.Context, eventID, inviteeID uint) (bool, error)
	// UpdateStateIf daveti yalnızca beklenen kaynak durumdaysa hedef duruma
	// taşır. Kayıt başka bir durumdaysa false döner (stale geçiş), hata dönmez.
	UpdateStateIf(ctx context.Context, id uint, from, to models.InvitationState, respondedAt time.Time) (bool, error)
	CountByEventIDAndState(ctx context.Context, eventID uint, state models.InvitationState) (int64, error)
}

// InvitationRepository IInvitationRepository arayüzünü uygular.
type InvitationRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.EventInvitation]
}

// NewInvitationRepository yeni bir InvitationRepository örneği oluşturur.
func NewInvitationRepository() IInvitationRepository {
	return NewInvitationRepositoryTx(configsdatabase.GetDB())
}

// NewInvitationRepositoryTx verilen DB/transaction ile çalışan repository döndürür.
func NewInvitationRepositoryTx(db *gorm.DB) IInvitationRepository {
	base := NewBaseRepository[models.EventInvitation](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "state", "invited_at", "responded_at"})
	return &InvitationRepository{db: db, base: base}
}

func (r *InvitationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni davet kaydı ekler. (event_id, invitee_id) çifti unique'tir.
func (r *InvitationRepository) Create(ctx context.Context, invitation *models.EventInvitation) error {
	if invitation == nil || invitation.EventID == 0 || invitation.InviteeID == 0 {
		return errors.New("geçersiz davet verisi (EventID veya InviteeID eksik)")
	}
	return r.base.Create(ctx, invitation)
}

// FindByID daveti ID ile bulur.
func (r *InvitationRepository) FindByID(ctx context.Context, id uint) (*models.EventInvitation, error) {
	if id == 0 {
		return nil, errors.New("geçersiz davet ID")
	}
	var invitation models.EventInvitation
	err := r.getDB(ctx).First(&invitation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

// FindAllByEventID etkinliğin tüm davetlerini davetli bilgisiyle döndürür.
func (r *InvitationRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.EventInvitation, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var invitations []models.EventInvitation
	err := r.getDB(ctx).Where("event_id = ?", eventID).
		Preload("Invitee").
		Order("invited_at asc").
		Find(&invitations).Error
	if err != nil {
		configslog.Log.Error("InvitationRepository.FindAllByEventID: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return invitations, nil
}

// FindAllByInviteeID kullanıcının tüm davetlerini etkinlik bilgisiyle döndürür.
func (r *InvitationRepository) FindAllByInviteeID(ctx context.Context, inviteeID uint) ([]models.EventInvitation, error) {
	if inviteeID == 0 {
		return nil, errors.New("geçersiz davetli ID")
	}
	var invitations []models.EventInvitation
	err := r.getDB(ctx).Where("invitee_id = ?", inviteeID).
		Preload("Event").
		Order("invited_at desc").
		Find(&invitations).Error
	if err != nil {
		configslog.Log.Error("InvitationRepository.FindAllByInviteeID: DB error", zap.Uint("inviteeID", inviteeID), zap.Error(err))
		return nil, err
	}
	return invitations, nil
}

// ExistsForEventAndInvitee bu etkinlik/davetli çifti için kayıt var mı?
func (r *InvitationRepository) ExistsForEventAndInvitee(ctx context.Context, eventID, inviteeID uint) (bool, error) {
	if eventID == 0 || inviteeID == 0 {
		return false, errors.New("geçersiz ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.EventInvitation{}).
		Where("event_id = ? AND invitee_id = ?", eventID, inviteeID).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("InvitationRepository.ExistsForEventAndInvitee: DB error",
			zap.Uint("eventID", eventID), zap.Uint("inviteeID", inviteeID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// UpdateStateIf optimistik durum kontrolüyle geçişi uygular.
// WHERE state = from koşulu sayesinde eşzamanlı iki geçişten yalnızca biri
// kayıt günceller; kaybeden taraf false alır.
func (r *InvitationRepository) UpdateStateIf(ctx context.Context, id uint, from, to models.InvitationState, respondedAt time.Time) (bool, error) {
	if id == 0 {
		return false, errors.New("geçersiz davet ID")
	}
	updates := map[string]interface{}{
		"state":        to,
		"responded_at": respondedAt,
		"updated_at":   time.Now().UTC(),
	}
	if userID, ok := models.UserIDFromContext(ctx); ok && userID != 0 {
		updates["updated_by"] = &userID
	}
	result := r.getDB(ctx).Model(&models.EventInvitation{}).
		Where("id = ? AND state = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		configslog.Log.Error("InvitationRepository.UpdateStateIf: DB error",
			zap.Uint("id", id), zap.String("from", string(from)), zap.String("to", string(to)), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByEventIDAndState etkinlikteki belirli durumdaki davet sayısı
// (kapasite kontrolü için Confirmed ile kullanılır).
func (r *InvitationRepository) CountByEventIDAndState(ctx context.Context, eventID uint, state models.InvitationState) (int64, error) {
	if eventID == 0 {
		return 0, errors.New("geçersiz etkinlik ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.EventInvitation{}).
		Where("event_id = ? AND state = ?", eventID, state).
		Count(&count).Error
	return count, err
}

var _ IInvitationRepository = (*InvitationRepository)(nil)
