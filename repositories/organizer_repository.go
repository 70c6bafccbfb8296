package repositories

import (
	"context"
	"errors"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IOrganizerRepository organizatör profili veritabanı işlemleri için arayüz.
type IOrganizerRepository interface {
	Create(ctx context.Context, profile *models.OrganizerProfile) error
	FindByID(ctx context.Context, id uint) (*models.OrganizerProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*models.OrganizerProfile, error)
	FindAll(ctx context.Context) ([]models.OrganizerProfile, error)
	Update(ctx context.Context, profile *models.OrganizerProfile) error
}

// OrganizerRepository IOrganizerRepository arayüzünü uygular.
type OrganizerRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.OrganizerProfile]
}

// NewOrganizerRepository yeni bir OrganizerRepository örneği oluşturur.
func NewOrganizerRepository() IOrganizerRepository {
	return NewOrganizerRepositoryTx(configsdatabase.GetDB())
}

// NewOrganizerRepositoryTx verilen DB/transaction ile çalışan repository döndürür.
func NewOrganizerRepositoryTx(db *gorm.DB) IOrganizerRepository {
	base := NewBaseRepository[models.OrganizerProfile](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "company_name", "rating"})
	return &OrganizerRepository{db: db, base: base}
}

func (r *OrganizerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni profil ekler. UserID unique'tir.
func (r *OrganizerRepository) Create(ctx context.Context, profile *models.OrganizerProfile) error {
	if profile == nil || profile.UserID == 0 {
		return errors.New("geçersiz profil verisi")
	}
	return r.base.Create(ctx, profile)
}

// FindByID profili ID ile bulur.
func (r *OrganizerRepository) FindByID(ctx context.Context, id uint) (*models.OrganizerProfile, error) {
	return r.base.FindByID(ctx, id)
}

// FindByUserID profili sahibinin kullanıcı ID'siyle bulur.
func (r *OrganizerRepository) FindByUserID(ctx context.Context, userID uint) (*models.OrganizerProfile, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var profile models.OrganizerProfile
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("OrganizerRepository.FindByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

// FindAll tüm profilleri döndürür (landing sayfası listesi).
func (r *OrganizerRepository) FindAll(ctx context.Context) ([]models.OrganizerProfile, error) {
	var profiles []models.OrganizerProfile
	err := r.getDB(ctx).Order("rating desc, created_at desc").Find(&profiles).Error
	if err != nil {
		configslog.Log.Error("OrganizerRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return profiles, nil
}

// Update profili günceller.
func (r *OrganizerRepository) Update(ctx context.Context, profile *models.OrganizerProfile) error {
	if profile == nil || profile.ID == 0 {
		return errors.New("güncellenecek profil geçerli değil")
	}
	return r.base.Update(ctx, profile)
}

var _ IOrganizerRepository = (*OrganizerRepository)(nil)
