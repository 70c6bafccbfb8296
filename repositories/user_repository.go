package repositories

import (
	"context"
	"errors"
	"strings"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configsdatabase.GetDB())
}

// NewUserRepositoryTx verilen DB/transaction ile çalışan repository döndürür.
func NewUserRepositoryTx(db *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email"})
	return &UserRepository{db: db, base: base}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni kullanıcı ekler.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return errors.New("geçersiz kullanıcı verisi")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.base.Create(ctx, user)
}

// FindByID kullanıcıyı ID ile bulur.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

// FindByEmail kullanıcıyı e-posta ile bulur (küçük harfe normalize edilir).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("geçersiz e-posta")
	}
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Update kullanıcıyı günceller.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("güncellenecek kullanıcı geçerli değil")
	}
	return r.base.Update(ctx, user)
}

var _ IUserRepository = (*UserRepository)(nil)
