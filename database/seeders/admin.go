package seeders

import (
	"errors"
	"strings"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser konfigürasyondaki yönetici hesabını oluşturur.
// Hesap zaten varsa veya konfigürasyon boşsa işlem atlanır.
func SeedAdminUser(db *gorm.DB) error {
	cfg := configs.Get()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		configslog.SLog.Info("Yönetici e-posta/şifre konfigürasyonu boş, yönetici seed işlemi atlanıyor.")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Yönetici hesabı '%s' zaten mevcut, oluşturma atlanıyor.", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Yönetici hesabı kontrol edilirken veritabanı hatası",
			zap.String("email", email),
			zap.Error(result.Error),
		)
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Yönetici şifresi hash'lenemedi", zap.Error(err))
		return err
	}

	admin := models.User{
		Name:         "Yönetici",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	configslog.SLog.Infof("Yönetici hesabı '%s' oluşturuluyor...", email)
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Yönetici hesabı oluşturulamadı",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}

	configslog.SLog.Infof("Yönetici hesabı başarıyla oluşturuldu (ID: %d).", admin.ID)
	return nil
}
