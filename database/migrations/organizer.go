package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateOrganizerProfilesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating organizer_profiles table...")
	err := db.AutoMigrate(&models.OrganizerProfile{})
	if err != nil {
		configslog.Log.Error("Failed to migrate organizer_profiles table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Organizer_profiles table migrated successfully")
	return nil
}
