package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateEventInvitationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating event_invitations table...")
	err := db.AutoMigrate(&models.EventInvitation{})
	if err != nil {
		configslog.Log.Error("Failed to migrate event_invitations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Event_invitations table migrated successfully")
	return nil
}
