package database

import (
	"gather.link/configs"
	"gather.link/configs/configslog"
	"gather.link/database/migrations"
	"gather.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and/or seeders inside one transaction.
func Initialize(db *gorm.DB, cfg *configs.Config, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither -migrate nor -seed given; nothing to do.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Running migrations...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration failed", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrations finished.")
		}

		if seed {
			configslog.SLog.Info("Running seeders...")
			if err := seeders.SeedSystemUser(tx, cfg); err != nil {
				configslog.Log.Error("Seeding failed", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeders finished.")
		}
		return nil
	})
}

// RunMigrationsInOrder migrates tables respecting FK dependencies:
// users before events, events before guests.
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateUsersTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateEventsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateGuestsTable(db); err != nil {
		return err
	}
	return nil
}
