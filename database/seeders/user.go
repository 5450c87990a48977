package seeders

import (
	"errors"

	"gather.link/configs"
	"gather.link/configs/configslog"
	"gather.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser ensures the administrator account exists. Credentials
// come from the environment; an existing account is left untouched.
func SeedSystemUser(db *gorm.DB, cfg *configs.Config) error {
	var existing models.User
	err := db.Where("email = ?", cfg.SystemUserEmail).First(&existing).Error
	if err == nil {
		configslog.SLog.Infof("System user already present: %s", cfg.SystemUserEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SystemUserPassword), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("System user password hashing failed", zap.Error(err))
		return err
	}
	user := models.User{
		Name:         "System",
		Email:        cfg.SystemUserEmail,
		PasswordHash: string(hash),
		IsSystem:     true,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("System user creation failed", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("System user created: %s (ID %d)", user.Email, user.ID)
	return nil
}
