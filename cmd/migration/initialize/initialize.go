package initialize

import (
	"mealvote/config"
	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeStaffAccount(db, config, log); err != nil {
		return log.Err("failed to initialize staff account", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeStaffAccount creates the bootstrap staff user so a fresh install
// has someone who can submit polls. Skipped when not configured or when the
// account already exists.
func initializeStaffAccount(db *gorm.DB, config config.Config, log logger.Logger) error {
	if config.BootstrapStaffEmail == "" || config.BootstrapStaffPassword == "" {
		log.Info("No bootstrap staff account configured, skipping")
		return nil
	}

	var existing User
	if err := db.First(&existing, "email = ?", config.BootstrapStaffEmail).Error; err == nil {
		log.Debug("Bootstrap staff account already exists", "email", config.BootstrapStaffEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(config.BootstrapStaffPassword),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return log.Err("failed to hash bootstrap password", err)
	}

	hashStr := string(hash)
	user := User{
		Name:         "Canteen Staff",
		Email:        config.BootstrapStaffEmail,
		PasswordHash: &hashStr,
		Provider:     ProviderLocal,
		Role:         RoleStaff,
	}

	log.Info("Creating bootstrap staff account", "email", config.BootstrapStaffEmail)
	if err := db.Create(&user).Error; err != nil {
		return log.Err("failed to create bootstrap staff account", err)
	}

	return nil
}
