package utils

import (
	"fmt"

	"pylearn/backend/config"
	"pylearn/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection. TranslateError is enabled so that
// unique-constraint violations surface as gorm.ErrDuplicatedKey and can be
// mapped to the duplicate-email/username errors instead of leaking a generic
// database failure.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Progress{},
		&models.DailyStreak{},
	)
}
