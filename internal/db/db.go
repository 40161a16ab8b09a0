package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-reservations/internal/config"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Court{},
		&models.Slot{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Holder fields are only meaningful while a slot is held.
	if err := db.Exec(`
        UPDATE slots
        SET held_by = NULL, held_until = NULL
        WHERE status <> 'held' AND (held_by IS NOT NULL OR held_until IS NOT NULL)
    `).Error; err != nil {
		log.Println("[db] hold cleanup:", err)
	}

	return db, nil
}
