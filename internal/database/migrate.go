package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pageza/glycemic-assist/backend/internal/models"
)

// RunMigrations creates or updates the reference dataset schema. Both
// PostgreSQL and SQLite support the expression index used for name lookups.
func RunMigrations(db *gorm.DB) error {
	log.Info().Str("dialect", db.Dialector.Name()).Msg("running migrations")

	if err := db.AutoMigrate(&models.FoodItem{}); err != nil {
		return fmt.Errorf("failed to migrate food dataset: %w", err)
	}

	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_food_name_lower ON diabetes_food_dataset (LOWER(food_name))",
	).Error; err != nil {
		return fmt.Errorf("failed to create food name index: %w", err)
	}

	return nil
}
