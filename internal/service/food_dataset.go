package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/glycemic-assist/backend/internal/models"
)

var (
	// ErrFoodNotFound is returned when no dataset row has the requested identifier
	ErrFoodNotFound = errors.New("food not found")
	// ErrIncompleteRecord is returned when a row lacks one of the required nutrient values
	ErrIncompleteRecord = errors.New("food record is incomplete")
)

// FoodRecord is a dataset row keyed by its column labels (models.Field*).
// Values are loosely typed and must be coerced before use.
type FoodRecord map[string]any

// FoodDatasetService reads the reference food-nutrition table
type FoodDatasetService struct {
	db *gorm.DB
}

// NewFoodDatasetService creates a new FoodDatasetService instance
func NewFoodDatasetService(db *gorm.DB) *FoodDatasetService {
	return &FoodDatasetService{db: db}
}

// ListAll scans the whole dataset and builds a fresh FoodIndex
func (s *FoodDatasetService) ListAll(ctx context.Context) (*FoodIndex, error) {
	var rows []struct {
		ID       string
		FoodName string
	}
	if err := s.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Select("id", "food_name").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list food dataset: %w", err)
	}

	entries := make(map[string]string, len(rows))
	for _, r := range rows {
		entries[r.ID] = r.FoodName
	}
	return NewFoodIndex(entries), nil
}

// GetByID fetches one row. It returns ErrFoodNotFound for an unknown
// identifier and ErrIncompleteRecord when a required value is missing or empty.
func (s *FoodDatasetService) GetByID(ctx context.Context, id string) (FoodRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrFoodNotFound, id)
	}

	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFoodNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch food %s: %w", id, err)
	}

	if !item.IsComplete() {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteRecord, id)
	}

	record := make(FoodRecord, 4)
	for k, v := range item.Fields() {
		record[k] = v
	}
	record[models.FieldFoodName] = item.FoodName
	return record, nil
}
