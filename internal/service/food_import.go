package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/pageza/glycemic-assist/backend/internal/models"
)

// ImportResult counts what ImportFoods did with each entry
type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

// ImportFoods reads a JSON array of dataset entries keyed by the dataset
// column labels and upserts them by case-insensitive food name. Entries
// without a name are skipped. Nutrient values are stored as text; numbers
// are written in their shortest form.
func ImportFoods(ctx context.Context, db *gorm.DB, r io.Reader) (ImportResult, error) {
	var result ImportResult

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var entries []map[string]any
	if err := dec.Decode(&entries); err != nil {
		return result, fmt.Errorf("failed to decode food dataset: %w", err)
	}

	title := cases.Title(language.English)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, entry := range entries {
			name := strings.TrimSpace(textValue(entry[models.FieldFoodName]))
			if name == "" {
				log.Ctx(ctx).Warn().Int("entry", i).Msg("skipping food without a name")
				result.Skipped++
				continue
			}
			name = title.String(name)

			var item models.FoodItem
			err := tx.Where("LOWER(food_name) = LOWER(?)", name).Order("id").First(&item).Error
			created := errors.Is(err, gorm.ErrRecordNotFound)
			if err != nil && !created {
				return fmt.Errorf("failed to look up food %q: %w", name, err)
			}

			item.FoodName = name
			item.Carbohydrates = textValue(entry[models.FieldCarbohydrates])
			item.FiberContent = textValue(entry[models.FieldFiberContent])
			item.GlycemicIndex = textValue(entry[models.FieldGlycemicIndex])

			if created {
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("failed to create food %q: %w", name, err)
				}
				result.Created++
				continue
			}
			if err := tx.Save(&item).Error; err != nil {
				return fmt.Errorf("failed to update food %q: %w", name, err)
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	log.Ctx(ctx).Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("food dataset imported")
	return result, nil
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
