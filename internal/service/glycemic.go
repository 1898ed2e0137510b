package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pageza/glycemic-assist/backend/internal/types"
)

// IngredientBreakdown is the contribution of one processed ingredient
type IngredientBreakdown struct {
	Name           string
	Weight         float64
	Record         NutritionRecord
	Source         RecordSource
	AvailableCarbs float64
}

// MealResult is the outcome of ComputeMealGI.
//
// GlycemicIndex is the available-carbohydrate weighted mean of the ingredient
// indexes, rounded to two decimals, and 0 when the meal has no available
// carbohydrates. Unresolvable is set when not a single ingredient could be
// processed, which separates "nothing usable" from a genuine zero.
type MealResult struct {
	GlycemicIndex       float64
	GlycemicLoad        float64
	TotalAvailableCarbs float64
	Ingredients         []IngredientBreakdown
	Skipped             int
	UsedFallback        bool
	Unresolvable        bool
}

// GlycemicCalculator aggregates ingredient records into a meal glycemic index
type GlycemicCalculator struct {
	resolver RecordResolver
}

// NewGlycemicCalculator creates a new GlycemicCalculator instance
func NewGlycemicCalculator(resolver RecordResolver) *GlycemicCalculator {
	return &GlycemicCalculator{resolver: resolver}
}

// ComputeMealGI processes ingredients in order. Ingredients without a name,
// with a weight that is not a number, or with non-finite nutrient values are
// skipped; nothing is ever returned as an error.
func (c *GlycemicCalculator) ComputeMealGI(ctx context.Context, ingredients []types.IngredientInput, index *FoodIndex) MealResult {
	var (
		result     MealResult
		weightedGI float64
		totalCarbs float64
	)

	for _, ingredient := range ingredients {
		if strings.TrimSpace(ingredient.Name) == "" {
			result.Skipped++
			continue
		}
		weight, err := ingredient.Weight.Float()
		if err != nil {
			log.Ctx(ctx).Debug().Str("food", ingredient.Name).Str("weight", ingredient.Weight.String()).Msg("skipping ingredient with invalid weight")
			result.Skipped++
			continue
		}

		resolved := c.resolver.Resolve(ctx, ingredient.Name, index)
		rec := resolved.Record
		if !isFinite(rec.Carbohydrates) || !isFinite(rec.FiberContent) || !isFinite(rec.GlycemicIndex) {
			result.Skipped++
			continue
		}

		available := math.Max(0, (rec.Carbohydrates-rec.FiberContent)*weight/100)
		weightedGI += rec.GlycemicIndex * available
		totalCarbs += available

		if resolved.Source == SourceFallback {
			result.UsedFallback = true
		}
		result.Ingredients = append(result.Ingredients, IngredientBreakdown{
			Name:           ingredient.Name,
			Weight:         weight,
			Record:         rec,
			Source:         resolved.Source,
			AvailableCarbs: available,
		})
	}

	result.Unresolvable = len(ingredients) > 0 && len(result.Ingredients) == 0
	result.TotalAvailableCarbs = round2(totalCarbs)
	result.GlycemicLoad = round2(weightedGI / 100)
	if totalCarbs != 0 {
		result.GlycemicIndex = round2(weightedGI / totalCarbs)
	}
	return result
}

// MealGI returns only the meal glycemic index
func (c *GlycemicCalculator) MealGI(ctx context.Context, ingredients []types.IngredientInput, index *FoodIndex) float64 {
	return c.ComputeMealGI(ctx, ingredients, index).GlycemicIndex
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
