package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/glycemic-assist/backend/internal/types"
)

// MealService runs the whole meal pipeline for one request: one dataset scan,
// the glycemic index aggregation, then the tips call. Calls are sequential.
type MealService struct {
	dataset    FoodDataset
	calculator *GlycemicCalculator
	tips       *TipGenerator
}

// NewMealService wires the resolver, estimator and tip generator around dataset and llm.
// llm may be nil, in which case every estimate and tip falls back.
func NewMealService(dataset FoodDataset, llm TextCompleter) *MealService {
	resolver := NewResolver(dataset, NewNutritionEstimator(llm))
	return &MealService{
		dataset:    dataset,
		calculator: NewGlycemicCalculator(resolver),
		tips:       NewTipGenerator(llm),
	}
}

// ProcessMeal fails only when the dataset cannot be scanned
func (s *MealService) ProcessMeal(ctx context.Context, ingredients []types.IngredientInput) (*types.ProcessMealResponse, error) {
	index, err := s.dataset.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build food index: %w", err)
	}
	log.Ctx(ctx).Debug().Int("foods", index.Len()).Int("ingredients", len(ingredients)).Msg("food index built")

	meal := s.calculator.ComputeMealGI(ctx, ingredients, index)
	tips := s.tips.GenerateTips(ctx, ingredients)

	log.Ctx(ctx).Info().
		Float64("glycemic_index", meal.GlycemicIndex).
		Int("skipped", meal.Skipped).
		Bool("used_fallback", meal.UsedFallback).
		Bool("tips_fallback", tips.UsedFallback).
		Msg("meal processed")

	details := &types.MealDetails{
		GlycemicLoad:        meal.GlycemicLoad,
		TotalAvailableCarbs: meal.TotalAvailableCarbs,
		Skipped:             meal.Skipped,
		UsedFallback:        meal.UsedFallback,
		Unresolvable:        meal.Unresolvable,
		TipsFallback:        tips.UsedFallback,
		Ingredients:         make([]types.IngredientDetail, 0, len(meal.Ingredients)),
	}
	for _, in := range meal.Ingredients {
		details.Ingredients = append(details.Ingredients, types.IngredientDetail{
			Name:           in.Name,
			Weight:         in.Weight,
			Carbohydrates:  in.Record.Carbohydrates,
			FiberContent:   in.Record.FiberContent,
			GlycemicIndex:  in.Record.GlycemicIndex,
			AvailableCarbs: round2(in.AvailableCarbs),
			Source:         string(in.Source),
		})
	}

	return &types.ProcessMealResponse{
		GlycemicIndex:   meal.GlycemicIndex,
		Recommendations: tips.Tips,
		Details:         details,
	}, nil
}
