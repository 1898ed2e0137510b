package service

import (
	"context"

	"github.com/pageza/glycemic-assist/backend/internal/types"
)

// TextCompleter is the generative text service. It is treated as unreliable:
// every caller has a fallback.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// FoodDataset is the reference food-nutrition table
type FoodDataset interface {
	ListAll(ctx context.Context) (*FoodIndex, error)
	GetByID(ctx context.Context, id string) (FoodRecord, error)
}

// Estimator produces nutrient values for foods the dataset cannot supply
type Estimator interface {
	Estimate(ctx context.Context, name string) ResolvedRecord
}

// RecordResolver resolves an ingredient name to nutrient values
type RecordResolver interface {
	Resolve(ctx context.Context, name string, index *FoodIndex) ResolvedRecord
}

// IMealService defines the interface for meal processing
type IMealService interface {
	ProcessMeal(ctx context.Context, ingredients []types.IngredientInput) (*types.ProcessMealResponse, error)
}

// ITokenService defines the interface for service token operations
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(subject string) (string, error)
}
