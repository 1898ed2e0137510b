package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/glycemic-assist/backend/internal/types"
)

// MockMealService is a mock implementation of the meal service
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) ProcessMeal(ctx context.Context, ingredients []types.IngredientInput) (*types.ProcessMealResponse, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProcessMealResponse), args.Error(1)
}
