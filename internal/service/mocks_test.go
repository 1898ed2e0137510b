package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

type mockDataset struct {
	mock.Mock
}

func (m *mockDataset) ListAll(ctx context.Context) (*FoodIndex, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FoodIndex), args.Error(1)
}

func (m *mockDataset) GetByID(ctx context.Context, id string) (FoodRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(FoodRecord), args.Error(1)
}

type mockEstimator struct {
	mock.Mock
}

func (m *mockEstimator) Estimate(ctx context.Context, name string) ResolvedRecord {
	args := m.Called(ctx, name)
	return args.Get(0).(ResolvedRecord)
}

// staticResolver resolves from a fixed table and falls back for unknown names
type staticResolver map[string]ResolvedRecord

func (s staticResolver) Resolve(_ context.Context, name string, _ *FoodIndex) ResolvedRecord {
	if r, ok := s[name]; ok {
		return r
	}
	return ResolvedRecord{Record: FallbackNutrition, Source: SourceFallback}
}
