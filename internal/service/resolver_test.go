package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	index := NewFoodIndex(map[string]string{"id-apple": "Apple"})
	estimated := ResolvedRecord{
		Record: NutritionRecord{Carbohydrates: 20, FiberContent: 2, GlycemicIndex: 60},
		Source: SourceEstimate,
	}

	t.Run("dataset match", func(t *testing.T) {
		dataset := new(mockDataset)
		estimator := new(mockEstimator)
		dataset.On("GetByID", mock.Anything, "id-apple").Return(FoodRecord{
			"Food Name":      "Apple",
			"Carbohydrates":  "14",
			"Fiber Content":  "2.4",
			"Glycemic Index": "36",
		}, nil)

		got := NewResolver(dataset, estimator).Resolve(ctx, "apple", index)

		assert.Equal(t, SourceDataset, got.Source)
		assert.Equal(t, NutritionRecord{Carbohydrates: 14, FiberContent: 2.4, GlycemicIndex: 36}, got.Record)
		estimator.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything)
	})

	t.Run("not in index", func(t *testing.T) {
		dataset := new(mockDataset)
		estimator := new(mockEstimator)
		estimator.On("Estimate", mock.Anything, "Quinoa").Return(estimated)

		got := NewResolver(dataset, estimator).Resolve(ctx, "Quinoa", index)

		assert.Equal(t, estimated, got)
		dataset.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("incomplete row", func(t *testing.T) {
		dataset := new(mockDataset)
		estimator := new(mockEstimator)
		dataset.On("GetByID", mock.Anything, "id-apple").
			Return(nil, fmt.Errorf("%w: id-apple", ErrIncompleteRecord))
		estimator.On("Estimate", mock.Anything, "Apple").Return(estimated)

		got := NewResolver(dataset, estimator).Resolve(ctx, "Apple", index)

		assert.Equal(t, estimated, got)
	})

	t.Run("row vanished", func(t *testing.T) {
		dataset := new(mockDataset)
		estimator := new(mockEstimator)
		dataset.On("GetByID", mock.Anything, "id-apple").Return(nil, ErrFoodNotFound)
		estimator.On("Estimate", mock.Anything, "Apple").Return(estimated)

		got := NewResolver(dataset, estimator).Resolve(ctx, "Apple", index)

		assert.Equal(t, estimated, got)
	})

	t.Run("non numeric value", func(t *testing.T) {
		dataset := new(mockDataset)
		estimator := new(mockEstimator)
		dataset.On("GetByID", mock.Anything, "id-apple").Return(FoodRecord{
			"Carbohydrates":  "14",
			"Fiber Content":  "n/a",
			"Glycemic Index": "36",
		}, nil)
		estimator.On("Estimate", mock.Anything, "Apple").Return(estimated)

		got := NewResolver(dataset, estimator).Resolve(ctx, "Apple", index)

		assert.Equal(t, estimated, got)
	})

	t.Run("missing key", func(t *testing.T) {
		dataset := new(mockDataset)
		estimator := new(mockEstimator)
		dataset.On("GetByID", mock.Anything, "id-apple").Return(FoodRecord{
			"Carbohydrates": "14",
			"Fiber Content": "2.4",
		}, nil)
		estimator.On("Estimate", mock.Anything, "Apple").Return(estimated)

		got := NewResolver(dataset, estimator).Resolve(ctx, "Apple", index)

		assert.Equal(t, estimated, got)
	})
}

func TestResolver_LogsMatchedName(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())
	index := NewFoodIndex(map[string]string{"id-rice": "White Rice"})

	dataset := new(mockDataset)
	dataset.On("GetByID", mock.Anything, "id-rice").Return(FoodRecord{
		"Carbohydrates":  "28.2",
		"Fiber Content":  "0.4",
		"Glycemic Index": "73",
	}, nil)

	got := NewResolver(dataset, new(mockEstimator)).Resolve(ctx, "WHITE RICE", index)

	assert.Equal(t, SourceDataset, got.Source)
	assert.Contains(t, buf.String(), `"food":"WHITE RICE"`)
	assert.Contains(t, buf.String(), `"matched":"White Rice"`)
	assert.Contains(t, buf.String(), `"food_id":"id-rice"`)
}
