package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Resolver looks ingredients up in the reference dataset and falls back to
// the estimator when there is no usable match
type Resolver struct {
	dataset   FoodDataset
	estimator Estimator
}

// NewResolver creates a new Resolver instance
func NewResolver(dataset FoodDataset, estimator Estimator) *Resolver {
	return &Resolver{dataset: dataset, estimator: estimator}
}

// Resolve never fails. A dataset match is used only when the row exists, is
// complete and all three values are numeric; otherwise the estimate is returned.
func (r *Resolver) Resolve(ctx context.Context, name string, index *FoodIndex) ResolvedRecord {
	logger := log.Ctx(ctx).With().Str("food", name).Logger()

	if id, ok := index.Lookup(name); ok {
		matched, _ := index.Name(id)
		record, err := r.fromDataset(ctx, id)
		if err == nil {
			logger.Debug().Str("food_id", id).Str("matched", matched).Msg("food resolved from dataset")
			return ResolvedRecord{Record: record, Source: SourceDataset}
		}
		logger.Debug().Err(err).Str("food_id", id).Str("matched", matched).Msg("dataset record unusable, estimating")
	} else {
		logger.Debug().Msg("food not in dataset, estimating")
	}

	return r.estimator.Estimate(ctx, name)
}

func (r *Resolver) fromDataset(ctx context.Context, id string) (NutritionRecord, error) {
	if r.dataset == nil {
		return NutritionRecord{}, ErrFoodNotFound
	}
	fields, err := r.dataset.GetByID(ctx, id)
	if err != nil {
		return NutritionRecord{}, err
	}
	return recordFromFields(func(key string) (any, bool) {
		v, ok := fields[key]
		return v, ok
	}, false)
}
