package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pageza/glycemic-assist/backend/internal/models"
)

const estimateMaxTokens = 100

// FallbackNutrition is returned whenever an estimate cannot be obtained
var FallbackNutrition = NutritionRecord{
	Carbohydrates: 10.0,
	FiberContent:  1.5,
	GlycemicIndex: 50.0,
}

// NutritionEstimator asks the generative text service for per-100g nutrient
// values of foods missing from the reference dataset
type NutritionEstimator struct {
	llm TextCompleter
}

// NewNutritionEstimator creates a new NutritionEstimator instance
func NewNutritionEstimator(llm TextCompleter) *NutritionEstimator {
	return &NutritionEstimator{llm: llm}
}

// Estimate never fails: any problem with the service or its reply yields
// FallbackNutrition with SourceFallback.
func (e *NutritionEstimator) Estimate(ctx context.Context, name string) ResolvedRecord {
	record, err := e.estimate(ctx, name)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("food", name).Msg("nutrition estimate failed, using fallback")
		return ResolvedRecord{Record: FallbackNutrition, Source: SourceFallback}
	}
	log.Ctx(ctx).Debug().Str("food", name).Interface("record", record).Msg("nutrition estimated")
	return ResolvedRecord{Record: record, Source: SourceEstimate}
}

func (e *NutritionEstimator) estimate(ctx context.Context, name string) (NutritionRecord, error) {
	if e.llm == nil {
		return NutritionRecord{}, errors.New("no generative service configured")
	}

	content, err := e.llm.Complete(ctx, BuildEstimatePrompt(name), estimateMaxTokens)
	if err != nil {
		return NutritionRecord{}, err
	}
	return ParseEstimate(content)
}

// BuildEstimatePrompt asks for GI, carbohydrates and fiber of 100g of name in a fixed JSON shape
func BuildEstimatePrompt(name string) string {
	return fmt.Sprintf(
		"Provide the estimated glycemic index (GI), carbohydrates (in grams), "+
			"and fiber content (in grams) for 100g of '%s' in the following JSON format:\n"+
			"{\n"+
			"  \"%s\": <GI>,\n"+
			"  \"%s\": <Carbs>,\n"+
			"  \"%s\": <Fiber>\n"+
			"}",
		name, models.FieldGlycemicIndex, models.FieldCarbohydrates, models.FieldFiberContent,
	)
}

// ParseEstimate decodes a reply to BuildEstimatePrompt. Code fences around the
// JSON are removed first. Absent keys default to 0; present keys must hold a
// number or a numeric string.
func ParseEstimate(content string) (NutritionRecord, error) {
	content = stripCodeFence(content)

	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return NutritionRecord{}, fmt.Errorf("failed to parse estimate: %w", err)
	}
	if dec.More() {
		return NutritionRecord{}, errors.New("failed to parse estimate: trailing data after JSON object")
	}
	if fields == nil {
		return NutritionRecord{}, errors.New("failed to parse estimate: not a JSON object")
	}

	return recordFromFields(func(key string) (any, bool) {
		v, ok := fields[key]
		return v, ok
	}, true)
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// recordFromFields coerces the three nutrient values. With defaultMissing an
// absent key reads as 0, otherwise it is an error.
func recordFromFields(get func(string) (any, bool), defaultMissing bool) (NutritionRecord, error) {
	var out [3]float64
	for i, key := range []string{models.FieldCarbohydrates, models.FieldFiberContent, models.FieldGlycemicIndex} {
		v, ok := get(key)
		if !ok {
			if defaultMissing {
				continue
			}
			return NutritionRecord{}, fmt.Errorf("missing %s", key)
		}
		f, err := toFloat(v)
		if err != nil {
			return NutritionRecord{}, fmt.Errorf("%s: %w", key, err)
		}
		out[i] = f
	}
	return NutritionRecord{Carbohydrates: out[0], FiberContent: out[1], GlycemicIndex: out[2]}, nil
}
