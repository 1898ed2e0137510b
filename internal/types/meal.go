package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidWeight is returned when an ingredient weight is not a finite number
var ErrInvalidWeight = errors.New("invalid ingredient weight")

// Weight is an ingredient weight in grams as sent by the client. It accepts a
// JSON number or a numeric string; anything else still decodes so that one bad
// ingredient does not reject the whole request, and Float reports the error.
type Weight struct {
	raw json.RawMessage
}

// NewWeight creates a weight from a number of grams
func NewWeight(grams float64) Weight {
	return Weight{raw: json.RawMessage(strconv.FormatFloat(grams, 'f', -1, 64))}
}

// WeightFromString creates a weight from its textual form, as a client would send it quoted
func WeightFromString(s string) Weight {
	data, _ := json.Marshal(s)
	return Weight{raw: data}
}

func (w *Weight) UnmarshalJSON(data []byte) error {
	w.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (w Weight) MarshalJSON() ([]byte, error) {
	if len(w.raw) == 0 {
		return []byte("null"), nil
	}
	return w.raw, nil
}

// Float coerces the weight to grams
func (w Weight) Float() (float64, error) {
	raw := bytes.TrimSpace(w.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrInvalidWeight
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, ErrInvalidWeight
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidWeight
	}
	return v, nil
}

// String renders the weight as the client sent it, without quotes
func (w Weight) String() string {
	raw := bytes.TrimSpace(w.raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// IngredientInput is one entry of a meal
type IngredientInput struct {
	Name   string `json:"name"`
	Weight Weight `json:"weight"`
}

// UnmarshalJSON never fails on a malformed entry. An element that is not an
// object, or whose name is not a string, decodes with a blank name and is
// skipped later like any other nameless ingredient.
func (in *IngredientInput) UnmarshalJSON(data []byte) error {
	*in = IngredientInput{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	for key, raw := range fields {
		switch strings.ToLower(key) {
		case "name":
			var name string
			if err := json.Unmarshal(raw, &name); err == nil {
				in.Name = name
			}
		case "weight":
			if err := in.Weight.UnmarshalJSON(raw); err != nil {
				return err
			}
		}
	}
	return nil
}

// ProcessMealRequest is the body of the meal processing endpoint
type ProcessMealRequest struct {
	Ingredients []IngredientInput `json:"ingredients"`
}

// ProcessMealResponse is the response of the meal processing endpoint
type ProcessMealResponse struct {
	GlycemicIndex   float64      `json:"glycemicIndex"`
	Recommendations []string     `json:"recommendations"`
	Details         *MealDetails `json:"details,omitempty"`
}

// MealDetails explains how the meal index was obtained
type MealDetails struct {
	GlycemicLoad        float64            `json:"glycemicLoad"`
	TotalAvailableCarbs float64            `json:"totalAvailableCarbs"`
	Skipped             int                `json:"skipped"`
	UsedFallback        bool               `json:"usedFallback"`
	Unresolvable        bool               `json:"unresolvable"`
	TipsFallback        bool               `json:"tipsFallback"`
	Ingredients         []IngredientDetail `json:"ingredients"`
}

// IngredientDetail is the per-ingredient breakdown of a meal
type IngredientDetail struct {
	Name           string  `json:"name"`
	Weight         float64 `json:"weight"`
	Carbohydrates  float64 `json:"carbohydrates"`
	FiberContent   float64 `json:"fiberContent"`
	GlycemicIndex  float64 `json:"glycemicIndex"`
	AvailableCarbs float64 `json:"availableCarbs"`
	Source         string  `json:"source"`
}
