package service

// NutritionRecord holds per-100g nutrient values of one food
type NutritionRecord struct {
	Carbohydrates float64 `json:"carbohydrates"`
	FiberContent  float64 `json:"fiberContent"`
	GlycemicIndex float64 `json:"glycemicIndex"`
}

// RecordSource tells where a NutritionRecord came from
type RecordSource string

const (
	// SourceDataset means the record was read from the reference dataset
	SourceDataset RecordSource = "dataset"
	// SourceEstimate means the generative service estimated the record
	SourceEstimate RecordSource = "estimate"
	// SourceFallback means the fixed FallbackNutrition was used
	SourceFallback RecordSource = "fallback"
)

// ResolvedRecord is a NutritionRecord together with its provenance
type ResolvedRecord struct {
	Record NutritionRecord
	Source RecordSource
}
