package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Column labels of the reference dataset, as exported from the source collection.
const (
	FieldFoodName      = "Food Name"
	FieldCarbohydrates = "Carbohydrates"
	FieldFiberContent  = "Fiber Content"
	FieldGlycemicIndex = "Glycemic Index"
)

// FoodItem is one row of the reference food-nutrition dataset. Nutrient values
// are kept as text exactly as imported: a value may be missing, empty or not a
// number, and consumers decide how to coerce it.
type FoodItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FoodName      string    `gorm:"size:255;not null" json:"food_name"`
	Carbohydrates string    `gorm:"size:32" json:"carbohydrates"`
	FiberContent  string    `gorm:"size:32" json:"fiber_content"`
	GlycemicIndex string    `gorm:"size:32" json:"glycemic_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (FoodItem) TableName() string {
	return "diabetes_food_dataset"
}

// BeforeCreate assigns an identifier when the caller did not
func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Fields returns the nutrient values keyed by their dataset labels
func (f *FoodItem) Fields() map[string]string {
	return map[string]string{
		FieldCarbohydrates: f.Carbohydrates,
		FieldFiberContent:  f.FiberContent,
		FieldGlycemicIndex: f.GlycemicIndex,
	}
}

// IsComplete reports whether all three nutrient values are present and non-empty
func (f *FoodItem) IsComplete() bool {
	for _, v := range f.Fields() {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
