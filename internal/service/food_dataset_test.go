package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/glycemic-assist/backend/internal/database"
	"github.com/pageza/glycemic-assist/backend/internal/models"
	"github.com/pageza/glycemic-assist/backend/internal/testhelpers"
)

func seedDataset(t *testing.T, db *gorm.DB) []models.FoodItem {
	return testhelpers.SeedFoods(t, db,
		models.FoodItem{FoodName: "Apple", Carbohydrates: "14", FiberContent: "2.4", GlycemicIndex: "36"},
		models.FoodItem{FoodName: "White Rice", Carbohydrates: "28.2", FiberContent: "0.4", GlycemicIndex: "73"},
		models.FoodItem{FoodName: "Mystery Stew", Carbohydrates: "12", FiberContent: "", GlycemicIndex: "40"},
	)
}

func testFoodDataset(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	items := seedDataset(t, db)
	svc := NewFoodDatasetService(db)

	t.Run("ListAll", func(t *testing.T) {
		index, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, index.Len())

		id, ok := index.Lookup("white rice")
		assert.True(t, ok)
		assert.Equal(t, items[1].ID.String(), id)
	})

	t.Run("GetByID", func(t *testing.T) {
		record, err := svc.GetByID(ctx, items[0].ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Apple", record[models.FieldFoodName])
		assert.Equal(t, "14", record[models.FieldCarbohydrates])
		assert.Equal(t, "2.4", record[models.FieldFiberContent])
		assert.Equal(t, "36", record[models.FieldGlycemicIndex])
	})

	t.Run("GetByID incomplete", func(t *testing.T) {
		_, err := svc.GetByID(ctx, items[2].ID.String())
		assert.ErrorIs(t, err, ErrIncompleteRecord)
	})

	t.Run("GetByID unknown", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrFoodNotFound)
	})

	t.Run("GetByID malformed id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrFoodNotFound)
	})
}

func TestFoodDatasetService_SQLite(t *testing.T) {
	testFoodDataset(t, testhelpers.SetupSQLite(t))
}

func TestFoodDatasetService_Postgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, database.RunMigrations(db))
	testFoodDataset(t, db)
}

func TestFoodDatasetService_ListAllFailure(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = NewFoodDatasetService(db).ListAll(context.Background())
	assert.Error(t, err)
}
