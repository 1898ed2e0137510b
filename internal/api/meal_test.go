package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/glycemic-assist/backend/internal/mocks"
	"github.com/pageza/glycemic-assist/backend/internal/models"
	"github.com/pageza/glycemic-assist/backend/internal/service"
	"github.com/pageza/glycemic-assist/backend/internal/testhelpers"
	"github.com/pageza/glycemic-assist/backend/internal/types"
)

func setupMealRouter(mealService *mocks.MockMealService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewMealHandler(mealService).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProcessMeal(t *testing.T) {
	mealService := new(mocks.MockMealService)
	router := setupMealRouter(mealService)

	expected := &types.ProcessMealResponse{
		GlycemicIndex:   36,
		Recommendations: []string{"1. a", "2. b", "3. c"},
		Details:         &types.MealDetails{TotalAvailableCarbs: 17.4},
	}
	mealService.On("ProcessMeal", mock.Anything, mock.MatchedBy(func(in []types.IngredientInput) bool {
		if len(in) != 2 || in[0].Name != "Apple" || in[1].Name != "Rice" {
			return false
		}
		apple, err := in[0].Weight.Float()
		if err != nil || apple != 150 {
			return false
		}
		rice, err := in[1].Weight.Float()
		return err == nil && rice == 80.5
	})).Return(expected, nil)

	w := postJSON(router, "/api/v1/meals/glycemic-index",
		`{"ingredients":[{"name":"Apple","weight":150},{"name":"Rice","weight":"80.5"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 36.0, response["glycemicIndex"])
	assert.Len(t, response["recommendations"], 3)
	assert.Contains(t, response, "details")
	mealService.AssertExpectations(t)
}

func TestProcessMeal_IngredientsRequired(t *testing.T) {
	mealService := new(mocks.MockMealService)
	router := setupMealRouter(mealService)

	for _, body := range []string{`{}`, `{"ingredients":[]}`, `{"ingredients":null}`} {
		w := postJSON(router, "/api/v1/meals/glycemic-index", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Ingredients are required"}`, w.Body.String())
	}
	mealService.AssertNotCalled(t, "ProcessMeal", mock.Anything, mock.Anything)
}

func TestProcessMeal_InvalidBody(t *testing.T) {
	mealService := new(mocks.MockMealService)
	router := setupMealRouter(mealService)

	for _, body := range []string{`not json`, `{"ingredients":"apple"}`, `{"ingredients":{"name":"apple"}}`} {
		w := postJSON(router, "/api/v1/meals/glycemic-index", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	mealService.AssertNotCalled(t, "ProcessMeal", mock.Anything, mock.Anything)
}

func TestProcessMeal_BadWeightIsNotRejected(t *testing.T) {
	mealService := new(mocks.MockMealService)
	router := setupMealRouter(mealService)
	mealService.On("ProcessMeal", mock.Anything, mock.Anything).
		Return(&types.ProcessMealResponse{Recommendations: []string{"1.", "2.", "3."}}, nil)

	w := postJSON(router, "/api/v1/meals/glycemic-index", `{"ingredients":[{"name":"Apple","weight":"abc"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	mealService.AssertExpectations(t)
}

func TestProcessMeal_MalformedIngredientsAreSkipped(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.SeedFoods(t, db,
		models.FoodItem{FoodName: "Apple", Carbohydrates: "14", FiberContent: "2.4", GlycemicIndex: "36"},
	)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewMealHandler(service.NewMealService(service.NewFoodDatasetService(db), nil)).RegisterRoutes(router.Group("/api/v1"))

	w := postJSON(router, "/api/v1/meals/glycemic-index",
		`{"ingredients":[1,{"name":"Apple","weight":150},{"name":42,"weight":10},["x"]]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response types.ProcessMealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 36.0, response.GlycemicIndex)
	assert.Len(t, response.Recommendations, 3)
	require.NotNil(t, response.Details)
	assert.Equal(t, 3, response.Details.Skipped)
	assert.Equal(t, 17.4, response.Details.TotalAvailableCarbs)
	assert.False(t, response.Details.Unresolvable)
	require.Len(t, response.Details.Ingredients, 1)
	assert.Equal(t, "Apple", response.Details.Ingredients[0].Name)
}

func TestProcessMeal_DatasetUnavailable(t *testing.T) {
	mealService := new(mocks.MockMealService)
	router := setupMealRouter(mealService)
	mealService.On("ProcessMeal", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	w := postJSON(router, "/api/v1/meals/glycemic-index", `{"ingredients":[{"name":"Apple","weight":150}]}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"food dataset is unavailable"}`, w.Body.String())
}
