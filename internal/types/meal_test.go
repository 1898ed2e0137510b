package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightFloat(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    float64
		wantErr bool
	}{
		{name: "number", body: `{"name":"Apple","weight":150}`, want: 150},
		{name: "decimal", body: `{"name":"Apple","weight":12.5}`, want: 12.5},
		{name: "numeric string", body: `{"name":"Apple","weight":"150"}`, want: 150},
		{name: "padded string", body: `{"name":"Apple","weight":" 80.5 "}`, want: 80.5},
		{name: "non numeric string", body: `{"name":"X","weight":"abc"}`, wantErr: true},
		{name: "missing", body: `{"name":"X"}`, wantErr: true},
		{name: "null", body: `{"name":"X","weight":null}`, wantErr: true},
		{name: "bool", body: `{"name":"X","weight":true}`, wantErr: true},
		{name: "object", body: `{"name":"X","weight":{"g":1}}`, wantErr: true},
		{name: "nan string", body: `{"name":"X","weight":"NaN"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in IngredientInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))

			got, err := in.Weight.Float()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeight)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeightString(t *testing.T) {
	assert.Equal(t, "150", NewWeight(150).String())
	assert.Equal(t, "12.5", NewWeight(12.5).String())
	assert.Equal(t, "abc", WeightFromString("abc").String())
	assert.Equal(t, "", Weight{}.String())
}

func TestWeightMarshalRoundTrip(t *testing.T) {
	body := `{"ingredients":[{"name":"Apple","weight":"150"},{"name":"Rice","weight":200}]}`
	var req ProcessMealRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	out, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))

	empty, err := json.Marshal(IngredientInput{Name: "X"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"X","weight":null}`, string(empty))
}

func TestIngredientInputLenientDecode(t *testing.T) {
	body := `{"ingredients":[1,{"name":"Apple","weight":150},{"name":42,"weight":10},null,"rice",{"Name":"Rice","Weight":"80"}]}`

	var req ProcessMealRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.Ingredients, 6)

	names := make([]string, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		names = append(names, in.Name)
	}
	assert.Equal(t, []string{"", "Apple", "", "", "", "Rice"}, names)

	apple, err := req.Ingredients[1].Weight.Float()
	require.NoError(t, err)
	assert.Equal(t, 150.0, apple)

	rice, err := req.Ingredients[5].Weight.Float()
	require.NoError(t, err)
	assert.Equal(t, 80.0, rice)

	// The weight of an entry with a bad name is kept; the entry is still skipped by name
	ten, err := req.Ingredients[2].Weight.Float()
	require.NoError(t, err)
	assert.Equal(t, 10.0, ten)
}

func TestProcessMealRequestStillRejectsNonList(t *testing.T) {
	var req ProcessMealRequest
	assert.Error(t, json.Unmarshal([]byte(`{"ingredients":"apple"}`), &req))
}
