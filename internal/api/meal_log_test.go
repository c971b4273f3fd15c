package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMealLogUpdatesLastMade(t *testing.T) {
	env := setupTestEnv(t)
	recipe := createRecipe(t, env.router, recipeBody("Risotto", "evening", 20))
	recipeID := recipe["id"].(string)

	w := performRequest(env.router, http.MethodPost, "/api/v1/meal-logs", map[string]interface{}{
		"recipeId": recipeID,
		"date":     "2024-02-01",
		"time":     "19:30",
		"rating":   5,
		"notes":    "Creamy",
		"whoAte":   []string{"you", "partner"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]interface{}
	decode(t, w, &resp)
	assert.NotContains(t, resp, "warning")
	mealLog := resp["mealLog"].(map[string]interface{})
	assert.Equal(t, recipeID, mealLog["recipeId"])
	assert.Equal(t, float64(4), mealLog["servingsMade"])
	assert.Equal(t, true, mealLog["wouldMakeAgain"])

	w = performRequest(env.router, http.MethodGet, "/api/v1/recipes/"+recipeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored map[string]interface{}
	decode(t, w, &stored)
	assert.Equal(t, "2024-02-01", stored["lastMade"])
}

func TestCreateMealLogWarning(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.router, http.MethodPost, "/api/v1/meal-logs", map[string]interface{}{
		"recipeId": "deleted-recipe",
		"date":     "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	decode(t, w, &resp)
	assert.Contains(t, resp["warning"], "lastMade")
	assert.NotNil(t, resp["mealLog"])
}

func TestCreateMealLogValidation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing recipe", map[string]interface{}{"date": "2024-02-01"}},
		{"bad rating", map[string]interface{}{"recipeId": "r1", "rating": 7}},
		{"unknown diner", map[string]interface{}{"recipeId": "r1", "whoAte": []string{"dog"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(env.router, http.MethodPost, "/api/v1/meal-logs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestMealLogLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	recipe := createRecipe(t, env.router, recipeBody("Ramen", "evening", 30))
	recipeID := recipe["id"].(string)

	for _, date := range []string{"2024-01-10", "2024-03-02"} {
		w := performRequest(env.router, http.MethodPost, "/api/v1/meal-logs", map[string]interface{}{
			"recipeId": recipeID,
			"date":     date,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performRequest(env.router, http.MethodGet, "/api/v1/meal-logs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		MealLogs []map[string]interface{} `json:"mealLogs"`
	}
	decode(t, w, &list)
	require.Len(t, list.MealLogs, 2)
	assert.Equal(t, "2024-03-02", list.MealLogs[0]["date"])
	assert.Equal(t, "2024-01-10", list.MealLogs[1]["date"])

	id := list.MealLogs[1]["id"].(string)
	path := "/api/v1/meal-logs/" + id

	w = performRequest(env.router, http.MethodPatch, path, map[string]interface{}{
		"rating":        3,
		"modifications": "Added miso",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated map[string]interface{}
	decode(t, w, &updated)
	assert.Equal(t, float64(3), updated["rating"])
	assert.Equal(t, "Added miso", updated["modifications"])
	assert.Equal(t, "2024-01-10", updated["date"])

	w = performRequest(env.router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(env.router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(env.router, http.MethodPut, path, map[string]interface{}{"rating": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
