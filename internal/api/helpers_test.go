package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealbook/backend/internal/middleware"
	"github.com/pageza/mealbook/backend/internal/mocks"
	"github.com/pageza/mealbook/backend/internal/service"
	"github.com/pageza/mealbook/backend/internal/store"
	"github.com/pageza/mealbook/backend/internal/testhelpers"
)

const testImageBaseURL = "http://localhost:9000/mealbook-images"

type testEnv struct {
	router  *gin.Engine
	store   store.Store
	storage *mocks.MockObjectStorage
}

func init() {
	gin.SetMode(gin.TestMode)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	RegisterRoutes(router, deps)
	return router
}

// setupTestEnv wires the real services to an in-memory sqlite store and a
// mock object storage
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewGormStore(testhelpers.SetupSQLite(t))
	storage := new(mocks.MockObjectStorage)

	router := newTestRouter(Dependencies{
		Recipes:     service.NewRecipeService(st),
		MealLogs:    service.NewMealLogService(st),
		Stats:       service.NewStatsService(st),
		Images:      service.NewImageServiceWithStorage(storage, "mealbook-images", testImageBaseURL),
		Store:       st,
		Preferences: Preferences{Theme: "teal", Glassy: true},
	})

	return &testEnv{router: router, store: st, storage: storage}
}

func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func recipeBody(name, category string, prepTime int) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": name + " description",
		"category":    category,
		"difficulty":  "easy",
		"prepTime":    prepTime,
		"cookTime":    15,
		"servings":    4,
		"ingredients": []map[string]string{
			{"quantity": "1 1/2", "unit": "cups", "ingredient": "Arborio rice"},
		},
		"instructions": []string{"Toast the rice", "Add stock"},
		"tags":         []string{"italian", " comfort ", "italian"},
	}
}

func createRecipe(t *testing.T, router http.Handler, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := performRequest(router, http.MethodPost, "/api/v1/recipes", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var recipe map[string]interface{}
	decode(t, w, &recipe)
	return recipe
}
