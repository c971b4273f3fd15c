package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/store"
	"github.com/pageza/mealbook/backend/internal/testhelpers"
)

func newRecipe(name string) *model.Recipe {
	return &model.Recipe{
		Name:         name,
		Description:  name + " description",
		Category:     model.CategoryEvening,
		Difficulty:   model.DifficultyMedium,
		PrepTime:     20,
		CookTime:     30,
		Servings:     4,
		Ingredients:  model.Ingredients{{Quantity: "1 1/2", Unit: "cups", Ingredient: "Arborio rice"}},
		Instructions: model.StringList{"Toast the rice", "Add stock slowly"},
		Tags:         model.StringList{"italian", "comfort"},
	}
}

func newMealLog(recipeID, date string) *model.MealLog {
	return &model.MealLog{
		RecipeID:       recipeID,
		Date:           date,
		Rating:         4,
		ServingsMade:   2,
		WhoAte:         model.StringList{"you", "partner"},
		WouldMakeAgain: true,
	}
}

func TestGormStoreSQLite(t *testing.T) {
	runStoreContract(t, func(t *testing.T) store.Store {
		return store.NewGormStore(testhelpers.SetupSQLite(t))
	})
}

func TestGormStorePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupPostgres(t)
	runStoreContract(t, func(t *testing.T) store.Store {
		require.NoError(t, db.Exec("TRUNCATE recipes, meal_logs").Error)
		return store.NewGormStore(db)
	})
}

func runStoreContract(t *testing.T, newStore func(t *testing.T) store.Store) {
	ctx := context.Background()

	t.Run("create assigns id and dateAdded", func(t *testing.T) {
		s := newStore(t)
		r := newRecipe("Risotto")
		r.DateAdded = "1999-01-01"

		id, err := s.CreateRecipe(ctx, r)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		got, err := s.GetRecipe(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.Today(), got.DateAdded)
		assert.Equal(t, "Risotto", got.Name)
		assert.Equal(t, r.Ingredients, got.Ingredients)
		assert.Equal(t, r.Instructions, got.Instructions)
		assert.Equal(t, r.Tags, got.Tags)
		assert.Empty(t, got.LastMade)
	})

	t.Run("list orders by dateAdded descending", func(t *testing.T) {
		s := newStore(t)
		first, err := s.CreateRecipe(ctx, newRecipe("First"))
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
		second, err := s.CreateRecipe(ctx, newRecipe("Second"))
		require.NoError(t, err)

		recipes, err := s.ListRecipes(ctx)
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, second, recipes[0].ID)
		assert.Equal(t, first, recipes[1].ID)
	})

	t.Run("update merges patch", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateRecipe(ctx, newRecipe("Soup"))
		require.NoError(t, err)

		name := "Tomato Soup"
		tags := []string{"vegetarian", "vegetarian", "quick"}
		require.NoError(t, s.UpdateRecipe(ctx, id, model.RecipePatch{Name: &name, Tags: &tags}))

		got, err := s.GetRecipe(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", got.Name)
		assert.Equal(t, "Soup description", got.Description)
		assert.Equal(t, model.StringList{"vegetarian", "quick"}, got.Tags)
		assert.Equal(t, model.Today(), got.DateAdded)
	})

	t.Run("update and delete unknown recipe", func(t *testing.T) {
		s := newStore(t)
		name := "ghost"
		assert.ErrorIs(t, s.UpdateRecipe(ctx, "missing", model.RecipePatch{Name: &name}), model.ErrNotFound)
		assert.ErrorIs(t, s.UpdateRecipe(ctx, "missing", model.RecipePatch{}), model.ErrNotFound)
		assert.ErrorIs(t, s.DeleteRecipe(ctx, "missing"), model.ErrNotFound)
		_, err := s.GetRecipe(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("deleting a recipe keeps its meal logs", func(t *testing.T) {
		s := newStore(t)
		recipeID, err := s.CreateRecipe(ctx, newRecipe("Pancakes"))
		require.NoError(t, err)
		logID, err := s.CreateMealLog(ctx, newMealLog(recipeID, "2024-02-01"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteRecipe(ctx, recipeID))

		_, err = s.GetRecipe(ctx, recipeID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		log, err := s.GetMealLog(ctx, logID)
		require.NoError(t, err)
		assert.Equal(t, recipeID, log.RecipeID)

		logs, err := s.ListMealLogsForRecipe(ctx, recipeID)
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("meal logs ordered by date descending", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateMealLog(ctx, newMealLog("r1", "2024-01-10"))
		require.NoError(t, err)
		_, err = s.CreateMealLog(ctx, newMealLog("r2", "2024-03-05"))
		require.NoError(t, err)
		_, err = s.CreateMealLog(ctx, newMealLog("r1", "2024-02-01"))
		require.NoError(t, err)

		logs, err := s.ListMealLogs(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, "2024-03-05", logs[0].Date)
		assert.Equal(t, "2024-02-01", logs[1].Date)
		assert.Equal(t, "2024-01-10", logs[2].Date)

		forR1, err := s.ListMealLogsForRecipe(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, forR1, 2)
		assert.Equal(t, "2024-02-01", forR1[0].Date)
	})

	t.Run("meal log update and delete", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateMealLog(ctx, newMealLog("r1", "2024-01-10"))
		require.NoError(t, err)

		rating := 5
		again := false
		require.NoError(t, s.UpdateMealLog(ctx, id, model.MealLogPatch{Rating: &rating, WouldMakeAgain: &again}))

		got, err := s.GetMealLog(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Rating)
		assert.False(t, got.WouldMakeAgain)
		assert.Equal(t, model.StringList{"you", "partner"}, got.WhoAte)

		require.NoError(t, s.DeleteMealLog(ctx, id))
		assert.ErrorIs(t, s.DeleteMealLog(ctx, id), model.ErrNotFound)
		assert.ErrorIs(t, s.UpdateMealLog(ctx, id, model.MealLogPatch{Rating: &rating}), model.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}

func TestGormStoreUnavailable(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	s := store.NewGormStore(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = s.ListRecipes(context.Background())
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)

	_, err = s.CreateMealLog(context.Background(), newMealLog("r1", "2024-01-01"))
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)

	assert.ErrorIs(t, s.Ping(context.Background()), model.ErrStoreUnavailable)
}
