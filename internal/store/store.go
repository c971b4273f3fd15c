// Package store is the persistence boundary for recipes and meal logs.
package store

import (
	"context"

	"github.com/pageza/mealbook/backend/internal/model"
)

// Store lists, creates, updates and deletes recipes and meal logs.
//
// Failures are reported with the sentinels in package model: ErrNotFound for
// an unknown id and ErrStoreUnavailable when the backing database cannot
// serve the call. Writes to the two entity kinds are independent; no call
// spans both.
type Store interface {
	// ListRecipes returns every recipe, newest dateAdded first.
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	// CreateRecipe assigns the id and dateAdded of r and stores it.
	CreateRecipe(ctx context.Context, r *model.Recipe) (string, error)
	UpdateRecipe(ctx context.Context, id string, patch model.RecipePatch) error
	// DeleteRecipe removes the recipe only; its meal logs are kept.
	DeleteRecipe(ctx context.Context, id string) error

	// ListMealLogs returns every meal log, latest date first.
	ListMealLogs(ctx context.Context) ([]*model.MealLog, error)
	ListMealLogsForRecipe(ctx context.Context, recipeID string) ([]*model.MealLog, error)
	GetMealLog(ctx context.Context, id string) (*model.MealLog, error)
	CreateMealLog(ctx context.Context, m *model.MealLog) (string, error)
	UpdateMealLog(ctx context.Context, id string, patch model.MealLogPatch) error
	DeleteMealLog(ctx context.Context, id string) error

	// Ping checks that the backing database is reachable.
	Ping(ctx context.Context) error
}
