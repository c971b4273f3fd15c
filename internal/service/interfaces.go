package service

import (
	"context"

	"github.com/pageza/mealbook/backend/internal/filter"
	"github.com/pageza/mealbook/backend/internal/model"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, criteria filter.Criteria) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, patch model.RecipePatch) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// IMealLogService defines the interface for meal log operations
type IMealLogService interface {
	ListMealLogs(ctx context.Context) ([]*model.MealLog, error)
	ListMealLogsForRecipe(ctx context.Context, recipeID string) ([]*model.MealLog, error)
	GetMealLog(ctx context.Context, id string) (*model.MealLog, error)
	CreateMealLog(ctx context.Context, in *MealLogInput) (*CreatedMealLog, error)
	UpdateMealLog(ctx context.Context, id string, patch model.MealLogPatch) (*model.MealLog, error)
	DeleteMealLog(ctx context.Context, id string) error
}

// IStatsService defines the interface for dashboard statistics
type IStatsService interface {
	Summary(ctx context.Context) (*Stats, error)
}

// IImageService defines the interface for image storage operations
type IImageService interface {
	ValidateImage(size int64, contentType string) error
	UploadImage(ctx context.Context, req *UploadRequest) (string, error)
	DeleteImage(ctx context.Context, url string)
}
