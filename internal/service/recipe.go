package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/mealbook/backend/internal/filter"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/store"
)

// RecipeService handles recipe operations
type RecipeService struct {
	store store.Store
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(s store.Store) *RecipeService {
	return &RecipeService{store: s}
}

var _ IRecipeService = (*RecipeService)(nil)

// ListRecipes returns the catalog, newest first, narrowed by criteria
func (s *RecipeService) ListRecipes(ctx context.Context, criteria filter.Criteria) ([]*model.Recipe, error) {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if criteria.IsZero() {
		return recipes, nil
	}
	return filter.Apply(recipes, criteria), nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	return s.store.GetRecipe(ctx, id)
}

// CreateRecipe validates and stores a new recipe. The store assigns the id
// and dateAdded; any values the caller set for them are discarded.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	if recipe.LastMade != "" && !model.ValidDate(recipe.LastMade) {
		return nil, model.NewValidationError("lastMade", fmt.Sprintf("must be a %s date", model.DateLayout))
	}

	recipe.ID = ""
	recipe.DateAdded = ""
	recipe.Tags = model.NormalizeTags(recipe.Tags)
	if recipe.Ingredients == nil {
		recipe.Ingredients = model.Ingredients{}
	}
	if recipe.Instructions == nil {
		recipe.Instructions = model.StringList{}
	}

	id, err := s.store.CreateRecipe(ctx, recipe)
	if err != nil {
		return nil, err
	}

	log.Info().Str("component", "recipes").Str("recipe_id", id).Str("name", recipe.Name).Msg("Recipe created")
	return recipe, nil
}

// UpdateRecipe applies a partial update and returns the stored result
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, patch model.RecipePatch) (*model.Recipe, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateRecipe(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.store.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe. Meal logs that reference it are kept.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	log.Info().Str("component", "recipes").Str("recipe_id", id).Msg("Recipe deleted")
	return nil
}
