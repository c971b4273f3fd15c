package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/store"
)

// MealLogInput carries the caller-supplied fields of a new meal log. Nil
// ServingsMade and WouldMakeAgain take their defaults.
type MealLogInput struct {
	RecipeID       string   `json:"recipeId" binding:"required"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Photo          string   `json:"photo"`
	Rating         int      `json:"rating"`
	Notes          string   `json:"notes"`
	Modifications  string   `json:"modifications"`
	ServingsMade   *int     `json:"servingsMade"`
	WhoAte         []string `json:"whoAte"`
	WouldMakeAgain *bool    `json:"wouldMakeAgain"`
}

// CreatedMealLog is the outcome of CreateMealLog. Warning is set when the log
// was stored but the recipe's lastMade date could not be updated.
type CreatedMealLog struct {
	MealLog *model.MealLog
	Warning *LastMadeError
}

// LastMadeError reports a failed lastMade update after a meal log was created
type LastMadeError struct {
	RecipeID string
	Date     string
	Err      error
}

func (e *LastMadeError) Error() string {
	return fmt.Sprintf("meal log saved but lastMade of recipe %s was not set to %s: %v", e.RecipeID, e.Date, e.Err)
}

func (e *LastMadeError) Unwrap() error {
	return e.Err
}

// MealLogService handles meal log operations
type MealLogService struct {
	store store.Store
}

// NewMealLogService creates a new MealLogService instance
func NewMealLogService(s store.Store) *MealLogService {
	return &MealLogService{store: s}
}

var _ IMealLogService = (*MealLogService)(nil)

func (s *MealLogService) ListMealLogs(ctx context.Context) ([]*model.MealLog, error) {
	return s.store.ListMealLogs(ctx)
}

func (s *MealLogService) ListMealLogsForRecipe(ctx context.Context, recipeID string) ([]*model.MealLog, error) {
	return s.store.ListMealLogsForRecipe(ctx, recipeID)
}

func (s *MealLogService) GetMealLog(ctx context.Context, id string) (*model.MealLog, error) {
	return s.store.GetMealLog(ctx, id)
}

// CreateMealLog stores a meal log and then, as a separate call, sets the
// recipe's lastMade to the log date. A failure of the second call does not
// undo the first; it is returned as CreatedMealLog.Warning.
func (s *MealLogService) CreateMealLog(ctx context.Context, in *MealLogInput) (*CreatedMealLog, error) {
	mealLog := &model.MealLog{
		RecipeID:       in.RecipeID,
		Date:           in.Date,
		Time:           in.Time,
		Photo:          in.Photo,
		Rating:         in.Rating,
		Notes:          in.Notes,
		Modifications:  in.Modifications,
		WhoAte:         model.NormalizeDiners(in.WhoAte),
		WouldMakeAgain: true,
	}
	if mealLog.Date == "" {
		mealLog.Date = model.Today()
	}
	if in.WouldMakeAgain != nil {
		mealLog.WouldMakeAgain = *in.WouldMakeAgain
	}
	if in.ServingsMade != nil {
		mealLog.ServingsMade = *in.ServingsMade
	} else {
		mealLog.ServingsMade = s.defaultServings(ctx, in.RecipeID)
	}

	if err := mealLog.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.CreateMealLog(ctx, mealLog)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("component", "meal_logs").
		Str("meal_log_id", id).
		Str("recipe_id", mealLog.RecipeID).
		Str("date", mealLog.Date).
		Msg("Meal log created")

	result := &CreatedMealLog{MealLog: mealLog}

	date := mealLog.Date
	if err := s.store.UpdateRecipe(ctx, mealLog.RecipeID, model.RecipePatch{LastMade: &date}); err != nil {
		result.Warning = &LastMadeError{RecipeID: mealLog.RecipeID, Date: date, Err: err}
		log.Warn().
			Err(err).
			Str("component", "meal_logs").
			Str("meal_log_id", id).
			Str("recipe_id", mealLog.RecipeID).
			Msg("Failed to update recipe last made date")
	}

	return result, nil
}

// defaultServings returns the recipe's servings, or 1 when the recipe
// cannot be read.
func (s *MealLogService) defaultServings(ctx context.Context, recipeID string) int {
	if recipeID == "" {
		return 1
	}
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil || recipe.Servings < 1 {
		if err != nil {
			log.Debug().Err(err).Str("component", "meal_logs").Str("recipe_id", recipeID).
				Msg("Falling back to one serving")
		}
		return 1
	}
	return recipe.Servings
}

// UpdateMealLog applies a partial update and returns the stored result.
// Changing the date does not touch the recipe's lastMade.
func (s *MealLogService) UpdateMealLog(ctx context.Context, id string, patch model.MealLogPatch) (*model.MealLog, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateMealLog(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.store.GetMealLog(ctx, id)
}

func (s *MealLogService) DeleteMealLog(ctx context.Context, id string) error {
	return s.store.DeleteMealLog(ctx, id)
}
