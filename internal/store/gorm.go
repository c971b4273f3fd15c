package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealbook/backend/internal/model"
)

// GormStore implements Store on top of gorm. It works against both the
// postgres and sqlite dialects.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore instance
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	if err := s.db.WithContext(ctx).
		Order("date_added DESC").
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, unavailable("failed to list recipes", err)
	}
	return recipes, nil
}

func (s *GormStore) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, model.ErrNotFound)
		}
		return nil, unavailable("failed to get recipe", err)
	}
	return &recipe, nil
}

func (s *GormStore) CreateRecipe(ctx context.Context, r *model.Recipe) (string, error) {
	r.ID = uuid.New().String()
	r.DateAdded = model.Today()
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return "", unavailable("failed to create recipe", err)
	}
	return r.ID, nil
}

func (s *GormStore) UpdateRecipe(ctx context.Context, id string, patch model.RecipePatch) error {
	updates := patch.Updates()
	if len(updates) == 0 {
		_, err := s.GetRecipe(ctx, id)
		return err
	}

	result := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return unavailable("failed to update recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("recipe %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteRecipe(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return unavailable("failed to delete recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("recipe %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (s *GormStore) ListMealLogs(ctx context.Context) ([]*model.MealLog, error) {
	var logs []*model.MealLog
	if err := s.db.WithContext(ctx).
		Order("date DESC").
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, unavailable("failed to list meal logs", err)
	}
	return logs, nil
}

func (s *GormStore) ListMealLogsForRecipe(ctx context.Context, recipeID string) ([]*model.MealLog, error) {
	var logs []*model.MealLog
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, unavailable("failed to list meal logs for recipe", err)
	}
	return logs, nil
}

func (s *GormStore) GetMealLog(ctx context.Context, id string) (*model.MealLog, error) {
	var log model.MealLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("meal log %s: %w", id, model.ErrNotFound)
		}
		return nil, unavailable("failed to get meal log", err)
	}
	return &log, nil
}

func (s *GormStore) CreateMealLog(ctx context.Context, m *model.MealLog) (string, error) {
	m.ID = uuid.New().String()
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", unavailable("failed to create meal log", err)
	}
	return m.ID, nil
}

func (s *GormStore) UpdateMealLog(ctx context.Context, id string, patch model.MealLogPatch) error {
	updates := patch.Updates()
	if len(updates) == 0 {
		_, err := s.GetMealLog(ctx, id)
		return err
	}

	result := s.db.WithContext(ctx).Model(&model.MealLog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return unavailable("failed to update meal log", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("meal log %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteMealLog(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.MealLog{}, "id = ?", id)
	if result.Error != nil {
		return unavailable("failed to delete meal log", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("meal log %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return unavailable("failed to get database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("database ping failed", err)
	}
	return nil
}

func unavailable(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrStoreUnavailable, msg, err)
}
