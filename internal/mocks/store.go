package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealbook/backend/internal/model"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

func (m *MockStore) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockStore) CreateRecipe(ctx context.Context, recipe *model.Recipe) (string, error) {
	args := m.Called(ctx, recipe)
	return args.String(0), args.Error(1)
}

func (m *MockStore) UpdateRecipe(ctx context.Context, id string, patch model.RecipePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStore) DeleteRecipe(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListMealLogs(ctx context.Context) ([]*model.MealLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MealLog), args.Error(1)
}

func (m *MockStore) ListMealLogsForRecipe(ctx context.Context, recipeID string) ([]*model.MealLog, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MealLog), args.Error(1)
}

func (m *MockStore) GetMealLog(ctx context.Context, id string) (*model.MealLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealLog), args.Error(1)
}

func (m *MockStore) CreateMealLog(ctx context.Context, mealLog *model.MealLog) (string, error) {
	args := m.Called(ctx, mealLog)
	return args.String(0), args.Error(1)
}

func (m *MockStore) UpdateMealLog(ctx context.Context, id string, patch model.MealLogPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStore) DeleteMealLog(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
