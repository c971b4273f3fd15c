package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealbook/backend/internal/mocks"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
)

func TestStatsSummary(t *testing.T) {
	recipes := []*model.Recipe{
		{ID: "1", LastMade: "2024-02-01"},
		{ID: "2"},
		{ID: "3", LastMade: "2024-01-20"},
	}

	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no logs", nil, 0},
		{"whole number", []int{5, 4, 3}, 4},
		{"rounded down", []int{4, 4, 5}, 4.3},
		{"rounded up", []int{4, 5, 5}, 4.7},
		{"half", []int{4, 5}, 4.5},
		{"unrated counts as zero", []int{5, 0}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := make([]*model.MealLog, 0, len(tt.ratings))
			for _, r := range tt.ratings {
				logs = append(logs, &model.MealLog{Rating: r})
			}
			st := new(mocks.MockStore)
			st.On("ListRecipes", mock.Anything).Return(recipes, nil)
			st.On("ListMealLogs", mock.Anything).Return(logs, nil)

			stats, err := service.NewStatsService(st).Summary(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 3, stats.TotalRecipes)
			assert.Equal(t, 2, stats.RecipesTried)
			assert.Equal(t, len(tt.ratings), stats.MealsLogged)
			assert.InDelta(t, tt.want, stats.AverageRating, 1e-9)
		})
	}
}

func TestStatsSummaryStoreError(t *testing.T) {
	st := new(mocks.MockStore)
	st.On("ListRecipes", mock.Anything).Return(nil, model.ErrStoreUnavailable)

	_, err := service.NewStatsService(st).Summary(context.Background())
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}
