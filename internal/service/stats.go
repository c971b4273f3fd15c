package service

import (
	"context"
	"math"

	"github.com/pageza/mealbook/backend/internal/store"
)

// Stats summarizes the catalog for the dashboard
type Stats struct {
	TotalRecipes  int     `json:"totalRecipes"`
	MealsLogged   int     `json:"mealsLogged"`
	RecipesTried  int     `json:"recipesTried"`
	AverageRating float64 `json:"averageRating"`
}

// StatsService computes dashboard statistics
type StatsService struct {
	store store.Store
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

// Summary counts recipes and logs. A recipe counts as tried once it has a
// lastMade date. Unrated logs count as zero in the average, which is
// rounded to one decimal.
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.store.ListMealLogs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalRecipes: len(recipes),
		MealsLogged:  len(logs),
	}
	for _, r := range recipes {
		if r.LastMade != "" {
			stats.RecipesTried++
		}
	}
	if len(logs) > 0 {
		total := 0
		for _, l := range logs {
			total += l.Rating
		}
		avg := float64(total) / float64(len(logs))
		stats.AverageRating = math.Round(avg*10) / 10
	}
	return stats, nil
}
