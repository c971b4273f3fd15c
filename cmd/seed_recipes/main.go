package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pageza/mealbook/backend/config"
	"github.com/pageza/mealbook/backend/internal/database"
	"github.com/pageza/mealbook/backend/internal/filter"
	"github.com/pageza/mealbook/backend/internal/logger"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
	"github.com/pageza/mealbook/backend/internal/store"
	"github.com/pageza/mealbook/backend/migrations"
)

//go:embed sample_recipes.json
var sampleRecipes []byte

func main() {
	logger.New("mealbook-seed", os.Getenv("MEALBOOK_LOG_LEVEL"), true)

	var (
		file         string
		skipExisting bool
	)
	rootCmd := &cobra.Command{
		Use:   "seed_recipes",
		Short: "Load sample recipes into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := loadRecipes(file)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			db, err := database.New(cfg)
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db, migrations.FS); err != nil {
				return err
			}

			svc := service.NewRecipeService(store.NewGormStore(db))
			_, err = seedRecipes(cmd.Context(), svc, recipes, skipExisting, cmd.OutOrStdout())
			return err
		},
	}
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "JSON file of recipes to load instead of the built-in samples")
	rootCmd.Flags().BoolVar(&skipExisting, "skip-existing", true, "Skip recipes whose name is already in the catalog")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadRecipes(file string) ([]*model.Recipe, error) {
	data := sampleRecipes
	if file != "" {
		var err error
		if data, err = os.ReadFile(file); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	var recipes []*model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	return recipes, nil
}

// seedRecipes creates each recipe through the service and returns how many
// were created
func seedRecipes(ctx context.Context, svc service.IRecipeService, recipes []*model.Recipe, skipExisting bool, out io.Writer) (int, error) {
	existing := make(map[string]bool)
	if skipExisting {
		current, err := svc.ListRecipes(ctx, filter.Criteria{})
		if err != nil {
			return 0, err
		}
		for _, r := range current {
			existing[strings.ToLower(r.Name)] = true
		}
	}

	created := 0
	for _, r := range recipes {
		if existing[strings.ToLower(r.Name)] {
			fmt.Fprintf(out, "skip    %s (already present)\n", r.Name)
			continue
		}
		saved, err := svc.CreateRecipe(ctx, r)
		if err != nil {
			return created, fmt.Errorf("failed to create %q: %w", r.Name, err)
		}
		created++
		fmt.Fprintf(out, "created %s (%s)\n", saved.Name, saved.ID)
	}

	log.Info().Str("component", "seed").Int("created", created).Int("total", len(recipes)).Msg("Seeding finished")
	return created, nil
}
