package database

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pageza/mealbook/backend/internal/model"
)

// Migration is an applied schema migration
type Migration struct {
	Name      string
	AppliedAt string
}

// RunMigrations brings the schema up to date. SQLite uses GORM
// auto-migration; postgres executes the *.sql files in migrations in name
// order, recording each one in the migrations table.
func RunMigrations(db *gorm.DB, migrations fs.FS) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info().Str("component", "migrate").Msg("Using GORM auto-migration for SQLite")
		return db.AutoMigrate(&model.Recipe{}, &model.MealLog{})
	}

	names, err := migrationFiles(migrations)
	if err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, name := range names {
		var count int64
		if err := db.Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug().Str("component", "migrate").Str("migration", name).Msg("Skipping migration (already applied)")
			continue
		}

		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info().Str("component", "migrate").Str("migration", name).Msg("Applied migration")
	}

	return nil
}

// AppliedMigrations lists the migrations recorded in the migrations table
func AppliedMigrations(db *gorm.DB) ([]Migration, error) {
	var applied []Migration
	err := db.Table("migrations").
		Select("name, CAST(applied_at AS TEXT) AS applied_at").
		Order("name").
		Scan(&applied).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	return applied, nil
}

func migrationFiles(migrations fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
