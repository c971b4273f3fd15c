package main

import (
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pageza/mealbook/backend/config"
	"github.com/pageza/mealbook/backend/internal/database"
	"github.com/pageza/mealbook/backend/internal/logger"
	"github.com/pageza/mealbook/backend/migrations"
)

var (
	migrationsDir string
	rootCmd       = &cobra.Command{
		Use:   "migrate",
		Short: "Manage the mealbook database schema and image bucket",
	}
)

func main() {
	logger.New("mealbook-migrate", os.Getenv("MEALBOOK_LOG_LEVEL"), true)

	rootCmd.PersistentFlags().StringVarP(&migrationsDir, "dir", "d", "", "Read migrations from this directory instead of the embedded set")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db, migrationSource()); err != nil {
				return err
			}
			return printStatus(db, cmd.OutOrStdout())
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			return printStatus(db, cmd.OutOrStdout())
		},
	}

	bucketCmd := &cobra.Command{
		Use:   "bucket",
		Short: "Apply the public-read policy to the image bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			s3Config, err := config.NewS3Config(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := s3Config.SetupBucketPolicy(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Public read policy applied to %s\n", s3Config.BucketName)
			return nil
		},
	}

	rootCmd.AddCommand(upCmd, statusCmd, bucketCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrationSource() fs.FS {
	if migrationsDir != "" {
		return os.DirFS(migrationsDir)
	}
	return migrations.FS
}

// openDatabase connects with database/sql and lib/pq for postgres so the
// migration tool does not need the pgx pool settings of the API server
func openDatabase() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver != "postgres" {
		return database.New(cfg)
	}

	sqlDB, err := sql.Open("postgres", cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Str("component", "migrate").Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("Connected")

	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
}

func printStatus(db *gorm.DB, out io.Writer) error {
	if db.Dialector.Name() == "sqlite" {
		fmt.Fprintln(out, "SQLite schema is managed by auto-migration")
		return nil
	}

	applied, err := database.AppliedMigrations(db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "No migrations applied")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
	for _, m := range applied {
		fmt.Fprintf(w, "%s\t%s\n", m.Name, m.AppliedAt)
	}
	return w.Flush()
}
