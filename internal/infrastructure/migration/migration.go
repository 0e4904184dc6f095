package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations prepares the optional generation log tables.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return nil
	}
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations returns the schema steps in the order they must run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_portfolio_generations", Up: createPortfolioGenerations},
		{Name: "index_portfolio_generations_email", Up: indexPortfolioGenerationsEmail},
	}
}

func createPortfolioGenerations(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS portfolio_generations (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			metadata JSONB DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func indexPortfolioGenerationsEmail(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE INDEX IF NOT EXISTS idx_portfolio_generations_email
		ON portfolio_generations (email, created_at DESC);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		// the table is usable without the index
		slog.Warn("Error creating generations index", "error", err)
	}
	return nil
}
