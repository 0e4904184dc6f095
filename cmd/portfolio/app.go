package main

import (
	"context"
	"io"
	"log/slog"

	"portfolio-generator/internal/adapter/repository"
	"portfolio-generator/internal/config"
	"portfolio-generator/internal/infrastructure/migration"
	"portfolio-generator/internal/model"
	"portfolio-generator/internal/store"
	"portfolio-generator/internal/usecase"
	infra "portfolio-generator/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
)

// container wires the application for one command run.
type container struct {
	cfg  config.Config
	log  *slog.Logger
	pool *pgxpool.Pool

	jobs      *repository.JobsRepo
	registry  *repository.Registry
	session   *usecase.Session
	runner    *usecase.Runner
	processor *usecase.Processor
	cards     *usecase.CardBuilder
}

func newContainer(ctx context.Context, cfg config.Config, logOut io.Writer) *container {
	logger := config.NewLogger(logOut, cfg.Log.Level)
	slog.SetDefault(logger)

	c := &container{cfg: cfg, log: logger}

	// the generation log database is optional
	pool, err := infra.NewGenerationsPool(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Warn("generations DB not available", "error", err)
	} else if err := migration.RunMigrations(ctx, pool); err != nil {
		logger.Warn("generations DB migrations failed, disabling run log", "error", err)
		pool.Close()
		pool = nil
	}
	c.pool = pool
	c.jobs = repository.NewJobsRepo(pool)

	drafts := repository.NewDraftRepo(store.New(cfg.Paths.Draft, model.ShapeObject, logger), logger)
	c.registry = repository.NewRegistry(store.New(cfg.Paths.Registry, model.ShapeList, logger), logger)

	photos := infra.NewPhotoProcessor()
	charts := infra.NewChartPainter()
	paths := usecase.Paths{
		TemplateDir: cfg.Paths.Templates,
		OutputDir:   cfg.Paths.Output,
		UploadDir:   cfg.Paths.Uploads,
	}

	c.session = usecase.NewSession(drafts, c.registry, photos, cfg.Paths.Uploads, logger)
	c.runner = usecase.NewRunner()
	c.processor = usecase.NewProcessor(
		infra.NewChromedpRenderer(cfg.Chrome.Path),
		infra.NewFitzPreviewer(),
		charts,
		photos,
		c.jobs,
		paths,
		logger,
	)
	c.cards = usecase.NewCardBuilder(charts, paths.ChartDir(), logger)
	return c
}

func (c *container) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}
