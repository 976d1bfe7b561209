package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"AuthorWatch/internal/config"
	"AuthorWatch/internal/infrastructure/catalog"
	"AuthorWatch/internal/infrastructure/fetcher"
	"AuthorWatch/internal/infrastructure/parser"
	"AuthorWatch/internal/infrastructure/pushover"
	"AuthorWatch/internal/infrastructure/scheduler"
	"AuthorWatch/internal/infrastructure/storage"
	"AuthorWatch/internal/logging"
	"AuthorWatch/internal/scanner"
	"AuthorWatch/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	scheduler *usecase.Scheduler
}

// Options overrides infrastructure pieces, mostly for tests.
type Options struct {
	HTTPClient *http.Client
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	baseLogger = baseLogger.With("run_id", uuid.NewString())

	registry := scanner.NewRegistry()
	registry.Register(parser.NewAmazonExtractor(baseLogger.With("component", "extractor.amazon")))
	registry.Register(parser.NewCSSExtractor(cfg.Extractor.Selector, baseLogger.With("component", "extractor.css")))

	extractor, err := registry.Resolve(cfg.Extractor.Name)
	if err != nil {
		return nil, fmt.Errorf("resolve extractor: %w", err)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:   fetcher.NewHTTPFetcher(opts.HTTPClient, cfg.Fetch, baseLogger.With("component", "fetcher")),
		Extractor: extractor,
		Store:     storage.NewFileRepository(cfg.Authors.FilesDir, baseLogger.With("component", "store")),
		Notifier:  pushover.NewNotifier(cfg.Notifications.Pushover, baseLogger.With("component", "notifier")),
		Logger:    baseLogger.With("component", "pipeline"),
	})

	source := catalog.NewListSource(cfg.Authors.ListPath, cfg.Authors.Check, baseLogger.With("component", "authors"))
	driver := scheduler.NewIntervalScheduler(cfg.Scheduler.Interval)

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		scheduler: usecase.NewScheduler(driver, pipeline, source),
	}, nil
}

// Run performs one pass, or keeps passing every interval in watch mode.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("starting",
		"author_list", a.cfg.Authors.ListPath,
		"author_files", a.cfg.Authors.FilesDir,
		"author", a.cfg.Authors.Check,
		"extractor", a.cfg.Extractor.Name,
		"interval", a.cfg.Scheduler.Interval.String())

	return a.scheduler.Run(ctx)
}
