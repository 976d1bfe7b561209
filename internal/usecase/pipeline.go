package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"AuthorWatch/internal/domain"
	"AuthorWatch/internal/ports"
)

// PipelineDeps wires all driven adapters into the update cycle.
type PipelineDeps struct {
	Fetcher   ports.ListingFetcher
	Extractor ports.TitleExtractor
	Store     ports.KnownTitlesStore
	Notifier  ports.Notifier
	Logger    *slog.Logger
}

// Pipeline runs the per-author update cycle: load known titles, fetch and
// extract the current listing, diff, then append and notify.
type Pipeline struct {
	fetcher   ports.ListingFetcher
	extractor ports.TitleExtractor
	store     ports.KnownTitlesStore
	notifier  ports.Notifier
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		store:     deps.Store,
		notifier:  deps.Notifier,
		logger:    logger,
	}
}

// Run processes every author of source in order and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context, source ports.AuthorSource) error {
	if source == nil {
		return fmt.Errorf("author source is not configured")
	}

	authors, err := source.Authors(ctx)
	if err != nil {
		return fmt.Errorf("load authors: %w", err)
	}

	_, err = p.ProcessAll(ctx, authors)
	return err
}

// ProcessAll runs ProcessAuthor sequentially; remaining authors are skipped after an error.
func (p *Pipeline) ProcessAll(ctx context.Context, authors []domain.Author) ([]domain.Report, error) {
	reports := make([]domain.Report, 0, len(authors))
	for _, author := range authors {
		report, err := p.ProcessAuthor(ctx, author)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	p.logger.Info("pass finished", "authors", len(reports))
	return reports, nil
}

// ProcessAuthor runs one update cycle. Titles are persisted before the
// notification is sent, and neither happens when nothing is new.
func (p *Pipeline) ProcessAuthor(ctx context.Context, author domain.Author) (domain.Report, error) {
	report := domain.Report{Author: author}
	if p.fetcher == nil || p.extractor == nil || p.store == nil || p.notifier == nil {
		return report, fmt.Errorf("pipeline misconfigured")
	}

	known, err := p.store.Load(ctx, author.Name)
	if err != nil {
		return report, fmt.Errorf("load known titles for %s: %w", author.Name, err)
	}

	body, err := p.fetcher.Fetch(ctx, author.CatalogURL)
	if err != nil {
		return report, fmt.Errorf("fetch catalog for %s: %w", author.Name, err)
	}

	current, err := p.extractor.Extract(body)
	if err != nil {
		return report, fmt.Errorf("extract titles for %s: %w", author.Name, err)
	}
	report.Listed = current.Len()

	p.logger.Info("comparing known titles against catalog",
		"author", author.Name,
		"url", author.CatalogURL,
		"known", known.Len(),
		"listed", current.Len())

	fresh := domain.DetectNew(current, known)
	if fresh.Len() == 0 {
		p.logger.Warn("no new titles found", "author", author.Name)
		return report, nil
	}

	report.NewTitles = fresh.Sorted()

	p.logger.Info("writing new titles", "author", author.Name, "count", len(report.NewTitles))
	if err := p.store.Append(ctx, author.Name, report.NewTitles); err != nil {
		return report, fmt.Errorf("append titles for %s: %w", author.Name, err)
	}

	if err := p.notifier.Notify(ctx, author.Name, report.NewTitles); err != nil {
		return report, fmt.Errorf("notify %s: %w", author.Name, err)
	}

	return report, nil
}
