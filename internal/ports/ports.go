package ports

import (
	"context"
	"time"

	"AuthorWatch/internal/domain"
)

// AuthorSource yields the authors to check in one pass.
type AuthorSource interface {
	Authors(ctx context.Context) ([]domain.Author, error)
}

// ListingFetcher downloads the raw catalog page of an author.
type ListingFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// TitleExtractor pulls the advertised titles out of a fetched page.
type TitleExtractor interface {
	Extract(body string) (domain.TitleSet, error)
}

// KnownTitlesStore persists the titles already reported for each author.
type KnownTitlesStore interface {
	Load(ctx context.Context, author string) (domain.TitleSet, error)
	Append(ctx context.Context, author string, titles []string) error
}

// Notifier announces new titles for a single author.
type Notifier interface {
	Notify(ctx context.Context, author string, titles []string) error
}

// Scheduler repeats a job until the context ends or the job fails.
type Scheduler interface {
	Run(ctx context.Context, job func(context.Context, time.Time) error) error
}
