package catalog

import (
	"context"
	"log/slog"

	"AuthorWatch/internal/domain"
	"AuthorWatch/internal/ports"
)

// ListSource re-reads the author list on every pass and applies the author filter.
type ListSource struct {
	path   string
	check  string
	logger *slog.Logger
}

var _ ports.AuthorSource = (*ListSource)(nil)

// NewListSource builds a source over the list at path. The file is read on
// each Authors call and filtered by check.
func NewListSource(path, check string, log *slog.Logger) *ListSource {
	return &ListSource{path: path, check: check, logger: log}
}

// Authors loads and filters the author list.
func (s *ListSource) Authors(ctx context.Context) ([]domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("parsing the author list", "path", s.path)
	}

	all, err := LoadAuthors(s.path)
	if err != nil {
		return nil, err
	}

	selected := Select(all, s.check)
	if len(selected) == 0 && s.logger != nil {
		if s.check != "" && s.check != AllAuthors {
			s.logger.Warn("author not found in author list", "author", s.check, "path", s.path)
		} else {
			s.logger.Warn("author list is empty", "path", s.path)
		}
	}

	return selected, nil
}
