package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"AuthorWatch/internal/domain"
	"AuthorWatch/internal/ports"
)

// ErrInvalidAuthorName is returned when an author name cannot be used as a file name.
var ErrInvalidAuthorName = errors.New("author name is not a valid file name")

// ErrMultilineTitle is returned when a title would not survive the one-title-per-line format.
var ErrMultilineTitle = errors.New("title contains a line break")

// FileRepository keeps one plain-text file per author, one title per line.
// Files are only ever appended to.
type FileRepository struct {
	dir    string
	logger *slog.Logger
}

var _ ports.KnownTitlesStore = (*FileRepository)(nil)

// NewFileRepository stores author files under dir.
func NewFileRepository(dir string, log *slog.Logger) *FileRepository {
	return &FileRepository{dir: dir, logger: log}
}

// Load reads the known titles of author, creating an empty file when none exists.
func (r *FileRepository) Load(ctx context.Context, author string) (domain.TitleSet, error) {
	path, err := r.pathFor(author)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		r.warn("no author file found, creating new file", "author", author, "path", path)
		if err := r.create(path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat author file %s: %w", path, err)
	}

	r.debug("reading author file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open author file %s: %w", path, err)
	}
	defer f.Close()

	known := domain.NewTitleSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		known.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read author file %s: %w", path, err)
	}

	return known, nil
}

// Append writes titles to the end of the author's file in the given order.
func (r *FileRepository) Append(ctx context.Context, author string, titles []string) error {
	path, err := r.pathFor(author)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, title := range titles {
		if strings.ContainsAny(title, "\r\n") {
			return fmt.Errorf("%w: %q", ErrMultilineTitle, title)
		}
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create author directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open author file %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, title := range titles {
		r.debug("adding title to author file", "title", title, "path", path)
		if _, err := w.WriteString(title + "\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("write author file %s: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush author file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close author file %s: %w", path, err)
	}

	return nil
}

func (r *FileRepository) create(path string) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create author directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create author file %s: %w", path, err)
	}
	return f.Close()
}

func (r *FileRepository) pathFor(author string) (string, error) {
	name := strings.TrimSpace(author)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAuthorName, author)
	}
	return filepath.Join(r.dir, author), nil
}

func (r *FileRepository) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *FileRepository) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
