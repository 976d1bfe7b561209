package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"AuthorWatch/internal/domain"
)

const (
	authorColumn = "author"
	urlColumn    = "url"

	// AllAuthors selects every row of the author list.
	AllAuthors = "all"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("author list is missing a required column")

// LoadAuthors reads the author list at path.
func LoadAuthors(path string) ([]domain.Author, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open author list: %w", err)
	}
	defer f.Close()

	authors, err := ReadAuthors(f)
	if err != nil {
		return nil, fmt.Errorf("author list %s: %w", path, err)
	}
	return authors, nil
}

// ReadAuthors parses CSV rows keyed by the "author" and "url" header columns.
// Extra columns are ignored and short rows leave missing fields empty.
func ReadAuthors(r io.Reader) ([]domain.Author, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	authorIdx, urlIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case authorColumn:
			if authorIdx < 0 {
				authorIdx = i
			}
		case urlColumn:
			if urlIdx < 0 {
				urlIdx = i
			}
		}
	}
	if authorIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, authorColumn)
	}
	if urlIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, urlColumn)
	}

	var authors []domain.Author
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		authors = append(authors, domain.Author{
			Name:       field(record, authorIdx),
			CatalogURL: field(record, urlIdx),
		})
	}

	return authors, nil
}

// Select returns every author for AllAuthors, otherwise the first author named name.
func Select(authors []domain.Author, name string) []domain.Author {
	if name == "" || name == AllAuthors {
		return authors
	}
	for _, a := range authors {
		if a.Name == name {
			return []domain.Author{a}
		}
	}
	return nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		_ = br.UnreadRune()
	}
	return br
}
