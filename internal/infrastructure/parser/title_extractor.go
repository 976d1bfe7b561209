package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"AuthorWatch/internal/domain"
	"AuthorWatch/internal/ports"
	"AuthorWatch/internal/scanner"
)

const (
	// AmazonExtractorName selects the built-in author catalog layout.
	AmazonExtractorName = "amazon"
	// CSSExtractorName selects an extractor driven by a configured selector.
	CSSExtractorName = "css"

	amazonTitleSelector = "span.a-size-medium"
)

// SelectorExtractor collects the text of every element matching a CSS selector.
type SelectorExtractor struct {
	name     string
	selector string
	logger   *slog.Logger
}

var (
	_ ports.TitleExtractor = (*SelectorExtractor)(nil)
	_ scanner.Extractor    = (*SelectorExtractor)(nil)
)

// NewAmazonExtractor matches the title spans of an author's catalog page.
func NewAmazonExtractor(log *slog.Logger) *SelectorExtractor {
	return &SelectorExtractor{name: AmazonExtractorName, selector: amazonTitleSelector, logger: log}
}

// NewCSSExtractor uses selector, falling back to the catalog layout when empty.
func NewCSSExtractor(selector string, log *slog.Logger) *SelectorExtractor {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = amazonTitleSelector
	}
	return &SelectorExtractor{name: CSSExtractorName, selector: selector, logger: log}
}

// Name identifies the strategy inside the registry.
func (e *SelectorExtractor) Name() string {
	return e.name
}

// Extract parses body and returns the non-empty element texts with inner
// whitespace collapsed to single spaces.
func (e *SelectorExtractor) Extract(body string) (domain.TitleSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	titles := domain.NewTitleSet()
	matches := doc.Find(e.selector)
	matches.Each(func(_ int, s *goquery.Selection) {
		titles.Add(strings.Join(strings.Fields(s.Text()), " "))
	})

	if e.logger != nil {
		e.logger.Debug("extracted titles", "selector", e.selector, "matches", matches.Length(), "titles", titles.Sorted())
	}

	return titles, nil
}
