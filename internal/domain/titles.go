package domain

import (
	"sort"
	"strings"
)

// TitleSet is a set of book titles compared by exact string equality.
type TitleSet map[string]struct{}

// NewTitleSet trims every title and drops the ones left empty.
func NewTitleSet(titles ...string) TitleSet {
	set := make(TitleSet, len(titles))
	for _, title := range titles {
		set.Add(title)
	}
	return set
}

// Add inserts the trimmed title; empty titles are ignored.
func (s TitleSet) Add(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	s[title] = struct{}{}
}

// Contains reports whether the trimmed title is in the set.
func (s TitleSet) Contains(title string) bool {
	_, ok := s[strings.TrimSpace(title)]
	return ok
}

// Len returns the number of titles.
func (s TitleSet) Len() int {
	return len(s)
}

// Sorted returns the titles in lexical order.
func (s TitleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for title := range s {
		out = append(out, title)
	}
	sort.Strings(out)
	return out
}

// DetectNew returns the titles of current that are absent from known.
// Neither input is modified.
func DetectNew(current, known TitleSet) TitleSet {
	fresh := make(TitleSet)
	for title := range current {
		if _, seen := known[title]; seen {
			continue
		}
		fresh[title] = struct{}{}
	}
	return fresh
}
