package domain

// Author is a monitored author loaded from the author list.
type Author struct {
	Name       string
	CatalogURL string
}

// Report describes the outcome of one author's update cycle.
type Report struct {
	Author    Author
	Listed    int
	NewTitles []string
}

// HasNew reports whether the cycle discovered any unseen titles.
func (r Report) HasNew() bool {
	return len(r.NewTitles) > 0
}
