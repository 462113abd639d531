package models

import "fmt"

// SortOrder selects the ordering of search results.
type SortOrder string

const (
	// SortNewest orders by creation time descending, id ascending on ties.
	SortNewest SortOrder = "newest"

	// SortOldest orders by creation time ascending, id ascending on ties.
	SortOldest SortOrder = "oldest"

	// SortDownloads orders by download count descending, name ascending on ties.
	SortDownloads SortOrder = "downloads"

	// SortAZ orders by name ascending (case-insensitive), id ascending on ties.
	SortAZ SortOrder = "az"
)

// DefaultSortOrder is applied when no sort is requested.
const DefaultSortOrder = SortNewest

// SearchCriteria filters a document snapshot. All fields are optional and
// combine with AND; within Tags a document matches if it carries at least
// one of the given tags (OR).
type SearchCriteria struct {
	// Text matches case-insensitively as a substring of name, description,
	// subject, or any tag.
	Text string

	// Exact-match filters.
	ClassLevel string
	Subject    string
	Year       string

	// Tags matches documents carrying at least one of these tags.
	Tags []string

	// Status restricts to one moderation state. Only honored on the admin
	// surface; public search always pins approved.
	Status DocumentStatus

	Sort SortOrder
}

// ApplyDefaults fills in default values for unset fields.
func (c *SearchCriteria) ApplyDefaults() {
	if c.Sort == "" {
		c.Sort = DefaultSortOrder
	}
}

// Validate checks that set fields carry known values.
func (c *SearchCriteria) Validate() error {
	switch c.Sort {
	case SortNewest, SortOldest, SortDownloads, SortAZ:
	default:
		return fmt.Errorf("unknown sort order: %q", c.Sort)
	}
	if c.Status != "" && !c.Status.Valid() {
		return fmt.Errorf("unknown status: %q", c.Status)
	}
	return nil
}
