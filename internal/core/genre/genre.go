// Copyright (c) 2026 ScoreHub. All rights reserved.

package genre

// Genre tags a title with a narrative style, e.g. "Drama", "Rock".
// A title may carry any number of genres.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the parameters for a paginated genre search.
type Filter struct {
	Search string // Substring match against name
}

// Global field names for validation
const (
	FieldName = "name"
	FieldSlug = "slug"
)
