// Copyright (c) 2026 ScoreHub. All rights reserved.

package category

// Category groups titles by medium, e.g. "Books", "Films", "Music".
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the parameters for a paginated category search.
type Filter struct {
	Search string // Substring match against name
}

// Global field names for validation
const (
	FieldName = "name"
	FieldSlug = "slug"
)
