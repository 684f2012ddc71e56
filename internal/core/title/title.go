// Copyright (c) 2026 ScoreHub. All rights reserved.

package title

// Title is a reviewable work: a book, a film, an album.
//
// Rating is derived from review scores on every read and is never stored;
// it is null until the first review lands.
type Title struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Year        int          `json:"year"`
	Rating      *int         `json:"rating"`
	Description *string      `json:"description"`
	Genre       []GenreRef   `json:"genre"`
	Category    *CategoryRef `json:"category"`
}

// GenreRef is the nested genre representation embedded in title payloads.
type GenreRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRef is the nested category representation embedded in title payloads.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Input carries the client-writable fields of a title. Genre and category are
// referenced by slug; pointer fields distinguish "absent" from "zero" so the
// same type serves both create and partial update.
type Input struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// Filter holds the parameters for a filtered title listing.
type Filter struct {
	Genre    string // Genre slug
	Category string // Category slug
	Name     string // Substring match against name
	Year     *int   // Exact release year
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldGenre    = "genre"
	FieldCategory = "category"
)
