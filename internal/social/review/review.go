// Copyright (c) 2026 ScoreHub. All rights reserved.

package review

import "time"

// Review is a scored write-up of a title. Each author gets exactly one
// review per title; the constraint lives in the database.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"` // Username, resolved on read
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Input carries the client-writable review fields. Pointer fields
// distinguish "absent" from "zero" so PATCH can overlay partially.
type Input struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// Score bounds, inclusive.
const (
	ScoreMin = 1
	ScoreMax = 10
)

// Global field names for validation
const (
	FieldText  = "text"
	FieldScore = "score"
)
