// Copyright (c) 2026 ScoreHub. All rights reserved.

package comment

import "time"

// Comment is a reply attached to a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"` // Username, resolved on read
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// Input carries the client-writable comment fields.
type Input struct {
	Text string `json:"text"`
}

// Global field names for validation
const (
	FieldText = "text"
)
