package schema

// ReviewTable represents the 'social.review' table
type ReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// Review is the schema definition for social.review
var Review = ReviewTable{
	Table:    "social.review",
	ID:       "id",
	TitleID:  "title_id",
	AuthorID: "author_id",
	Text:     "text",
	Score:    "score",
	PubDate:  "pub_date",
}

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}
