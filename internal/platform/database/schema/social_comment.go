package schema

// CommentTable represents the 'social.comment' table
type CommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// Comment is the schema definition for social.comment
var Comment = CommentTable{
	Table:    "social.comment",
	ID:       "id",
	ReviewID: "review_id",
	AuthorID: "author_id",
	Text:     "text",
	PubDate:  "pub_date",
}

func (t CommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate}
}
