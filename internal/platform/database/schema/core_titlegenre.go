package schema

// TitleGenreTable represents the 'core.title_genre' association table
type TitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// TitleGenre is the schema definition for core.title_genre
var TitleGenre = TitleGenreTable{
	Table:   "core.title_genre",
	TitleID: "title_id",
	GenreID: "genre_id",
}

func (t TitleGenreTable) Columns() []string {
	return []string{t.TitleID, t.GenreID}
}
