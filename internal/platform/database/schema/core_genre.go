package schema

// GenreTable represents the 'core.genre' table
type GenreTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// Genre is the schema definition for core.genre
var Genre = GenreTable{
	Table: "core.genre",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t GenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
