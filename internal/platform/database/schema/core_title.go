package schema

// TitleTable represents the 'core.title' table
type TitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// Title is the schema definition for core.title
var Title = TitleTable{
	Table:       "core.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "category_id",
}

func (t TitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.Description, t.CategoryID}
}
