package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Role        string
	IsSuperuser string
	FirstName   string
	LastName    string
	Bio         string
	LastLoginAt string
	CreatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Role:        "role",
	IsSuperuser: "is_superuser",
	FirstName:   "first_name",
	LastName:    "last_name",
	Bio:         "bio",
	LastLoginAt: "last_login_at",
	CreatedAt:   "created_at",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Role, t.IsSuperuser,
		t.FirstName, t.LastName, t.Bio, t.LastLoginAt, t.CreatedAt,
	}
}
