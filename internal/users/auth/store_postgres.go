// Copyright (c) 2026 ScoreHub. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scorehub/scorehub/internal/platform/database/schema"
	"github.com/scorehub/scorehub/internal/platform/dberr"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func userSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Role, schema.UserAccount.IsSuperuser,
		schema.UserAccount.LastLoginAt, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table,
	)
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := userSelect() + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.Username)

	u := &User{}
	err := repository.db.QueryRow(context, query, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.Role, &u.IsSuperuser, &u.LastLoginAt, &u.CreatedAt,
	)
	return u, dberr.Wrap(err, "find_user_by_username")
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := userSelect() + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.ID)

	u := &User{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.Role, &u.IsSuperuser, &u.LastLoginAt, &u.CreatedAt,
	)
	return u, dberr.Wrap(err, "find_user_by_id")
}

func (repository *PostgresUserRepository) FindByPair(context context.Context, username, email string) (*User, error) {
	query := userSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2",
		schema.UserAccount.Username, schema.UserAccount.Email,
	)

	u := &User{}
	err := repository.db.QueryRow(context, query, username, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.Role, &u.IsSuperuser, &u.LastLoginAt, &u.CreatedAt,
	)
	return u, dberr.Wrap(err, "find_user_by_pair")
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, user.Username, user.Email, user.Role).Scan(&user.ID, &user.CreatedAt)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) StampLastLogin(context context.Context, id int64) (time.Time, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.LastLoginAt,
		schema.UserAccount.ID,
		schema.UserAccount.LastLoginAt,
	)

	var stamped time.Time
	err := repository.db.QueryRow(context, query, id).Scan(&stamped)
	return stamped, dberr.Wrap(err, "stamp_last_login")
}
