// Copyright (c) 2026 ScoreHub. All rights reserved.

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scorehub/scorehub/internal/platform/database/schema"
	"github.com/scorehub/scorehub/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func accountSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
		schema.UserAccount.Role, schema.UserAccount.IsSuperuser,
		schema.UserAccount.Table,
	)
}

func scanAccount(row interface{ Scan(...any) error }) (*Account, error) {
	a := &Account{}
	err := row.Scan(
		&a.ID, &a.Username, &a.Email,
		&a.FirstName, &a.LastName, &a.Bio,
		&a.Role, &a.IsSuperuser,
	)
	return a, err
}

func (repository *PostgresRepository) ListAccounts(context context.Context, search string, limit, offset int) ([]*Account, int, error) {
	query := accountSelect()
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.UserAccount.Table)

	args := []any{}
	countArgs := []any{}

	if search != "" {
		searchTerm := "%" + search + "%"
		query += fmt.Sprintf(" WHERE %s ILIKE $1", schema.UserAccount.Username)
		countQuery += fmt.Sprintf(" WHERE %s ILIKE $1", schema.UserAccount.Username)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.UserAccount.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_accounts")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, a)
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) GetByUsername(context context.Context, username string) (*Account, error) {
	query := accountSelect() + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.Username)

	a, err := scanAccount(repository.db.QueryRow(context, query, username))
	return a, dberr.Wrap(err, "get_account_by_username")
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Account, error) {
	query := accountSelect() + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.ID)

	a, err := scanAccount(repository.db.QueryRow(context, query, id))
	return a, dberr.Wrap(err, "get_account_by_id")
}

func (repository *PostgresRepository) Create(context context.Context, a *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
		schema.UserAccount.Role, schema.UserAccount.CreatedAt,
		schema.UserAccount.ID,
	)

	err := repository.db.QueryRow(context, query,
		a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role,
	).Scan(&a.ID)
	return dberr.Wrap(err, "create_account")
}

func (repository *PostgresRepository) Update(context context.Context, a *Account) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
		schema.UserAccount.Role,
		schema.UserAccount.ID,
	)

	cmd, err := repository.db.Exec(context, query,
		a.ID, a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role,
	)
	if err != nil {
		return dberr.Wrap(err, "update_account")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteByUsername(context context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Username,
	)

	cmd, err := repository.db.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
