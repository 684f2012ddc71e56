// Copyright (c) 2026 ScoreHub. All rights reserved.

package category

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

func (repository *PostgresRepository) ListCategories(context context.Context, f Filter, limit, offset int) ([]*Category, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
	`,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug,
		schema.Category.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Category.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Category.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug,
		schema.Category.Table, schema.Category.Slug,
	)
	c := &Category{}

	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug)

	return c, dberr.Wrap(err, "get_category")
}

func (repository *PostgresRepository) CreateCategory(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s
	`,
		schema.Category.Table, schema.Category.Name, schema.Category.Slug,
		schema.Category.ID,
	)

	err := repository.db.QueryRow(context, query, c.Name, c.Slug).Scan(&c.ID)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) DeleteCategoryBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Category.Table, schema.Category.Slug,
	)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
