// Copyright (c) 2026 ScoreHub. All rights reserved.

package genre

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

func (repository *PostgresRepository) ListGenres(context context.Context, f Filter, limit, offset int) ([]*Genre, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
	`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.Genre.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Genre.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Genre.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) GetGenreBySlug(context context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.Genre.Table, schema.Genre.Slug,
	)
	g := &Genre{}

	err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug)

	return g, dberr.Wrap(err, "get_genre")
}

func (repository *PostgresRepository) CreateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s
	`,
		schema.Genre.Table, schema.Genre.Name, schema.Genre.Slug,
		schema.Genre.ID,
	)

	err := repository.db.QueryRow(context, query, g.Name, g.Slug).Scan(&g.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) DeleteGenreBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Genre.Table, schema.Genre.Slug,
	)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
