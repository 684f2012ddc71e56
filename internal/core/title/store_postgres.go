// Copyright (c) 2026 ScoreHub. All rights reserved.

package title

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/database/schema"
	"github.com/scorehub/scorehub/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// titleSelect is the shared projection for title reads: the row itself, the
// joined category, and the review aggregate the rating is derived from.
func titleSelect() string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, c.%s, c.%s,
			(SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = t.%s),
			(SELECT COUNT(*) FROM %s WHERE %s = t.%s)
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
	`,
		schema.Title.ID, schema.Title.Name, schema.Title.Year, schema.Title.Description,
		schema.Category.Name, schema.Category.Slug,
		schema.Review.Score, schema.Review.Table, schema.Review.TitleID, schema.Title.ID,
		schema.Review.Table, schema.Review.TitleID, schema.Title.ID,
		schema.Title.Table,
		schema.Category.Table, schema.Category.ID, schema.Title.CategoryID,
	)
}

func scanTitle(row pgx.Row) (*Title, error) {
	t := &Title{}
	var categoryName, categorySlug *string
	var scoreSum, reviewCount int64

	if err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &categoryName, &categorySlug, &scoreSum, &reviewCount); err != nil {
		return nil, err
	}

	if categorySlug != nil {
		t.Category = &CategoryRef{Name: *categoryName, Slug: *categorySlug}
	}
	t.Rating = computeRating(scoreSum, reviewCount)
	return t, nil
}

func (repository *PostgresRepository) ListTitles(context context.Context, f Filter, limit, offset int) ([]*Title, int, error) {
	query := titleSelect()
	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
	`,
		schema.Title.Table,
		schema.Category.Table, schema.Category.ID, schema.Title.CategoryID,
	)

	where := ""
	args := []any{}

	appendClause := func(clause string, value any) {
		args = append(args, value)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if f.Genre != "" {
		appendClause(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM %s tg
			JOIN %s g ON g.%s = tg.%s
			WHERE tg.%s = t.%s AND g.%s = $%%d)`,
			schema.TitleGenre.Table,
			schema.Genre.Table, schema.Genre.ID, schema.TitleGenre.GenreID,
			schema.TitleGenre.TitleID, schema.Title.ID, schema.Genre.Slug,
		), f.Genre)
	}
	if f.Category != "" {
		appendClause(fmt.Sprintf("c.%s = $%%d", schema.Category.Slug), f.Category)
	}
	if f.Name != "" {
		appendClause(fmt.Sprintf("t.%s ILIKE $%%d", schema.Title.Name), "%"+f.Name+"%")
	}
	if f.Year != nil {
		appendClause(fmt.Sprintf("t.%s = $%%d", schema.Title.Year), *f.Year)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query += where + fmt.Sprintf(" ORDER BY t.%s ASC LIMIT $%d OFFSET $%d", schema.Title.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	var titles []*Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetTitle(context context.Context, id int64) (*Title, error) {
	query := titleSelect() + fmt.Sprintf(" WHERE t.%s = $1", schema.Title.ID)

	t, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_title")
	}

	if err := repository.attachGenres(context, []*Title{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTitle(context context.Context, t *Title, categorySlug *string, genreSlugs []string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_title_begin")
	}
	defer tx.Rollback(context)

	categoryID, categoryRef, err := resolveCategory(context, tx, categorySlug)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.Title.Table, schema.Title.Name, schema.Title.Year, schema.Title.Description, schema.Title.CategoryID,
		schema.Title.ID,
	)
	if err := tx.QueryRow(context, query, t.Name, t.Year, t.Description, categoryID).Scan(&t.ID); err != nil {
		return dberr.Wrap(err, "create_title")
	}

	genreRefs, err := replaceGenres(context, tx, t.ID, genreSlugs)
	if err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "create_title_commit")
	}

	t.Category = categoryRef
	t.Genre = genreRefs
	t.Rating = nil
	return nil
}

func (repository *PostgresRepository) UpdateTitle(context context.Context, t *Title, categorySlug *string, genreSlugs []string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_title_begin")
	}
	defer tx.Rollback(context)

	categoryID, categoryRef, err := resolveCategory(context, tx, categorySlug)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.Title.Table, schema.Title.Name, schema.Title.Year, schema.Title.Description, schema.Title.CategoryID,
		schema.Title.ID,
	)
	cmd, err := tx.Exec(context, query, t.ID, t.Name, t.Year, t.Description, categoryID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// nil means "leave the genre set untouched", an empty slice clears it.
	genreRefs := t.Genre
	if genreSlugs != nil {
		genreRefs, err = replaceGenres(context, tx, t.ID, genreSlugs)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "update_title_commit")
	}

	t.Category = categoryRef
	t.Genre = genreRefs
	return nil
}

func (repository *PostgresRepository) DeleteTitle(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Title.Table, schema.Title.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// attachGenres loads the nested genre refs for a batch of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(titles))
	byID := make(map[int64]*Title, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
		byID[t.ID] = t
		t.Genre = []GenreRef{}
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		schema.TitleGenre.TitleID, schema.Genre.Name, schema.Genre.Slug,
		schema.TitleGenre.Table,
		schema.Genre.Table, schema.Genre.ID, schema.TitleGenre.GenreID,
		schema.TitleGenre.TitleID,
		schema.Genre.Name,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var ref GenreRef
		if err := rows.Scan(&titleID, &ref.Name, &ref.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		byID[titleID].Genre = append(byID[titleID].Genre, ref)
	}
	return nil
}

// resolveCategory maps a category slug to its ID inside the transaction.
// An unknown slug is a client error, not an FK blowup.
func resolveCategory(context context.Context, tx pgx.Tx, categorySlug *string) (*int64, *CategoryRef, error) {
	if categorySlug == nil {
		return nil, nil, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Category.ID, schema.Category.Name,
		schema.Category.Table, schema.Category.Slug,
	)

	var id int64
	var name string
	err := tx.QueryRow(context, query, *categorySlug).Scan(&id, &name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCategory,
			Message: fmt.Sprintf("Category %q does not exist", *categorySlug),
		})
	}
	if err != nil {
		return nil, nil, dberr.Wrap(err, "resolve_category")
	}

	return &id, &CategoryRef{Name: name, Slug: *categorySlug}, nil
}

// replaceGenres rewrites the genre set of a title inside the transaction.
func replaceGenres(context context.Context, tx pgx.Tx, titleID int64, genreSlugs []string) ([]GenreRef, error) {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.TitleGenre.Table, schema.TitleGenre.TitleID,
	)
	if _, err := tx.Exec(context, deleteQuery, titleID); err != nil {
		return nil, dberr.Wrap(err, "clear_title_genres")
	}

	lookupQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Genre.ID, schema.Genre.Name,
		schema.Genre.Table, schema.Genre.Slug,
	)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.TitleGenre.Table, schema.TitleGenre.TitleID, schema.TitleGenre.GenreID,
	)

	refs := make([]GenreRef, 0, len(genreSlugs))
	for _, slug := range genreSlugs {
		var id int64
		var name string
		err := tx.QueryRow(context, lookupQuery, slug).Scan(&id, &name)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldGenre,
				Message: fmt.Sprintf("Genre %q does not exist", slug),
			})
		}
		if err != nil {
			return nil, dberr.Wrap(err, "resolve_genre")
		}

		if _, err := tx.Exec(context, insertQuery, titleID, id); err != nil {
			return nil, dberr.Wrap(err, "link_title_genre")
		}
		refs = append(refs, GenreRef{Name: name, Slug: slug})
	}
	return refs, nil
}
