// Copyright (c) 2026 ScoreHub. All rights reserved.

// Package load implements the bulk CSV importer used to seed the database.
//
// Files are loaded in FK dependency order. Reference data (categories, genres,
// titles, users) is inserted create-if-absent by ID, so re-running the loader
// is safe for those tables. Reviews and comments are inserted unconditionally
// and will abort a re-run on their primary keys; this mirrors the behavior of
// the original seed tooling and is intentional.
package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scorehub/scorehub/internal/platform/database/schema"
)

// File names expected inside the import directory.
const (
	FileCategories = "category.csv"
	FileGenres     = "genre.csv"
	FileTitles     = "titles.csv"
	FileGenreTitle = "genre_title.csv"
	FileUsers      = "users.csv"
	FileReviews    = "review.csv"
	FileComments   = "comments.csv"
)

// execer is the slice of the pgx pool the loader needs. A pgxpool.Pool
// satisfies it directly.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Loader struct {
	db     execer
	dir    string
	logger *slog.Logger
}

func New(db execer, dir string, logger *slog.Logger) *Loader {
	return &Loader{db: db, dir: dir, logger: logger}
}

// Run executes every load step in FK order. The first failing row aborts the
// run; earlier steps are not rolled back.
func (loader *Loader) Run(ctx context.Context) error {
	steps := []struct {
		file string
		load func(ctx context.Context, file string) (int, error)
	}{
		{FileCategories, loader.loadCategories},
		{FileGenres, loader.loadGenres},
		{FileTitles, loader.loadTitles},
		{FileGenreTitle, loader.loadGenreTitle},
		{FileUsers, loader.loadUsers},
		{FileReviews, loader.loadReviews},
		{FileComments, loader.loadComments},
	}

	for _, step := range steps {
		path := filepath.Join(loader.dir, step.file)
		count, err := step.load(ctx, path)
		if err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
		loader.logger.Info("load_step_done", slog.String("file", step.file), slog.Int("rows", count))
	}

	if err := loader.syncSequences(ctx); err != nil {
		return err
	}

	loader.logger.Info("load_complete")
	return nil
}

func (loader *Loader) loadCategories(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.Category.Table, schema.Category.ID, schema.Category.Name, schema.Category.Slug,
		schema.Category.ID,
	)

	return loader.forEachRow(ctx, path, []string{"id", "name", "slug"}, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query, row.get("id"), row.get("name"), row.get("slug"))
		return err
	})
}

func (loader *Loader) loadGenres(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.Genre.Table, schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.Genre.ID,
	)

	return loader.forEachRow(ctx, path, []string{"id", "name", "slug"}, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query, row.get("id"), row.get("name"), row.get("slug"))
		return err
	})
}

func (loader *Loader) loadTitles(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.Title.Table, schema.Title.ID, schema.Title.Name, schema.Title.Year, schema.Title.CategoryID,
		schema.Title.ID,
	)

	return loader.forEachRow(ctx, path, []string{"id", "name", "year", "category"}, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query, row.get("id"), row.get("name"), row.get("year"), row.get("category"))
		return err
	})
}

// loadGenreTitle links titles to genres. A row naming an unloaded title or
// genre fails on the FK constraint and aborts the run.
func (loader *Loader) loadGenreTitle(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.TitleGenre.Table, schema.TitleGenre.TitleID, schema.TitleGenre.GenreID,
		schema.TitleGenre.TitleID, schema.TitleGenre.GenreID,
	)

	return loader.forEachRow(ctx, path, []string{"title_id", "genre_id"}, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query, row.get("title_id"), row.get("genre_id"))
		return err
	})
}

func (loader *Loader) loadUsers(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Role, schema.UserAccount.Bio,
		schema.UserAccount.FirstName, schema.UserAccount.LastName,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.ID,
	)

	// bio and the name columns are commonly blank in exports, so they are not
	// part of the required set.
	columns := []string{"id", "username", "email", "role"}
	return loader.forEachRow(ctx, path, columns, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query,
			row.get("id"), row.get("username"), row.get("email"),
			row.get("role"), row.get("bio"),
			row.get("first_name"), row.get("last_name"),
		)
		return err
	})
}

func (loader *Loader) loadReviews(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.Review.Table,
		schema.Review.ID, schema.Review.TitleID, schema.Review.Text,
		schema.Review.AuthorID, schema.Review.Score, schema.Review.PubDate,
	)

	columns := []string{"id", "title_id", "text", "author", "score", "pub_date"}
	return loader.forEachRow(ctx, path, columns, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query,
			row.get("id"), row.get("title_id"), row.get("text"),
			row.get("author"), row.get("score"), row.get("pub_date"),
		)
		return err
	})
}

func (loader *Loader) loadComments(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.Comment.Table,
		schema.Comment.ID, schema.Comment.Text, schema.Comment.AuthorID,
		schema.Comment.ReviewID, schema.Comment.PubDate,
	)

	columns := []string{"id", "text", "author", "review_id", "pub_date"}
	return loader.forEachRow(ctx, path, columns, func(ctx context.Context, row rowReader) error {
		_, err := loader.db.Exec(ctx, query,
			row.get("id"), row.get("text"), row.get("author"),
			row.get("review_id"), row.get("pub_date"),
		)
		return err
	})
}

// syncSequences realigns identity sequences after explicit-ID inserts so the
// API can keep creating rows afterwards.
func (loader *Loader) syncSequences(ctx context.Context) error {
	tables := []struct{ table, id string }{
		{schema.Category.Table, schema.Category.ID},
		{schema.Genre.Table, schema.Genre.ID},
		{schema.Title.Table, schema.Title.ID},
		{schema.UserAccount.Table, schema.UserAccount.ID},
		{schema.Review.Table, schema.Review.ID},
		{schema.Comment.Table, schema.Comment.ID},
	}

	for _, t := range tables {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 1)) FROM %s`,
			t.table, t.id, t.id, t.table,
		)
		if _, err := loader.db.Exec(ctx, query); err != nil {
			return fmt.Errorf("sync sequence for %s: %w", t.table, err)
		}
	}
	return nil
}

// # CSV plumbing

// rowReader resolves named columns for one CSV record.
type rowReader struct {
	index  map[string]int
	record []string
}

func (r rowReader) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

// forEachRow streams a CSV file through fn. The header row must contain every
// required column, and no field may be empty; either failure aborts the load.
func (loader *Loader) forEachRow(
	ctx context.Context,
	path string,
	required []string,
	fn func(ctx context.Context, row rowReader) error,
) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, column := range required {
		if _, ok := index[column]; !ok {
			return 0, fmt.Errorf("missing required column %q", column)
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}

		row := rowReader{index: index, record: record}
		for _, column := range required {
			if row.get(column) == "" {
				return count, fmt.Errorf("row %d: missing required field %q", count+1, column)
			}
		}

		if err := fn(ctx, row); err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}

	return count, nil
}
