// Copyright (c) 2026 ScoreHub. All rights reserved.

package load

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/database/schema"
)

// fakeDB records every executed statement and can inject a failure.
type fakeDB struct {
	execs []string
	fail  func(sql string) error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if f.fail != nil {
		if err := f.fail(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) hit(table string) bool {
	for _, sql := range f.execs {
		if strings.Contains(sql, table) {
			return true
		}
	}
	return false
}

// writeSeedDir lays out one minimal valid row per import file.
func writeSeedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeCSV(t, dir, FileCategories, "id,name,slug\n1,Books,books\n")
	writeCSV(t, dir, FileGenres, "id,name,slug\n1,Drama,drama\n")
	writeCSV(t, dir, FileTitles, "id,name,year,category\n1,Hamlet,1601,1\n")
	writeCSV(t, dir, FileGenreTitle, "title_id,genre_id\n1,1\n")
	writeCSV(t, dir, FileUsers, "id,username,email,role\n1,sam,sam@example.com,user\n")
	writeCSV(t, dir, FileReviews, "id,title_id,text,author,score,pub_date\n1,1,Fine,1,7,2024-01-01T00:00:00Z\n")
	writeCSV(t, dir, FileComments, "id,text,author,review_id,pub_date\n1,Agreed,1,1,2024-01-02T00:00:00Z\n")

	return dir
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLoader() *Loader {
	return New(nil, "", discardLogger())
}

/*
TestForEachRow covers the CSV contract: header validation, empty-field
aborts, and row accounting.
*/
func TestForEachRow(t *testing.T) {
	ctx := context.Background()

	t.Run("streams_all_rows", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCSV(t, dir, "category.csv", "id,name,slug\n1,Books,books\n2,Films,films\n")

		var seen []string
		count, err := testLoader().forEachRow(ctx, path, []string{"id", "name", "slug"}, func(_ context.Context, row rowReader) error {
			seen = append(seen, row.get("slug"))
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"books", "films"}, seen)
	})

	t.Run("missing_column_aborts", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCSV(t, dir, "category.csv", "id,name\n1,Books\n")

		_, err := testLoader().forEachRow(ctx, path, []string{"id", "name", "slug"}, func(_ context.Context, _ rowReader) error {
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "slug")
	})

	t.Run("empty_required_field_aborts", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCSV(t, dir, "category.csv", "id,name,slug\n1,Books,books\n2,,films\n")

		count, err := testLoader().forEachRow(ctx, path, []string{"id", "name", "slug"}, func(_ context.Context, _ rowReader) error {
			return nil
		})

		require.Error(t, err)
		assert.Equal(t, 1, count)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("extra_columns_are_ignored", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCSV(t, dir, "users.csv", "id,username,email,notes\n1,sam,sam@example.com,hi\n")

		count, err := testLoader().forEachRow(ctx, path, []string{"id", "username", "email"}, func(_ context.Context, row rowReader) error {
			assert.Equal(t, "sam", row.get("username"))
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("missing_file_errors", func(t *testing.T) {
		_, err := testLoader().forEachRow(ctx, filepath.Join(t.TempDir(), "nope.csv"), []string{"id"}, func(_ context.Context, _ rowReader) error {
			return nil
		})
		assert.Error(t, err)
	})
}

/*
TestRun covers the import as a whole: FK dependency order, the
sequence realignment at the end, and the abort on a constraint failure
mid-sequence.
*/
func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("steps_run_in_dependency_order", func(t *testing.T) {
		dir := writeSeedDir(t)
		db := &fakeDB{}
		require.NoError(t, New(db, dir, discardLogger()).Run(ctx))

		// One insert per seed row plus one setval per identity table.
		assert.Len(t, db.execs, 13)

		// title_genre is checked before title because the former contains
		// the latter as a substring.
		classify := func(sql string) string {
			switch {
			case strings.Contains(sql, "setval"):
				return "setval"
			case strings.Contains(sql, schema.TitleGenre.Table):
				return schema.TitleGenre.Table
			case strings.Contains(sql, schema.Title.Table):
				return schema.Title.Table
			case strings.Contains(sql, schema.Category.Table):
				return schema.Category.Table
			case strings.Contains(sql, schema.Genre.Table):
				return schema.Genre.Table
			case strings.Contains(sql, schema.UserAccount.Table):
				return schema.UserAccount.Table
			case strings.Contains(sql, schema.Review.Table):
				return schema.Review.Table
			case strings.Contains(sql, schema.Comment.Table):
				return schema.Comment.Table
			}
			return "unknown"
		}

		var order []string
		for _, sql := range db.execs {
			kind := classify(sql)
			if kind != "setval" && (len(order) == 0 || order[len(order)-1] != kind) {
				order = append(order, kind)
			}
		}

		assert.Equal(t, []string{
			schema.Category.Table,
			schema.Genre.Table,
			schema.Title.Table,
			schema.TitleGenre.Table,
			schema.UserAccount.Table,
			schema.Review.Table,
			schema.Comment.Table,
		}, order)
	})

	t.Run("fk_violation_aborts_at_genre_title", func(t *testing.T) {
		dir := writeSeedDir(t)
		db := &fakeDB{
			fail: func(sql string) error {
				if strings.Contains(sql, schema.TitleGenre.Table) {
					return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
				}
				return nil
			},
		}

		err := New(db, dir, discardLogger()).Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), FileGenreTitle)

		// Later steps never ran.
		assert.False(t, db.hit(schema.UserAccount.Table))
		assert.False(t, db.hit(schema.Review.Table))
	})

	t.Run("missing_file_aborts_at_that_step", func(t *testing.T) {
		dir := writeSeedDir(t)
		require.NoError(t, os.Remove(filepath.Join(dir, FileUsers)))

		db := &fakeDB{}
		err := New(db, dir, discardLogger()).Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), FileUsers)
		assert.True(t, db.hit(schema.TitleGenre.Table))
		assert.False(t, db.hit(schema.Review.Table))
	})
}
