// Copyright (c) 2026 ScoreHub. All rights reserved.

package comment

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

func (repository *PostgresRepository) ReviewExists(context context.Context, titleID, reviewID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Review.Table, schema.Review.ID, schema.Review.TitleID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.Comment.ID, schema.Comment.ReviewID, schema.Comment.AuthorID, schema.UserAccount.Username,
		schema.Comment.Text, schema.Comment.PubDate,
		schema.Comment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Comment.AuthorID,
		schema.Comment.ReviewID,
		schema.Comment.PubDate,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Comment.Table, schema.Comment.ReviewID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE c.%s = $1 AND c.%s = $2
	`,
		schema.Comment.ID, schema.Comment.ReviewID, schema.Comment.AuthorID, schema.UserAccount.Username,
		schema.Comment.Text, schema.Comment.PubDate,
		schema.Comment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Comment.AuthorID,
		schema.Comment.ReviewID, schema.Comment.ID,
	)
	c := &Comment{}

	err := repository.db.QueryRow(context, query, reviewID, commentID).Scan(
		&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate,
	)

	return c, dberr.Wrap(err, "get_comment")
}

func (repository *PostgresRepository) CreateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s, %s
	`,
		schema.Comment.Table, schema.Comment.ReviewID, schema.Comment.AuthorID,
		schema.Comment.Text, schema.Comment.PubDate,
		schema.Comment.ID, schema.Comment.PubDate,
	)

	err := repository.db.QueryRow(context, query, c.ReviewID, c.AuthorID, c.Text).Scan(&c.ID, &c.PubDate)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) UpdateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2
		WHERE %s = $1
	`,
		schema.Comment.Table, schema.Comment.Text,
		schema.Comment.ID,
	)

	cmd, err := repository.db.Exec(context, query, c.ID, c.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Comment.Table, schema.Comment.ReviewID, schema.Comment.ID,
	)

	cmd, err := repository.db.Exec(context, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
