// Copyright (c) 2026 ScoreHub. All rights reserved.

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scorehub/scorehub/internal/platform/database/schema"
	"github.com/scorehub/scorehub/internal/platform/dberr"
)

// UniqueTitleAuthor is the constraint enforcing one review per author per title.
const UniqueTitleAuthor = "review_title_author_key"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) TitleExists(context context.Context, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Title.Table, schema.Title.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.Review.ID, schema.Review.TitleID, schema.Review.AuthorID, schema.UserAccount.Username,
		schema.Review.Text, schema.Review.Score, schema.Review.PubDate,
		schema.Review.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Review.AuthorID,
		schema.Review.TitleID,
		schema.Review.PubDate,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Review.Table, schema.Review.TitleID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		WHERE r.%s = $1 AND r.%s = $2
	`,
		schema.Review.ID, schema.Review.TitleID, schema.Review.AuthorID, schema.UserAccount.Username,
		schema.Review.Text, schema.Review.Score, schema.Review.PubDate,
		schema.Review.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Review.AuthorID,
		schema.Review.TitleID, schema.Review.ID,
	)
	r := &Review{}

	err := repository.db.QueryRow(context, query, titleID, reviewID).Scan(
		&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate,
	)

	return r, dberr.Wrap(err, "get_review")
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s, %s
	`,
		schema.Review.Table, schema.Review.TitleID, schema.Review.AuthorID,
		schema.Review.Text, schema.Review.Score, schema.Review.PubDate,
		schema.Review.ID, schema.Review.PubDate,
	)

	err := repository.db.QueryRow(context, query, r.TitleID, r.AuthorID, r.Text, r.Score).Scan(&r.ID, &r.PubDate)
	if dberr.IsUniqueViolation(err, UniqueTitleAuthor) {
		return ErrAlreadyReviewed
	}
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
	`,
		schema.Review.Table, schema.Review.Text, schema.Review.Score,
		schema.Review.ID,
	)

	cmd, err := repository.db.Exec(context, query, r.ID, r.Text, r.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Review.Table, schema.Review.TitleID, schema.Review.ID,
	)

	cmd, err := repository.db.Exec(context, query, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
