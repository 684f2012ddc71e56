// Copyright (c) 2026 ScoreHub. All rights reserved.

package review

import "context"

type Repository interface {
	TitleExists(context context.Context, titleID int64) (bool, error)
	ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)
	GetReview(context context.Context, titleID, reviewID int64) (*Review, error)
	CreateReview(context context.Context, r *Review) error
	UpdateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, titleID, reviewID int64) error
}
