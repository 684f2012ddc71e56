// Copyright (c) 2026 ScoreHub. All rights reserved.

package comment

import "context"

type Repository interface {
	ReviewExists(context context.Context, titleID, reviewID int64) (bool, error)
	ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)
	GetComment(context context.Context, reviewID, commentID int64) (*Comment, error)
	CreateComment(context context.Context, c *Comment) error
	UpdateComment(context context.Context, c *Comment) error
	DeleteComment(context context.Context, reviewID, commentID int64) error
}
