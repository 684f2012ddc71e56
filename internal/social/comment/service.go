// Copyright (c) 2026 ScoreHub. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListComments(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, limit, offset)
}

func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetComment(context, reviewID, commentID)
}

func (service *Service) CreateComment(context context.Context, actor *sec.Actor, titleID, reviewID int64, input Input) (*Comment, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if err := validator.Required(FieldText, input.Text).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.Int64("author_id", actor.ID),
	)
	return comment, nil
}

func (service *Service) UpdateComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID int64, input Input) (*Comment, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := service.repo.GetComment(context, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.OwnerOrStaff(actor, http.MethodPatch, comment.AuthorID) {
		return nil, apperr.Forbidden("You do not have permission to modify this comment")
	}

	validator := &validate.Validator{}
	if err := validator.Required(FieldText, input.Text).Err(); err != nil {
		return nil, err
	}

	comment.Text = input.Text

	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", comment.ID))
	return comment, nil
}

func (service *Service) DeleteComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID int64) error {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return err
	}

	comment, err := service.repo.GetComment(context, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.OwnerOrStaff(actor, http.MethodDelete, comment.AuthorID) {
		return apperr.Forbidden("You do not have permission to delete this comment")
	}

	if err := service.repo.DeleteComment(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted", slog.Int64("comment_id", commentID), slog.Int64("actor_id", actor.ID))
	return nil
}

// requireReview turns a dangling review reference into a 404 before any
// comment work happens. The review must belong to the title in the URL.
func (service *Service) requireReview(context context.Context, titleID, reviewID int64) error {
	exists, err := service.repo.ReviewExists(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
