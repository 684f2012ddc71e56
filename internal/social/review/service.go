// Copyright (c) 2026 ScoreHub. All rights reserved.

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/platform/validate"
	"github.com/scorehub/scorehub/pkg/pointer"
)

// ErrAlreadyReviewed maps the one-review-per-title constraint to a client error.
var ErrAlreadyReviewed = apperr.Conflict("You have already reviewed this title")

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

func (service *Service) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, limit, offset)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.GetReview(context, titleID, reviewID)
}

func (service *Service) CreateReview(context context.Context, actor *sec.Actor, titleID int64, input Input) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     pointer.Val(input.Text),
		Score:    pointer.Val(input.Score),
	}

	if err := validateReview(review); err != nil {
		return nil, err
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.Int64("author_id", actor.ID),
	)
	return review, nil
}

func (service *Service) UpdateReview(context context.Context, actor *sec.Actor, titleID, reviewID int64, input Input) (*Review, error) {
	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.OwnerOrStaff(actor, http.MethodPatch, review.AuthorID) {
		return nil, apperr.Forbidden("You do not have permission to modify this review")
	}

	// Partial update: omitted fields keep their stored value.
	review.Text = pointer.Fallback(input.Text, review.Text)
	review.Score = pointer.Fallback(input.Score, review.Score)

	if err := validateReview(review); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", review.ID))
	return review, nil
}

func (service *Service) DeleteReview(context context.Context, actor *sec.Actor, titleID, reviewID int64) error {
	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.OwnerOrStaff(actor, http.MethodDelete, review.AuthorID) {
		return apperr.Forbidden("You do not have permission to delete this review")
	}

	if err := service.repo.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.Int64("review_id", reviewID), slog.Int64("actor_id", actor.ID))
	return nil
}

// requireTitle turns a dangling title reference into a 404 before any
// review work happens.
func (service *Service) requireTitle(context context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

func validateReview(review *Review) error {
	validator := &validate.Validator{}

	validator.Required(FieldText, review.Text)
	validator.Range(FieldScore, review.Score, ScoreMin, ScoreMax)

	return validator.Err()
}
