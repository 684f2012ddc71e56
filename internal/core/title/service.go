// Copyright (c) 2026 ScoreHub. All rights reserved.

package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/scorehub/scorehub/internal/platform/validate"
	"github.com/scorehub/scorehub/pkg/pointer"
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

// computeRating derives the public rating from the review aggregate:
// the integer-truncated mean, or nil when no reviews exist. Truncation
// (not rounding) is the contract clients rely on.
func computeRating(scoreSum, reviewCount int64) *int {
	if reviewCount == 0 {
		return nil
	}
	rating := int(scoreSum / reviewCount)
	return &rating
}

func (service *Service) ListTitles(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.ListTitles(context, filter, limit, offset)
}

func (service *Service) GetTitle(context context.Context, id int64) (*Title, error) {
	return service.repo.GetTitle(context, id)
}

func (service *Service) CreateTitle(context context.Context, input Input) (*Title, error) {
	title := &Title{
		Name:        pointer.Val(input.Name),
		Year:        pointer.Val(input.Year),
		Description: input.Description,
	}

	if err := validateTitle(title); err != nil {
		return nil, err
	}

	genreSlugs := input.Genre
	if genreSlugs == nil {
		genreSlugs = []string{}
	}

	if err := service.repo.CreateTitle(context, title, input.Category, genreSlugs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created", slog.Int64("title_id", title.ID), slog.String("name", title.Name))
	return title, nil
}

func (service *Service) UpdateTitle(context context.Context, id int64, input Input) (*Title, error) {
	title, err := service.repo.GetTitle(context, id)
	if err != nil {
		return nil, err
	}

	// Partial update: only the fields present in the payload change.
	title.Name = pointer.Fallback(input.Name, title.Name)
	title.Year = pointer.Fallback(input.Year, title.Year)
	if input.Description != nil {
		title.Description = input.Description
	}

	categorySlug := input.Category
	if categorySlug == nil && title.Category != nil {
		slug := title.Category.Slug
		categorySlug = &slug
	}

	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateTitle(context, title, categorySlug, input.Genre); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", title.ID))
	return title, nil
}

func (service *Service) DeleteTitle(context context.Context, id int64) error {
	if err := service.repo.DeleteTitle(context, id); err != nil {
		return err
	}

	service.logger.Warn("title_deleted", slog.Int64("title_id", id))
	return nil
}

func validateTitle(title *Title) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, title.Name).MaxLen(FieldName, title.Name, 256)
	validator.Custom(FieldYear, title.Year == 0, "This field is required")
	validator.Custom(FieldYear, title.Year > time.Now().Year(), "Cannot be later than the current year")

	return validator.Err()
}
