// Copyright (c) 2026 ScoreHub. All rights reserved.

package category

import (
	"context"
	"log/slog"

	"github.com/scorehub/scorehub/internal/platform/validate"
	"github.com/scorehub/scorehub/pkg/slug"
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

func (service *Service) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, filter, limit, offset)
}

func (service *Service) GetCategory(context context.Context, slugValue string) (*Category, error) {
	return service.repo.GetCategoryBySlug(context, slugValue)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if category.Slug == "" {
		category.Slug = slug.From(category.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 256)
	validator.Required(FieldSlug, category.Slug).MaxLen(FieldSlug, category.Slug, 50).Slug(FieldSlug, category.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, slugValue string) error {
	if err := service.repo.DeleteCategoryBySlug(context, slugValue); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("slug", slugValue))
	return nil
}
