// Copyright (c) 2026 ScoreHub. All rights reserved.

package genre

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

func (service *Service) ListGenres(context context.Context, filter Filter, limit, offset int) ([]*Genre, int, error) {
	return service.repo.ListGenres(context, filter, limit, offset)
}

func (service *Service) GetGenre(context context.Context, slugValue string) (*Genre, error) {
	return service.repo.GetGenreBySlug(context, slugValue)
}

func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	if genre.Slug == "" {
		genre.Slug = slug.From(genre.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 256)
	validator.Required(FieldSlug, genre.Slug).MaxLen(FieldSlug, genre.Slug, 50).Slug(FieldSlug, genre.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateGenre(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return nil
}

func (service *Service) DeleteGenre(context context.Context, slugValue string) error {
	if err := service.repo.DeleteGenreBySlug(context, slugValue); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("slug", slugValue))
	return nil
}
