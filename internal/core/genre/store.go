// Copyright (c) 2026 ScoreHub. All rights reserved.

package genre

import "context"

type Repository interface {
	ListGenres(context context.Context, f Filter, limit, offset int) ([]*Genre, int, error)
	GetGenreBySlug(context context.Context, slug string) (*Genre, error)
	CreateGenre(context context.Context, g *Genre) error
	DeleteGenreBySlug(context context.Context, slug string) error
}
