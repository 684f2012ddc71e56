// Copyright (c) 2026 ScoreHub. All rights reserved.

package title

import "context"

type Repository interface {
	ListTitles(context context.Context, f Filter, limit, offset int) ([]*Title, int, error)
	GetTitle(context context.Context, id int64) (*Title, error)
	CreateTitle(context context.Context, t *Title, categorySlug *string, genreSlugs []string) error
	UpdateTitle(context context.Context, t *Title, categorySlug *string, genreSlugs []string) error
	DeleteTitle(context context.Context, id int64) error
}
