// Copyright (c) 2026 ScoreHub. All rights reserved.

package account

import "context"

type Repository interface {
	ListAccounts(context context.Context, search string, limit, offset int) ([]*Account, int, error)
	GetByUsername(context context.Context, username string) (*Account, error)
	GetByID(context context.Context, id int64) (*Account, error)
	Create(context context.Context, a *Account) error
	Update(context context.Context, a *Account) error
	DeleteByUsername(context context.Context, username string) error
}
