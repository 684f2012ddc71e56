// Copyright (c) 2026 ScoreHub. All rights reserved.

package auth

import (
	"time"

	"github.com/scorehub/scorehub/internal/platform/sec"
)

// User is the account entity as the auth flow sees it.
//
// There is no password: identity is proven by ownership of the email inbox
// that receives the confirmation code.
type User struct {
	ID          int64      `json:"-"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        sec.Role   `json:"role"`
	IsSuperuser bool       `json:"-"`
	LastLoginAt *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"-"`
}

// State returns the mutable-state snapshot confirmation codes are bound to.
func (u *User) State() sec.UserState {
	return sec.UserState{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		LastLoginAt: u.LastLoginAt,
	}
}

// Actor converts the user into the request-scoped security principal.
func (u *User) Actor() *sec.Actor {
	return &sec.Actor{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsSuperuser: u.IsSuperuser,
	}
}

// Global field names for validation
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldRefresh          = "refresh"
)
