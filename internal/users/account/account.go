// Copyright (c) 2026 ScoreHub. All rights reserved.

// Package account implements user administration and self-service profiles.
//
// The /users collection is admin-only and is the one place where roles are
// assigned. /users/me lets any authenticated user read and edit their own
// profile, with the role field pinned for non-admin actors.
package account

import "github.com/scorehub/scorehub/internal/platform/sec"

// Account is the full user profile as the management API sees it.
type Account struct {
	ID          int64    `json:"-"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Bio         string   `json:"bio"`
	Role        sec.Role `json:"role"`
	IsSuperuser bool     `json:"-"` // Never settable through the API
}

// Input carries the client-writable profile fields. Pointer fields
// distinguish "absent" from "empty" for partial updates.
type Input struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// Global field names for validation
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)
