// Copyright (c) 2026 ScoreHub. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository abstracts account persistence for the auth flow.
type UserRepository interface {
	// FindByUsername returns the account with the given username, or a
	// NOT_FOUND error.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByID returns the account with the given ID, or a NOT_FOUND error.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByPair returns the account matching BOTH username and email, or a
	// NOT_FOUND error. The signup flow treats an exact match as a resend.
	FindByPair(context context.Context, username, email string) (*User, error)

	// Create persists a new account. A uniqueness violation on either
	// username or email surfaces as a CONFLICT error.
	Create(context context.Context, user *User) error

	// StampLastLogin records a successful token exchange. The new timestamp
	// feeds the user-state fingerprint, invalidating outstanding codes.
	StampLastLogin(context context.Context, id int64) (time.Time, error)
}

// SessionRepository abstracts refresh-session storage.
//
// Sessions are keyed by the SHA-256 hash of the opaque refresh token, so a
// storage dump never exposes usable credentials.
type SessionRepository interface {
	Set(context context.Context, tokenHash string, userID int64, ttl time.Duration) error
	Get(context context.Context, tokenHash string) (int64, error)
	Delete(context context.Context, tokenHash string) error
}

// ResendThrottle rate-limits confirmation-code resends per username.
type ResendThrottle interface {
	// Allow reports whether a resend may go out now, and if so starts the
	// next quiet window.
	Allow(context context.Context, username string, window time.Duration) (bool, error)
}
