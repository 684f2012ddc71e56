// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// Anonymous requesters have no Role at all: they are represented by a nil
// [*Actor], never by an empty Role string.
type Role string

const (
	// Unrestricted system access
	RoleSuperuser Role = "superuser"

	// Can manage the catalogue and user accounts
	RoleAdmin Role = "admin"

	// Can edit or remove any review and comment
	RoleModerator Role = "moderator"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known role strings.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

// # Privilege Tiers

// Tier is the single shared privilege classification used by every permission
// predicate. It replaces per-check role enumerations so that the answer to
// "is this role admin-tier?" lives in exactly one place.
type Tier int

const (
	TierAnonymous Tier = iota
	TierUser
	TierModerator
	TierAdmin
)

// Tier maps a role to its privilege tier.
func (r Role) Tier() Tier {
	switch r {
	case RoleSuperuser, RoleAdmin:
		return TierAdmin
	case RoleModerator:
		return TierModerator
	case RoleUser:
		return TierUser
	default:
		return TierAnonymous
	}
}

// # Actor

// Actor is the requester's identity for the current operation.
//
// A nil *Actor means the request is anonymous. Handlers and services receive
// the actor as an explicit parameter; there is no ambient "current user".
type Actor struct {
	ID       int64
	Username string
	Role     Role

	// IsSuperuser is an orthogonal flag that satisfies every admin-tier
	// check regardless of the Role string.
	IsSuperuser bool
}

// IsAuthenticated reports whether the actor is a signed-in user.
func (a *Actor) IsAuthenticated() bool {
	return a != nil
}

// tier resolves the actor's effective privilege tier, honoring the
// IsSuperuser flag.
func (a *Actor) tier() Tier {
	if a == nil {
		return TierAnonymous
	}
	if a.IsSuperuser {
		return TierAdmin
	}
	return a.Role.Tier()
}

// IsStaff reports whether the actor may moderate other users' content.
func (a *Actor) IsStaff() bool {
	return a.tier() >= TierModerator
}

// IsAdminTier reports whether the actor has full administrative privileges.
func (a *Actor) IsAdminTier() bool {
	return a.tier() >= TierAdmin
}
