// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec

import "net/http"

// # Permission Predicates
//
// Each predicate takes the actor, the HTTP method being attempted, and — where
// object-level ownership matters — the owner of the target object. A false
// result must be surfaced to the client as 403 Forbidden, which is distinct
// from 401 (unauthenticated) and 404 (absent).

// ReadOnlyMethod reports whether method is one of the safe HTTP methods.
func ReadOnlyMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// OwnerOrStaff allows safe methods for everyone, and writes for moderators,
// admin-tier actors, or the owner of the target object.
func OwnerOrStaff(actor *Actor, method string, ownerID int64) bool {
	if ReadOnlyMethod(method) {
		return true
	}
	if !actor.IsAuthenticated() {
		return false
	}
	if actor.IsStaff() {
		return true
	}
	return actor.ID == ownerID
}

// AdminOrReadOnly allows safe methods for everyone and writes for
// admin-tier actors only.
func AdminOrReadOnly(actor *Actor, method string) bool {
	if ReadOnlyMethod(method) {
		return true
	}
	return AdminOnly(actor)
}

// AdminOnly allows admin-tier actors, regardless of method.
func AdminOnly(actor *Actor) bool {
	return actor.IsAuthenticated() && actor.IsAdminTier()
}

// AuthenticatedAny allows safe methods for everyone and writes for any
// authenticated actor with a known role.
func AuthenticatedAny(actor *Actor, method string) bool {
	if ReadOnlyMethod(method) {
		return true
	}
	if !actor.IsAuthenticated() {
		return false
	}
	return actor.IsSuperuser || actor.Role.Valid()
}
