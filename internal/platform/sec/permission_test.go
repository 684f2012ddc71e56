// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scorehub/scorehub/internal/platform/sec"
)

func actorWith(role sec.Role) *sec.Actor {
	return &sec.Actor{ID: 7, Username: "someone", Role: role}
}

/*
TestOwnerOrStaff exercises the object-level predicate across the full
actor matrix for both safe and mutating methods.
*/
func TestOwnerOrStaff(t *testing.T) {
	const ownerID = int64(7)

	tests := []struct {
		name    string
		actor   *sec.Actor
		method  string
		allowed bool
	}{
		{"anonymous_may_read", nil, http.MethodGet, true},
		{"anonymous_may_not_write", nil, http.MethodDelete, false},
		{"owner_may_write", actorWith(sec.RoleUser), http.MethodPatch, true},
		{"non_owner_user_may_not_write", &sec.Actor{ID: 99, Role: sec.RoleUser}, http.MethodPatch, false},
		{"non_owner_user_may_read", &sec.Actor{ID: 99, Role: sec.RoleUser}, http.MethodGet, true},
		{"moderator_may_write_any", &sec.Actor{ID: 99, Role: sec.RoleModerator}, http.MethodDelete, true},
		{"admin_may_write_any", &sec.Actor{ID: 99, Role: sec.RoleAdmin}, http.MethodDelete, true},
		{"superuser_flag_overrides_role", &sec.Actor{ID: 99, Role: sec.RoleUser, IsSuperuser: true}, http.MethodDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, sec.OwnerOrStaff(tt.actor, tt.method, ownerID))
		})
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name    string
		actor   *sec.Actor
		method  string
		allowed bool
	}{
		{"anonymous_may_read", nil, http.MethodGet, true},
		{"anonymous_may_not_write", nil, http.MethodPost, false},
		{"user_may_not_write", actorWith(sec.RoleUser), http.MethodPost, false},
		{"moderator_may_not_write", actorWith(sec.RoleModerator), http.MethodPost, false},
		{"admin_may_write", actorWith(sec.RoleAdmin), http.MethodPost, true},
		{"superuser_may_write", &sec.Actor{ID: 1, Role: sec.RoleUser, IsSuperuser: true}, http.MethodPost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, sec.AdminOrReadOnly(tt.actor, tt.method))
		})
	}
}

func TestAuthenticatedAny(t *testing.T) {
	assert.True(t, sec.AuthenticatedAny(nil, http.MethodGet))
	assert.False(t, sec.AuthenticatedAny(nil, http.MethodPost))
	assert.True(t, sec.AuthenticatedAny(actorWith(sec.RoleUser), http.MethodPost))
	assert.False(t, sec.AuthenticatedAny(actorWith(sec.Role("ghost")), http.MethodPost))
}

func TestTiers(t *testing.T) {
	assert.True(t, actorWith(sec.RoleModerator).IsStaff())
	assert.False(t, actorWith(sec.RoleModerator).IsAdminTier())
	assert.True(t, actorWith(sec.RoleAdmin).IsStaff())
	assert.True(t, actorWith(sec.RoleAdmin).IsAdminTier())
	assert.False(t, actorWith(sec.RoleUser).IsStaff())

	var anonymous *sec.Actor
	assert.False(t, anonymous.IsAuthenticated())
	assert.False(t, anonymous.IsStaff())
}
