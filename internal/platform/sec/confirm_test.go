// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/sec"
)

func TestCodeGenerator(t *testing.T) {
	generator := sec.NewCodeGenerator("test-secret")

	state := sec.UserState{ID: 1, Username: "sam", Email: "sam@example.com"}

	t.Run("deterministic_for_same_state", func(t *testing.T) {
		first, err := generator.Make(state)
		require.NoError(t, err)
		second, err := generator.Make(state)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first, 20)
		assert.True(t, generator.Check(state, first))
	})

	t.Run("login_stamp_invalidates_old_code", func(t *testing.T) {
		code, err := generator.Make(state)
		require.NoError(t, err)

		stamped := state
		now := time.Now()
		stamped.LastLoginAt = &now

		assert.False(t, generator.Check(stamped, code))
	})

	t.Run("codes_differ_between_users", func(t *testing.T) {
		other := state
		other.ID = 2

		mine, err := generator.Make(state)
		require.NoError(t, err)
		theirs, err := generator.Make(other)
		require.NoError(t, err)

		assert.NotEqual(t, mine, theirs)
	})

	t.Run("different_secret_rejects", func(t *testing.T) {
		code, err := generator.Make(state)
		require.NoError(t, err)

		rotated := sec.NewCodeGenerator("another-secret")
		assert.False(t, rotated.Check(state, code))
	})

	t.Run("garbage_code_rejected", func(t *testing.T) {
		assert.False(t, generator.Check(state, "not-a-real-code"))
	})
}

func TestHashToken(t *testing.T) {
	first := sec.HashToken("refresh-token")
	second := sec.HashToken("refresh-token")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, sec.HashToken("other-token"))
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "=")
}
