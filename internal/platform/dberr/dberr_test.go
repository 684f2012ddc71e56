// Copyright (c) 2026 ScoreHub. All rights reserved.

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/dberr"
)

/*
TestWrap verifies the SQLSTATE classification: every constraint family a
write can trip must surface as a client error, never a 500.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"no_rows_is_not_found", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{
			"unique_violation_is_conflict",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "account_username_key"},
			"CONFLICT", http.StatusConflict,
		},
		{
			"foreign_key_violation_is_validation",
			&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			"VALIDATION_ERROR", http.StatusBadRequest,
		},
		{
			"check_violation_is_validation",
			&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "review_score_check"},
			"VALIDATION_ERROR", http.StatusBadRequest,
		},
		{"unknown_error_is_internal", errors.New("connection reset"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			appError := apperr.As(wrapped)

			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
		})
	}

	t.Run("nil_passes_through", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "test_action"))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "review_title_author_key"}

	assert.True(t, dberr.IsUniqueViolation(err, "review_title_author_key"))
	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.False(t, dberr.IsUniqueViolation(err, "other_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain"), "review_title_author_key"))
}
