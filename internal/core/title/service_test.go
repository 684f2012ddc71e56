// Copyright (c) 2026 ScoreHub. All rights reserved.

package title

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/apperr"
)

/*
TestComputeRating verifies the integer-truncated mean and the null contract
for unreviewed titles.
*/
func TestComputeRating(t *testing.T) {
	tests := []struct {
		name     string
		scoreSum int64
		count    int64
		want     *int
	}{
		{"no_reviews_is_nil", 0, 0, nil},
		{"single_review", 7, 1, intPtr(7)},
		{"exact_mean", 20, 4, intPtr(5)},
		{"truncates_down", 17, 2, intPtr(8)},   // 8.5 -> 8
		{"truncates_not_rounds", 29, 3, intPtr(9)}, // 9.66 -> 9
		{"minimum_scores", 3, 3, intPtr(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeRating(tt.scoreSum, tt.count)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

/*
TestValidateTitle covers the year ceiling and the required-name rule.
*/
func TestValidateTitle(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name     string
		title    Title
		wantErr  bool
		errField string
	}{
		{"valid", Title{Name: "Dune", Year: 1965}, false, ""},
		{"current_year_allowed", Title{Name: "Fresh Release", Year: currentYear}, false, ""},
		{"future_year_rejected", Title{Name: "Time Capsule", Year: currentYear + 1}, true, FieldYear},
		{"missing_name", Title{Year: 2000}, true, FieldName},
		{"missing_year", Title{Name: "Undated"}, true, FieldYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTitle(&tt.title)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.errField, ae.Details[0].Field)
		})
	}
}

func intPtr(v int) *int { return &v }
