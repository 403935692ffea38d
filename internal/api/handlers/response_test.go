package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		kind     string
		hideText bool
	}{
		{domain.NewError(domain.ErrNotFound, "car not found"), http.StatusNotFound, "not_found", false},
		{fmt.Errorf("%w: seats", domain.NewError(domain.ErrInvalidInput, "invalid car")), http.StatusBadRequest, "invalid_input", false},
		{domain.NewError(domain.ErrConflict, "car not available for selected dates"), http.StatusConflict, "conflict", false},
		{domain.NewError(domain.ErrForbidden, "access denied"), http.StatusForbidden, "forbidden", false},
		{fmt.Errorf("pq: connection refused"), http.StatusInternalServerError, "internal", true},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RespondServiceError(rec, tt.err)

		assert.Equal(t, tt.status, rec.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.kind, body.Kind)
		if tt.hideText {
			assert.Equal(t, msgInternalError, body.Error)
		} else {
			assert.Equal(t, tt.err.Error(), body.Error)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-06-01T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01.06.2024")
	assert.Error(t, err)
}
