package handlerutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/service"
)

func TestServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrNotFound), http.StatusNotFound},
		{service.ErrDuplicateName, http.StatusConflict},
		{service.ErrEmptyName, http.StatusUnprocessableEntity},
		{service.ErrKindMismatch, http.StatusUnprocessableEntity},
		{service.ErrInvalidDayOfMonth, http.StatusUnprocessableEntity},
		{service.ErrUnexpected, http.StatusInternalServerError},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var statusErr huma.StatusError
			require.ErrorAs(t, ServiceError(tt.err), &statusErr)
			assert.Equal(t, tt.status, statusErr.GetStatus())
		})
	}
}

func TestServiceError_HidesInternals(t *testing.T) {
	err := ServiceError(errors.New("no such table: transactions"))
	assert.NotContains(t, err.Error(), "no such table")
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("endDate", "")
	require.NoError(t, err)
	assert.True(t, d.IsNull())

	d, err = ParseOptionalDate("endDate", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatOptionalDate(d))

	_, err = ParseOptionalDate("endDate", "2023-02-29")
	assert.Error(t, err)
}
