package handlerutil

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/service"
)

// ServiceError maps a service error onto an HTTP error. Anything the
// service does not classify becomes an opaque 500.
func ServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "not found", err)
	case errors.Is(err, service.ErrDuplicateName):
		return huma.NewError(http.StatusConflict, "name already in use", err)
	case service.IsValidationError(err):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
