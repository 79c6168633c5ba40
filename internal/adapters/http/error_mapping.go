package httpadapter

import (
	"net/http"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized), domain.IsKind(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrDistrictNotFound), domain.IsKind(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrAccountExists):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicErrorMessage hides internal details of 5xx errors.
func publicErrorMessage(status int, err error) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal error"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return err.Error()
	}
}
