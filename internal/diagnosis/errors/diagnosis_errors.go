package diagnosiserrors

import (
	"net/http"

	"go-rrhh/internal/shared/apperror"
)

var (
	ErrQueryTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"q must have at least 3 characters",
		http.StatusBadRequest,
	)
	ErrCatalogUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Diagnosis catalog is unavailable",
		http.StatusServiceUnavailable,
	)
)
