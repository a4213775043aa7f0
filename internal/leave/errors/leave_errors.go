package leaveerrors

import (
	"fmt"
	"net/http"

	"go-rrhh/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusBadRequest,
	)
	ErrInvalidReinstatementDate = apperror.New(
		apperror.CodeInvalidInput,
		"reinstatement_date cannot be before end_date",
		http.StatusBadRequest,
	)
	ErrCertificateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"medical certificate is required for illness leave",
		http.StatusBadRequest,
	)
	ErrDiagnosisRequired = apperror.New(
		apperror.CodeInvalidInput,
		"diagnosis_code is required for illness leave",
		http.StatusBadRequest,
	)
	ErrCertificateNotPDF = apperror.New(
		apperror.CodeInvalidInput,
		"medical certificate must be a PDF file",
		http.StatusBadRequest,
	)
	ErrCertificateTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"medical certificate exceeds the 5MB limit",
		http.StatusBadRequest,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"outcome must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"employee is inactive",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusConflict,
	)
)

// CapacityExceeded reports the number of days still available so the caller
// can correct the request.
func CapacityExceeded(available int) *apperror.AppError {
	return apperror.New(
		apperror.CodeCapacityExceeded,
		fmt.Sprintf("requested days exceed the available balance: at most %d days can be requested", available),
		http.StatusBadRequest,
	)
}
