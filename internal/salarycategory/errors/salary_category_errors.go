package salarycategoryerrors

import (
	"net/http"

	"go-rrhh/internal/shared/apperror"
)

var (
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary category not found",
		http.StatusNotFound,
	)
	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary category ID",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"new_salary cannot be negative",
		http.StatusBadRequest,
	)
	ErrSalaryPrecision = apperror.New(
		apperror.CodeInvalidInput,
		"new_salary allows at most 2 decimal places",
		http.StatusBadRequest,
	)
	ErrNoAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"percentage or fixed_allowance is required",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage must be greater than -100",
		http.StatusBadRequest,
	)
	ErrPercentagePrecision = apperror.New(
		apperror.CodeInvalidInput,
		"percentage allows at most 6 decimal places",
		http.StatusBadRequest,
	)
	ErrNegativeAllowance = apperror.New(
		apperror.CodeInvalidInput,
		"fixed_allowance cannot be negative",
		http.StatusBadRequest,
	)
	ErrAllowancePrecision = apperror.New(
		apperror.CodeInvalidInput,
		"fixed_allowance allows at most 2 decimal places",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid effective_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrBulkUpdateInProgress = apperror.New(
		apperror.CodeConflict,
		"Another salary update for this agreement is in progress",
		http.StatusConflict,
	)
)
