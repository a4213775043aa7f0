package payrollerrors

import (
	"net/http"

	"go-rrhh/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll already uploaded for this period",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrPayrollFileMissing = apperror.New(
		apperror.CodeNotFound,
		"payroll document is no longer available",
		http.StatusNotFound,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrFileNotPDF = apperror.New(
		apperror.CodeInvalidInput,
		"file must be a PDF document",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file exceeds the 5 MB limit",
		http.StatusBadRequest,
	)
)
