package employeeerrors

import (
	"net/http"

	"go-rrhh/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDocumentNumberTaken = apperror.New(
		apperror.CodeConflict,
		"An employee with this document number already exists",
		http.StatusConflict,
	)
	ErrCategoryNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Salary category does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
