package employee

import (
	"errors"
	"strings"

	employeeerrors "go-rrhh/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	documentConstraint  = "uq_employees_document_number"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if pgErr.ConstraintName == documentConstraint {
				return employeeerrors.ErrDocumentNumberTaken
			}
		case foreignKeyViolation:
			if strings.Contains(pgErr.ConstraintName, "categor") {
				return employeeerrors.ErrCategoryNotFound
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, documentConstraint) {
		return employeeerrors.ErrDocumentNumberTaken
	}

	return err
}
