package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/Roma1011/EmployeeManagmentSys/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_employee_personal_number":
				return employeeerrors.ErrPersonalNumberAlreadyExists
			case "uq_employee_email":
				return employeeerrors.ErrEmailAlreadyExists
			}
		case "23503":
			// Backstop untuk balapan antara cek keberadaan posisi dan insert.
			if pgErr.ConstraintName == "fk_employees_position" {
				return employeeerrors.ErrPositionNotFound
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_personal_number") {
		return employeeerrors.ErrPersonalNumberAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
