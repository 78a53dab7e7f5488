package employeeerrors

import (
	"net/http"

	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Position not found",
		http.StatusNotFound,
	)
	ErrPersonalNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An employee with this personal number already exists",
		http.StatusConflict,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)

	ErrPersonalNumberRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Personal number is required",
		http.StatusBadRequest,
	)
	ErrPersonalNumberLength = apperror.New(
		apperror.CodeInvalidInput,
		"Personal number must be exactly 11 characters",
		http.StatusBadRequest,
	)
	ErrFirstNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"First name is required",
		http.StatusBadRequest,
	)
	ErrFirstNameTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"First name cannot exceed 100 characters",
		http.StatusBadRequest,
	)
	ErrLastNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Last name is required",
		http.StatusBadRequest,
	)
	ErrLastNameTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Last name cannot exceed 100 characters",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid email format",
		http.StatusBadRequest,
	)
	ErrEmailTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Email cannot exceed 255 characters",
		http.StatusBadRequest,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"Position ID must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidGender = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid gender",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee status",
		http.StatusBadRequest,
	)
	ErrDismissalDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Dismissal date is required when status is dismissed",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)

	ErrAlreadyActive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already active",
		http.StatusConflict,
	)
	ErrAlreadyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already inactive",
		http.StatusConflict,
	)
)
