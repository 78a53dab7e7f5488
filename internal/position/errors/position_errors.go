package positionerrors

import (
	"net/http"

	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/apperror"
)

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Position not found",
		http.StatusNotFound,
	)
	ErrParentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Parent position not found",
		http.StatusNotFound,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Position name is required",
		http.StatusBadRequest,
	)
	ErrNameTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Position name cannot exceed 200 characters",
		http.StatusBadRequest,
	)
	ErrOwnParent = apperror.New(
		apperror.CodeCycleDetected,
		"A position cannot be its own parent",
		http.StatusConflict,
	)
	ErrCycleDetected = apperror.New(
		apperror.CodeCycleDetected,
		"Changing the parent would create a cycle in the position hierarchy",
		http.StatusConflict,
	)
	ErrPositionInUse = apperror.New(
		apperror.CodeConflict,
		"Cannot delete position with children or employees. Please delete children and reassign employees first.",
		http.StatusConflict,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid position ID",
		http.StatusBadRequest,
	)
)
