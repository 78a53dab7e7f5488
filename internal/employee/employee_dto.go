package employee

import "time"

type CreateEmployeeRequest struct {
	PersonalNumber string `json:"personal_number" binding:"required"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Gender         string `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth    string `json:"date_of_birth" binding:"required"`
	Email          string `json:"email"`
	PositionID     int    `json:"position_id" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=active probation dismissed"`
	DismissalDate  string `json:"dismissal_date"`
}

type UpdateEmployeeRequest struct {
	PersonalNumber string `json:"personal_number" binding:"required"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Gender         string `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth    string `json:"date_of_birth" binding:"required"`
	Email          string `json:"email"`
	PositionID     int    `json:"position_id" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=active probation dismissed"`
	DismissalDate  string `json:"dismissal_date"`
}

type EmployeeResponse struct {
	ID             int    `json:"id"`
	PersonalNumber string `json:"personal_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Gender         string `json:"gender"`
	DateOfBirth    string `json:"date_of_birth"`
	Email          string `json:"email,omitempty"`
	PositionID     int    `json:"position_id"`
	Status         string `json:"status"`
	DismissalDate  string `json:"dismissal_date,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

const dateLayout = "2006-01-02"

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID,
		PersonalNumber: empl.PersonalNumber,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		Gender:         string(empl.Gender),
		DateOfBirth:    empl.DateOfBirth.Format(dateLayout),
		Email:          empl.Email,
		PositionID:     empl.PositionID,
		Status:         string(empl.Status),
		IsActive:       empl.IsActive,
	}
	if empl.DismissalDate != nil {
		resp.DismissalDate = empl.DismissalDate.Format(dateLayout)
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.Format(time.RFC3339)
	}
	if empl.UpdatedAt != nil {
		resp.UpdatedAt = empl.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
