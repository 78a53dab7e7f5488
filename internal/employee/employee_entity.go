package employee

import (
	"strings"
	"time"
	"unicode/utf8"

	employeeerrors "github.com/Roma1011/EmployeeManagmentSys/internal/employee/errors"
)

const (
	PersonalNumberLength = 11
	MaxNameLength        = 100
	MaxEmailLength       = 255

	// ActivationDelay adalah jeda sebelum employee baru diaktifkan
	// oleh background sweep.
	ActivationDelay = time.Hour
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusProbation Status = "probation"
	StatusDismissed Status = "dismissed"
)

type Employee struct {
	ID             int    `gorm:"primaryKey;autoIncrement"`
	PersonalNumber string `gorm:"size:11;not null;uniqueIndex:uq_employee_personal_number"`
	FirstName      string `gorm:"size:100;not null"`
	LastName       string `gorm:"size:100;not null"`
	Gender         Gender `gorm:"size:16"`
	DateOfBirth    time.Time
	Email          string `gorm:"size:255;uniqueIndex:uq_employee_email,where:email <> ''"`
	PositionID     int    `gorm:"not null;index"`
	Status         Status `gorm:"size:20;not null"`
	DismissalDate  *time.Time
	IsActive       bool `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// NewEmployee memvalidasi semua field dengan urutan tetap: personal number,
// first name, last name, email, position id, lalu konsistensi status.
// Kegagalan pertama yang menang. Uniqueness TIDAK dicek di sini — itu
// tanggung jawab service terhadap store, sebelum konstruksi.
// IsActive selalu mulai false; aktivasi dilakukan sweep satu jam kemudian.
func NewEmployee(
	personalNumber string,
	firstName string,
	lastName string,
	gender Gender,
	dateOfBirth time.Time,
	email string,
	positionID int,
	status Status,
	dismissalDate *time.Time,
) (*Employee, error) {
	if err := validatePersonalNumber(personalNumber); err != nil {
		return nil, err
	}
	if err := validateName(firstName, employeeerrors.ErrFirstNameRequired, employeeerrors.ErrFirstNameTooLong); err != nil {
		return nil, err
	}
	if err := validateName(lastName, employeeerrors.ErrLastNameRequired, employeeerrors.ErrLastNameTooLong); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if positionID <= 0 {
		return nil, employeeerrors.ErrInvalidPositionID
	}
	if status == StatusDismissed && dismissalDate == nil {
		return nil, employeeerrors.ErrDismissalDateRequired
	}

	return &Employee{
		PersonalNumber: personalNumber,
		FirstName:      firstName,
		LastName:       lastName,
		Gender:         gender,
		DateOfBirth:    dateOfBirth,
		Email:          normalizeEmail(email),
		PositionID:     positionID,
		Status:         status,
		DismissalDate:  dismissalDate,
		IsActive:       false,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// UpdatePersonalInfo tidak menyentuh email, posisi, maupun status.
func (e *Employee) UpdatePersonalInfo(
	personalNumber string,
	firstName string,
	lastName string,
	gender Gender,
	dateOfBirth time.Time,
) error {
	if err := validatePersonalNumber(personalNumber); err != nil {
		return err
	}
	if err := validateName(firstName, employeeerrors.ErrFirstNameRequired, employeeerrors.ErrFirstNameTooLong); err != nil {
		return err
	}
	if err := validateName(lastName, employeeerrors.ErrLastNameRequired, employeeerrors.ErrLastNameTooLong); err != nil {
		return err
	}

	e.PersonalNumber = personalNumber
	e.FirstName = firstName
	e.LastName = lastName
	e.Gender = gender
	e.DateOfBirth = dateOfBirth
	e.touch()
	return nil
}

// UpdateEmail menerima email kosong (menghapus field).
func (e *Employee) UpdateEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	e.Email = normalizeEmail(email)
	e.touch()
	return nil
}

// ChangePosition tidak memverifikasi keberadaan posisi — caller wajib
// resolve lewat position store sebelum memanggil ini.
func (e *Employee) ChangePosition(positionID int) error {
	if positionID <= 0 {
		return employeeerrors.ErrInvalidPositionID
	}

	e.PositionID = positionID
	e.touch()
	return nil
}

// ChangeStatus: dismissed wajib punya tanggal. Status lain menerima
// dismissalDate apa adanya (termasuk nil) — invariannya satu arah;
// tanggal lama TIDAK otomatis dibersihkan saat status berubah.
func (e *Employee) ChangeStatus(newStatus Status, dismissalDate *time.Time) error {
	if newStatus == StatusDismissed && dismissalDate == nil {
		return employeeerrors.ErrDismissalDateRequired
	}

	e.Status = newStatus
	e.DismissalDate = dismissalDate
	e.touch()
	return nil
}

// Activate dipanggil tepat satu kali per employee oleh sweep.
// Double-activate adalah error, bukan no-op.
func (e *Employee) Activate() error {
	if e.IsActive {
		return employeeerrors.ErrAlreadyActive
	}

	e.IsActive = true
	e.touch()
	return nil
}

// Deactivate adalah operasi manual dengan guard simetris; sweep tidak
// pernah menonaktifkan.
func (e *Employee) Deactivate() error {
	if !e.IsActive {
		return employeeerrors.ErrAlreadyInactive
	}

	e.IsActive = false
	e.touch()
	return nil
}

func (e *Employee) touch() {
	now := time.Now().UTC()
	e.UpdatedAt = &now
}

func validatePersonalNumber(personalNumber string) error {
	if strings.TrimSpace(personalNumber) == "" {
		return employeeerrors.ErrPersonalNumberRequired
	}
	if utf8.RuneCountInString(personalNumber) != PersonalNumberLength {
		return employeeerrors.ErrPersonalNumberLength
	}
	return nil
}

func validateName(name string, required, tooLong error) error {
	if strings.TrimSpace(name) == "" {
		return required
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return tooLong
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return employeeerrors.ErrInvalidEmail
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return employeeerrors.ErrEmailTooLong
	}
	return nil
}

func normalizeEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return ""
	}
	return strings.ToLower(email)
}
