package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int) (*Employee, error)
	Search(ctx context.Context, term string) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id int) error
	ExistsByPersonalNumber(ctx context.Context, personalNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// Search mencocokkan substring case-insensitive pada first/last name.
// Term kosong mengembalikan semua employee.
func (r *repository) Search(ctx context.Context, term string) ([]Employee, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.FindAll(ctx)
	}

	pattern := "%" + strings.ToLower(term) + "%"
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Order("last_name, first_name").
		Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) ExistsByPersonalNumber(ctx context.Context, personalNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("personal_number = ?", personalNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}
