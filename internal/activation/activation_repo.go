package activation

import (
	"context"
	"database/sql"
	"time"

	"github.com/Roma1011/EmployeeManagmentSys/internal/employee"
)

// Repository untuk sweep memakai database/sql langsung (bukan gorm) supaya
// SELECT dan UPDATE batch benar-benar jalan di dalam transaksi yang sama —
// commit tunggal, all-or-nothing.
//
//go:generate mockgen -source=activation_repo.go -destination=mock/activation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ListPending(ctx context.Context, cutoff time.Time) ([]employee.Employee, error)
	MarkActive(ctx context.Context, id int, updatedAt time.Time) error
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// ListPending memilih semua employee yang belum aktif dan dibuat
// pada atau sebelum cutoff.
func (r *repository) ListPending(ctx context.Context, cutoff time.Time) ([]employee.Employee, error) {
	query := `
SELECT
	id,
	personal_number,
	first_name,
	last_name,
	gender,
	date_of_birth,
	email,
	position_id,
	status,
	dismissal_date,
	is_active,
	created_at,
	updated_at
FROM employees
WHERE is_active = FALSE
	AND created_at <= $1
ORDER BY id ASC
`

	rows, err := r.queryer().QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	empls := make([]employee.Employee, 0)
	for rows.Next() {
		var (
			e             employee.Employee
			dismissalDate sql.NullTime
			updatedAt     sql.NullTime
		)
		if err := rows.Scan(
			&e.ID,
			&e.PersonalNumber,
			&e.FirstName,
			&e.LastName,
			&e.Gender,
			&e.DateOfBirth,
			&e.Email,
			&e.PositionID,
			&e.Status,
			&dismissalDate,
			&e.IsActive,
			&e.CreatedAt,
			&updatedAt,
		); err != nil {
			return nil, err
		}
		if dismissalDate.Valid {
			e.DismissalDate = &dismissalDate.Time
		}
		if updatedAt.Valid {
			e.UpdatedAt = &updatedAt.Time
		}
		empls = append(empls, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return empls, nil
}

func (r *repository) MarkActive(ctx context.Context, id int, updatedAt time.Time) error {
	query := `
UPDATE employees
SET
	is_active = TRUE,
	updated_at = $2
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, updatedAt)
	return err
}

func (r *repository) queryer() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
