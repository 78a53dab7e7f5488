package position

import (
	"strings"
	"time"
	"unicode/utf8"

	positionerrors "github.com/Roma1011/EmployeeManagmentSys/internal/position/errors"
)

const MaxNameLength = 200

// Position adalah satu node dalam hierarki organisasi. Relasi parent/child
// sengaja dimodelkan flat (ParentID saja, tanpa navigation collection) —
// struktur pohon direkonstruksi on demand lewat BuildTree.
type Position struct {
	ID        int        `gorm:"primaryKey;autoIncrement"`
	Name      string     `gorm:"size:200;not null"`
	ParentID  *int       `gorm:"index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewPosition membuat Position baru tanpa ID; ID di-assign oleh store.
// Keberadaan parent TIDAK dicek di sini — itu tanggung jawab service.
func NewPosition(name string, parentID *int) (*Position, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Position{
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (p *Position) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = name
	p.touch()
	return nil
}

// ChangeParent hanya menolak self-parent. Siklus yang lebih dalam
// (A→B→C→A) wajib dicek caller dengan WouldCreateCycle sebelum commit,
// karena entity tidak melihat keseluruhan graph.
func (p *Position) ChangeParent(parentID *int) error {
	if parentID != nil && *parentID == p.ID {
		return positionerrors.ErrOwnParent
	}

	p.ParentID = parentID
	p.touch()
	return nil
}

// CanBeDeleted: posisi hanya boleh dihapus jika leaf dan tanpa employee.
// Kedua count harus diambil dari satu snapshot repo dalam transaksi yang sama.
func (p *Position) CanBeDeleted(childCount, employeeCount int64) bool {
	return childCount == 0 && employeeCount == 0
}

func (p *Position) touch() {
	now := time.Now().UTC()
	p.UpdatedAt = &now
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return positionerrors.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return positionerrors.ErrNameTooLong
	}
	return nil
}
