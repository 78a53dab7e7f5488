package position

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pos *Position) error
	FindAll(ctx context.Context) ([]Position, error)
	FindByID(ctx context.Context, id int) (*Position, error)
	Update(ctx context.Context, pos *Position) error
	Delete(ctx context.Context, id int) error
	CountChildren(ctx context.Context, id int) (int64, error)
	CountEmployees(ctx context.Context, id int) (int64, error)
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

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&positions).Error
	return positions, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Position, error) {
	var pos Position
	err := r.db.WithContext(ctx).
		First(&pos, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *repository) Update(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Save(pos).Error
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Delete(&Position{}, "id = ?", id).Error
}

func (r *repository) CountChildren(ctx context.Context, id int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Position{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) CountEmployees(ctx context.Context, id int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("position_id = ?", id).
		Count(&count).Error
	return count, err
}
