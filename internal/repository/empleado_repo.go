package repository

import (
	"context"
	"errors"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpleadoRepo interface {
	Create(ctx context.Context, e *models.Empleado) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Empleado, error)
	GetByEmail(ctx context.Context, email string) (*models.Empleado, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.Empleado, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepo(db *gorm.DB) EmpleadoRepo { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *models.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Empleado, error) {
	var e models.Empleado
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *empleadoRepo) GetByEmail(ctx context.Context, email string) (*models.Empleado, error) {
	var e models.Empleado
	err := r.db.WithContext(ctx).First(&e, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *empleadoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Empleado{}).
		Where("email = ?", email).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *empleadoRepo) List(ctx context.Context) ([]*models.Empleado, error) {
	var list []*models.Empleado
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *empleadoRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Empleado{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *empleadoRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Empleado{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *empleadoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Empleado{}, "id = ?", id).Error
}
