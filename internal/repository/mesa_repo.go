package repository

import (
	"context"
	"errors"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"gorm.io/gorm"
)

type MesaRepo interface {
	// ListAll devuelve el inventario en orden de preferencia del asignador.
	ListAll(ctx context.Context) ([]*models.Mesa, error)
	GetByID(ctx context.Context, id string) (*models.Mesa, error)
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepo(db *gorm.DB) MesaRepo { return &mesaRepo{db: db} }

func (r *mesaRepo) ListAll(ctx context.Context) ([]*models.Mesa, error) {
	var mesas []*models.Mesa
	err := r.db.WithContext(ctx).Order("posicion ASC").Find(&mesas).Error
	return mesas, err
}

func (r *mesaRepo) GetByID(ctx context.Context, id string) (*models.Mesa, error) {
	var m models.Mesa
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}
