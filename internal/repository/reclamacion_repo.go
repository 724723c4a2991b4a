package repository

import (
	"context"
	"errors"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReclamacionRepo interface {
	Create(ctx context.Context, rec *models.Reclamacion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reclamacion, error)
	GetByCodigo(ctx context.Context, codigo string) (*models.Reclamacion, error)
	List(ctx context.Context, estado *models.EstadoReclamacion) ([]*models.Reclamacion, error)

	// UpdateEstado cambia el estado sólo si el expediente no está resuelto.
	UpdateEstado(ctx context.Context, id uuid.UUID, estado models.EstadoReclamacion) (bool, error)

	// Resolver persiste la respuesta y cierra el expediente en un solo
	// UPDATE condicionado a que siga sin resolver.
	Resolver(ctx context.Context, id uuid.UUID, respuesta string, por uuid.UUID, at time.Time) (bool, error)
}

type reclamacionRepo struct{ db *gorm.DB }

func NewReclamacionRepo(db *gorm.DB) ReclamacionRepo { return &reclamacionRepo{db: db} }

func (r *reclamacionRepo) Create(ctx context.Context, rec *models.Reclamacion) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *reclamacionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reclamacion, error) {
	var rec models.Reclamacion
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rec, err
}

func (r *reclamacionRepo) GetByCodigo(ctx context.Context, codigo string) (*models.Reclamacion, error) {
	var rec models.Reclamacion
	err := r.db.WithContext(ctx).First(&rec, "codigo = ?", codigo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rec, err
}

func (r *reclamacionRepo) List(ctx context.Context, estado *models.EstadoReclamacion) ([]*models.Reclamacion, error) {
	q := r.db.WithContext(ctx).Model(&models.Reclamacion{})
	if estado != nil {
		q = q.Where("estado = ?", *estado)
	}

	var list []*models.Reclamacion
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *reclamacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado models.EstadoReclamacion) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reclamacion{}).
		Where("id = ? AND estado <> ?", id, models.ReclamacionResuelto).
		Update("estado", estado)
	return tx.RowsAffected > 0, tx.Error
}

func (r *reclamacionRepo) Resolver(ctx context.Context, id uuid.UUID, respuesta string, por uuid.UUID, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reclamacion{}).
		Where("id = ? AND estado <> ?", id, models.ReclamacionResuelto).
		Updates(map[string]any{
			"estado":            models.ReclamacionResuelto,
			"respuesta_empresa": respuesta,
			"respondido_por":    por,
			"respondido_at":     at,
		})
	return tx.RowsAffected > 0, tx.Error
}
