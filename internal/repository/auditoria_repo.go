package repository

import (
	"context"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditoriaFilter struct {
	TablaAfectada *string
	EmpleadoID    *uuid.UUID
	FechaInicio   *time.Time
	FechaFin      *time.Time
	Limit         int
}

type AuditoriaStats struct {
	Total int64 `json:"total"`
	Hoy   int64 `json:"hoy"`
}

type AuditoriaRepo interface {
	Insert(ctx context.Context, a *models.Auditoria) error
	List(ctx context.Context, f AuditoriaFilter) ([]*models.Auditoria, error)
	Stats(ctx context.Context, inicioDia time.Time) (AuditoriaStats, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepo(db *gorm.DB) AuditoriaRepo { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Insert(ctx context.Context, a *models.Auditoria) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) List(ctx context.Context, f AuditoriaFilter) ([]*models.Auditoria, error) {
	q := r.db.WithContext(ctx).Model(&models.Auditoria{})

	if f.TablaAfectada != nil {
		q = q.Where("tabla_afectada = ?", *f.TablaAfectada)
	}
	if f.EmpleadoID != nil {
		q = q.Where("empleado_id = ?", *f.EmpleadoID)
	}
	if f.FechaInicio != nil {
		q = q.Where("created_at >= ?", *f.FechaInicio)
	}
	if f.FechaFin != nil {
		q = q.Where("created_at <= ?", *f.FechaFin)
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}

	var list []*models.Auditoria
	err := q.Order("created_at DESC").Limit(f.Limit).Find(&list).Error
	return list, err
}

func (r *auditoriaRepo) Stats(ctx context.Context, inicioDia time.Time) (AuditoriaStats, error) {
	var st AuditoriaStats
	if err := r.db.WithContext(ctx).Model(&models.Auditoria{}).Count(&st.Total).Error; err != nil {
		return st, err
	}
	err := r.db.WithContext(ctx).Model(&models.Auditoria{}).
		Where("created_at >= ?", inicioDia).
		Count(&st.Hoy).Error
	return st, err
}
