package repository

import (
	"context"
	"errors"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoListFilter struct {
	Estado       *models.EstadoPedido
	RepartidorID *uuid.UUID
	Limit        int
	Offset       int
}

type PedidoStats struct {
	TotalHoy   int64 `json:"total_hoy"`
	Pendientes int64 `json:"pendientes"`
	EnCamino   int64 `json:"en_camino"`
}

type PedidoRepo interface {
	Create(ctx context.Context, p *models.Pedido) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error)
	List(ctx context.Context, f PedidoListFilter) ([]*models.Pedido, int64, error)
	ListByEstados(ctx context.Context, estados []models.EstadoPedido) ([]*models.Pedido, error)

	// UpdateFieldsCAS aplica updates sólo si la versión coincide; incrementa
	// version en el mismo UPDATE. Devuelve false si la versión quedó obsoleta.
	UpdateFieldsCAS(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error)

	Stats(ctx context.Context, inicioDia time.Time) (PedidoStats, error)

	WithTx(ctx context.Context, fn func(tx PedidoRepo, txItems PedidoItemRepo) error) error
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepo(db *gorm.DB) PedidoRepo { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *models.Pedido) error {
	return r.db.WithContext(ctx).Omit("Items").Create(p).Error
}

func (r *pedidoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error) {
	var ped models.Pedido
	err := r.db.WithContext(ctx).Preload("Items").First(&ped, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ped, err
}

func (r *pedidoRepo) List(ctx context.Context, f PedidoListFilter) ([]*models.Pedido, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Pedido{})

	if f.Estado != nil {
		q = q.Where("estado = ?", *f.Estado)
	}
	if f.RepartidorID != nil {
		q = q.Where("repartidor_id = ?", *f.RepartidorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Pedido
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Preload("Items").Find(&list).Error
	return list, total, err
}

func (r *pedidoRepo) ListByEstados(ctx context.Context, estados []models.EstadoPedido) ([]*models.Pedido, error) {
	var list []*models.Pedido
	err := r.db.WithContext(ctx).
		Where("estado IN ?", estados).
		Order("prioridad ASC, created_at ASC").
		Preload("Items").
		Find(&list).Error
	return list, err
}

func (r *pedidoRepo) UpdateFieldsCAS(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error) {
	upd := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		upd[k] = v
	}
	upd["version"] = gorm.Expr("version + 1")

	tx := r.db.WithContext(ctx).
		Model(&models.Pedido{}).
		Where("id = ? AND version = ?", id, version).
		Updates(upd)
	return tx.RowsAffected > 0, tx.Error
}

func (r *pedidoRepo) Stats(ctx context.Context, inicioDia time.Time) (PedidoStats, error) {
	var st PedidoStats

	if err := r.db.WithContext(ctx).Model(&models.Pedido{}).
		Where("created_at >= ?", inicioDia).
		Count(&st.TotalHoy).Error; err != nil {
		return st, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Pedido{}).
		Where("estado = ?", models.PedidoPendiente).
		Count(&st.Pendientes).Error; err != nil {
		return st, err
	}
	err := r.db.WithContext(ctx).Model(&models.Pedido{}).
		Where("estado = ?", models.PedidoEnCamino).
		Count(&st.EnCamino).Error
	return st, err
}

func (r *pedidoRepo) WithTx(ctx context.Context, fn func(tx PedidoRepo, txItems PedidoItemRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pedidoRepo{db: tx}, &pedidoItemRepo{db: tx})
	})
}
