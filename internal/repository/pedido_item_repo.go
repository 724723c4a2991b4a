package repository

import (
	"context"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoItemRepo interface {
	BulkCreate(ctx context.Context, items []models.PedidoItem) error
	DeleteByPedido(ctx context.Context, pedidoID uuid.UUID) error
}

type pedidoItemRepo struct{ db *gorm.DB }

func NewPedidoItemRepo(db *gorm.DB) PedidoItemRepo { return &pedidoItemRepo{db: db} }

func (r *pedidoItemRepo) BulkCreate(ctx context.Context, items []models.PedidoItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *pedidoItemRepo) DeleteByPedido(ctx context.Context, pedidoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Delete(&models.PedidoItem{}).Error
}
