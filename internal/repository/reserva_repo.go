package repository

import (
	"context"
	"errors"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservaRepo interface {
	Create(ctx context.Context, res *models.Reserva) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reserva, error)
	ListByFecha(ctx context.Context, fecha time.Time) ([]*models.Reserva, error)
	ListAll(ctx context.Context) ([]*models.Reserva, error)
	BuscarPorCliente(ctx context.Context, nombre string) ([]*models.Reserva, error)

	// MesasOcupadas devuelve los ids de mesa con reserva no cancelada en el
	// slot exacto fecha+hora.
	MesasOcupadas(ctx context.Context, fecha time.Time, hora string) ([]string, error)
	ExisteConflicto(ctx context.Context, mesa string, fecha time.Time, hora string, excluir *uuid.UUID) (bool, error)

	UpdateFieldsCAS(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EsDuplicado reconoce la violación del índice único parcial de slots de
// mesa (el driver de postgres la traduce a gorm.ErrDuplicatedKey).
func EsDuplicado(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepo(db *gorm.DB) ReservaRepo { return &reservaRepo{db: db} }

func (r *reservaRepo) Create(ctx context.Context, res *models.Reserva) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reserva, error) {
	var res models.Reserva
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &res, err
}

func (r *reservaRepo) ListByFecha(ctx context.Context, fecha time.Time) ([]*models.Reserva, error) {
	var list []*models.Reserva
	err := r.db.WithContext(ctx).
		Where("fecha = ?", fecha.Format("2006-01-02")).
		Order("hora ASC").
		Find(&list).Error
	return list, err
}

func (r *reservaRepo) ListAll(ctx context.Context) ([]*models.Reserva, error) {
	var list []*models.Reserva
	err := r.db.WithContext(ctx).
		Order("fecha ASC, hora ASC").
		Find(&list).Error
	return list, err
}

func (r *reservaRepo) BuscarPorCliente(ctx context.Context, nombre string) ([]*models.Reserva, error) {
	var list []*models.Reserva
	err := r.db.WithContext(ctx).
		Where("cliente_nombre ILIKE ?", "%"+nombre+"%").
		Order("fecha ASC, hora ASC").
		Find(&list).Error
	return list, err
}

func (r *reservaRepo) MesasOcupadas(ctx context.Context, fecha time.Time, hora string) ([]string, error) {
	var mesas []string
	err := r.db.WithContext(ctx).
		Model(&models.Reserva{}).
		Where("fecha = ? AND hora = ? AND estado <> ? AND numero_mesa <> ''",
			fecha.Format("2006-01-02"), hora, models.ReservaCancelada).
		Pluck("numero_mesa", &mesas).Error
	return mesas, err
}

func (r *reservaRepo) ExisteConflicto(ctx context.Context, mesa string, fecha time.Time, hora string, excluir *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Reserva{}).
		Where("numero_mesa = ? AND fecha = ? AND hora = ? AND estado <> ?",
			mesa, fecha.Format("2006-01-02"), hora, models.ReservaCancelada)
	if excluir != nil {
		q = q.Where("id <> ?", *excluir)
	}

	var cnt int64
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

func (r *reservaRepo) UpdateFieldsCAS(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error) {
	upd := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		upd[k] = v
	}
	upd["version"] = gorm.Expr("version + 1")

	tx := r.db.WithContext(ctx).
		Model(&models.Reserva{}).
		Where("id = ? AND version = ?", id, version).
		Updates(upd)
	return tx.RowsAffected > 0, tx.Error
}

func (r *reservaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Reserva{}, "id = ?", id).Error
}
