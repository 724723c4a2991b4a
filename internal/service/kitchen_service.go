package service

import (
	"context"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"

	"github.com/google/uuid"
)

// TableroCocina es la proyección del panel de cocina: tres columnas derivadas
// del estado persistido del pedido, sin estado propio de cocina.
type TableroCocina struct {
	Registrados []*models.Pedido
	Cocinando   []*models.Pedido
	Listos      []*models.Pedido
}

type CocinaService struct {
	pedidos repository.PedidoRepo
	orders  *PedidoService
}

func NewCocinaService(pedidos repository.PedidoRepo, orders *PedidoService) *CocinaService {
	return &CocinaService{pedidos: pedidos, orders: orders}
}

func (s *CocinaService) Tablero(ctx context.Context) (*TableroCocina, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelCocina) {
		return nil, ErrForbidden
	}

	list, err := s.pedidos.ListByEstados(ctx, []models.EstadoPedido{
		models.PedidoPendiente,
		models.PedidoEnPreparacion,
		models.PedidoListoReparto,
	})
	if err != nil {
		return nil, err
	}

	t := &TableroCocina{}
	for _, p := range list {
		switch p.Estado {
		case models.PedidoPendiente:
			t.Registrados = append(t.Registrados, p)
		case models.PedidoEnPreparacion:
			t.Cocinando = append(t.Cocinando, p)
		case models.PedidoListoReparto:
			t.Listos = append(t.Listos, p)
		}
	}
	return t, nil
}

// IniciarCocina y MarcarListo son las dos acciones del tablero; ambas pasan
// por la máquina de estados del pedido, que valida rol y versión.
func (s *CocinaService) IniciarCocina(ctx context.Context, id uuid.UUID, version int64) (*models.Pedido, error) {
	return s.orders.Transicion(ctx, id, models.PedidoEnPreparacion, version)
}

func (s *CocinaService) MarcarListo(ctx context.Context, id uuid.UUID, version int64) (*models.Pedido, error) {
	return s.orders.Transicion(ctx, id, models.PedidoListoReparto, version)
}
