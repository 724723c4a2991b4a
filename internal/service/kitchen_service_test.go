package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/service"

	"github.com/google/uuid"
)

func TestTablero_ProyectaPorEstado(t *testing.T) {
	pedidos := &MockPedidoRepo{
		ListByEstadosFunc: func(ctx context.Context, estados []models.EstadoPedido) ([]*models.Pedido, error) {
			return []*models.Pedido{
				pedidoEnEstado(uuid.New(), models.PedidoPendiente, uuid.New()),
				pedidoEnEstado(uuid.New(), models.PedidoEnPreparacion, uuid.New()),
				pedidoEnEstado(uuid.New(), models.PedidoEnPreparacion, uuid.New()),
				pedidoEnEstado(uuid.New(), models.PedidoListoReparto, uuid.New()),
			}, nil
		},
	}
	orders := newPedidoService(pedidos, &MockAuditoriaRepo{}, &MockEventBus{})
	svc := service.NewCocinaService(pedidos, orders)

	ctx, _ := ctxConActor(models.RolCocina)
	tab, err := svc.Tablero(ctx)
	if err != nil {
		t.Fatalf("Tablero: %v", err)
	}
	if len(tab.Registrados) != 1 || len(tab.Cocinando) != 2 || len(tab.Listos) != 1 {
		t.Errorf("columnas = %d/%d/%d, esperado 1/2/1",
			len(tab.Registrados), len(tab.Cocinando), len(tab.Listos))
	}
}

func TestTablero_RolSinCocina(t *testing.T) {
	orders := newPedidoService(&MockPedidoRepo{}, &MockAuditoriaRepo{}, &MockEventBus{})
	svc := service.NewCocinaService(&MockPedidoRepo{}, orders)

	ctx, _ := ctxConActor(models.RolDelivery)
	if _, err := svc.Tablero(ctx); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("err = %v, esperado ErrForbidden", err)
	}
}

func TestIniciarCocina_PasaPorLaMaquinaDeEstados(t *testing.T) {
	id := uuid.New()
	pedidos := &MockPedidoRepo{
		GetByIDFunc: func(ctx context.Context, pid uuid.UUID) (*models.Pedido, error) {
			return pedidoEnEstado(id, models.PedidoPendiente, uuid.New()), nil
		},
	}
	orders := newPedidoService(pedidos, &MockAuditoriaRepo{}, &MockEventBus{})
	svc := service.NewCocinaService(pedidos, orders)

	ctx, _ := ctxConActor(models.RolCocina)
	if _, err := svc.IniciarCocina(ctx, id, 1); err != nil {
		t.Fatalf("IniciarCocina: %v", err)
	}

	// El mismo pedido ya en camino no puede volver a cocina.
	pedidos.GetByIDFunc = func(ctx context.Context, pid uuid.UUID) (*models.Pedido, error) {
		return pedidoEnEstado(id, models.PedidoEnCamino, uuid.New()), nil
	}
	if _, err := svc.IniciarCocina(ctx, id, 2); !errors.Is(err, service.ErrTransicionInvalida) {
		t.Errorf("err = %v, esperado ErrTransicionInvalida", err)
	}
}
