package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Inventario reducido en orden de preferencia, como lo siembra la migración.
func mesasDePrueba() []*models.Mesa {
	return []*models.Mesa{
		{ID: "T-01", Etiqueta: "Terraza 1", Capacidad: 2, Zona: models.ZonaTerraza, Posicion: 1},
		{ID: "T-03", Etiqueta: "Terraza 3", Capacidad: 4, Zona: models.ZonaTerraza, Posicion: 3},
		{ID: "S-03", Etiqueta: "Salón 3", Capacidad: 6, Zona: models.ZonaSalon, Posicion: 7},
		{ID: "VIP-01", Etiqueta: "VIP", Capacidad: 10, Zona: models.ZonaVIP, Posicion: 11},
	}
}

func newReservaService(reservas *MockReservaRepo, mesas *MockMesaRepo, audit *MockAuditoriaRepo, bus *MockEventBus) *service.ReservaService {
	log := zap.NewNop()
	return service.NewReservaService(reservas, mesas, service.NewAuditWriter(audit, log), bus, log)
}

func fechaFutura() time.Time {
	return time.Now().AddDate(0, 0, 7)
}

func reservaBase() service.ReservaInput {
	return service.ReservaInput{
		ClienteNombre:    "Jorge Paredes",
		ClienteTelefono:  "912345678",
		Fecha:            fechaFutura(),
		Hora:             "20:00",
		CantidadPersonas: 4,
		NumeroMesa:       "T-03",
	}
}

func TestSugerirMesa_PrimeraLibrePorPreferencia(t *testing.T) {
	mesas := &MockMesaRepo{ListAllFunc: func(ctx context.Context) ([]*models.Mesa, error) {
		return mesasDePrueba(), nil
	}}

	casos := []struct {
		nombre   string
		personas int
		ocupadas []string
		quiere   string
		err      error
	}{
		{"pareja toma la primera chica", 2, nil, "T-01", nil},
		{"grupo de 4 salta las de 2", 4, nil, "T-03", nil},
		{"ocupada la preferida, sigue la lista", 4, []string{"T-03"}, "S-03", nil},
		{"grupo de 6 cae en el VIP si el salón está tomado", 6, []string{"S-03"}, "VIP-01", nil},
		{"grupo de 8 va directo al VIP", 8, nil, "VIP-01", nil},
		{"sin aforo posible", 12, nil, "", service.ErrSinMesaDisponible},
		{"todo ocupado", 2, []string{"T-01", "T-03", "S-03", "VIP-01"}, "", service.ErrSinMesaDisponible},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			reservas := &MockReservaRepo{MesasOcupadasFunc: func(ctx context.Context, fecha time.Time, hora string) ([]string, error) {
				return c.ocupadas, nil
			}}
			svc := newReservaService(reservas, mesas, &MockAuditoriaRepo{}, &MockEventBus{})

			ctx, _ := ctxConActor(models.RolReservas)
			mesa, err := svc.SugerirMesa(ctx, c.personas, fechaFutura(), "20:00")
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Fatalf("err = %v, esperado %v", err, c.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SugerirMesa: %v", err)
			}
			if mesa.ID != c.quiere {
				t.Errorf("mesa = %s, esperada %s", mesa.ID, c.quiere)
			}
		})
	}
}

func TestCrearReserva_MesaOcupada(t *testing.T) {
	reservas := &MockReservaRepo{
		ExisteConflictoFunc: func(ctx context.Context, mesa string, fecha time.Time, hora string, excluir *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	mesas := &MockMesaRepo{GetByIDFunc: func(ctx context.Context, id string) (*models.Mesa, error) {
		return &models.Mesa{ID: id, Capacidad: 4}, nil
	}}
	svc := newReservaService(reservas, mesas, &MockAuditoriaRepo{}, &MockEventBus{})

	ctx, _ := ctxConActor(models.RolReservas)
	if _, err := svc.Crear(ctx, reservaBase()); !errors.Is(err, service.ErrMesaOcupada) {
		t.Errorf("err = %v, esperado ErrMesaOcupada", err)
	}
}

func TestCrearReserva_FechaPasada(t *testing.T) {
	svc := newReservaService(&MockReservaRepo{}, &MockMesaRepo{}, &MockAuditoriaRepo{}, &MockEventBus{})
	ctx, _ := ctxConActor(models.RolReservas)

	in := reservaBase()
	in.Fecha = time.Now().AddDate(0, 0, -1)
	if _, err := svc.Crear(ctx, in); !errors.Is(err, service.ErrFechaPasada) {
		t.Errorf("err = %v, esperado ErrFechaPasada", err)
	}
}

func TestCrearReserva_SinMesaEsValida(t *testing.T) {
	var creada *models.Reserva
	reservas := &MockReservaRepo{CreateFunc: func(ctx context.Context, r *models.Reserva) error {
		r.ID = uuid.New()
		creada = r
		return nil
	}}
	svc := newReservaService(reservas, &MockMesaRepo{}, &MockAuditoriaRepo{}, &MockEventBus{})

	ctx, _ := ctxConActor(models.RolReservas)
	in := reservaBase()
	in.NumeroMesa = ""
	if _, err := svc.Crear(ctx, in); err != nil {
		t.Fatalf("Crear sin mesa: %v", err)
	}
	if creada.NumeroMesa != "" {
		t.Errorf("la reserva sin mesa debe quedar sin mesa asignada")
	}
}

func TestCrearReserva_AdminSoloLectura(t *testing.T) {
	svc := newReservaService(&MockReservaRepo{}, &MockMesaRepo{}, &MockAuditoriaRepo{}, &MockEventBus{})
	ctx, _ := ctxConActor(models.RolAdmin)

	if _, err := svc.Crear(ctx, reservaBase()); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("admin crea reserva: err = %v, esperado ErrForbidden", err)
	}
}

func TestCambiarEstadoReserva_Transiciones(t *testing.T) {
	casos := []struct {
		de     models.EstadoReserva
		a      models.EstadoReserva
		quiere error
	}{
		{models.ReservaPendiente, models.ReservaConfirmada, nil},
		{models.ReservaPendiente, models.ReservaCancelada, nil},
		{models.ReservaPendiente, models.ReservaNoShow, nil},
		{models.ReservaConfirmada, models.ReservaFinalizada, nil},
		{models.ReservaConfirmada, models.ReservaCancelada, nil},
		{models.ReservaConfirmada, models.ReservaNoShow, nil},
		{models.ReservaPendiente, models.ReservaFinalizada, service.ErrTransicionInvalida},
		{models.ReservaCancelada, models.ReservaConfirmada, service.ErrTransicionInvalida},
		{models.ReservaFinalizada, models.ReservaPendiente, service.ErrTransicionInvalida},
		{models.ReservaNoShow, models.ReservaConfirmada, service.ErrTransicionInvalida},
	}

	for _, c := range casos {
		id := uuid.New()
		reservas := &MockReservaRepo{GetByIDFunc: func(ctx context.Context, rid uuid.UUID) (*models.Reserva, error) {
			return &models.Reserva{ID: id, Estado: c.de, Version: 1}, nil
		}}
		svc := newReservaService(reservas, &MockMesaRepo{}, &MockAuditoriaRepo{}, &MockEventBus{})

		ctx, _ := ctxConActor(models.RolReservas)
		_, err := svc.CambiarEstado(ctx, id, c.a, 1)
		if c.quiere == nil && err != nil {
			t.Errorf("%s -> %s: err = %v", c.de, c.a, err)
		}
		if c.quiere != nil && !errors.Is(err, c.quiere) {
			t.Errorf("%s -> %s: err = %v, esperado %v", c.de, c.a, err, c.quiere)
		}
	}
}

func TestEditarReserva_SoloPendiente(t *testing.T) {
	id := uuid.New()
	reservas := &MockReservaRepo{GetByIDFunc: func(ctx context.Context, rid uuid.UUID) (*models.Reserva, error) {
		return &models.Reserva{ID: id, Estado: models.ReservaConfirmada, Version: 1}, nil
	}}
	svc := newReservaService(reservas, &MockMesaRepo{}, &MockAuditoriaRepo{}, &MockEventBus{})

	ctx, _ := ctxConActor(models.RolReservas)
	if _, err := svc.Editar(ctx, id, 1, reservaBase()); !errors.Is(err, service.ErrRegistroBloqueado) {
		t.Errorf("err = %v, esperado ErrRegistroBloqueado", err)
	}
}

func TestEliminarReserva_AuditaAntesDeBorrar(t *testing.T) {
	id := uuid.New()
	audit := &MockAuditoriaRepo{}
	borrada := false
	reservas := &MockReservaRepo{
		GetByIDFunc: func(ctx context.Context, rid uuid.UUID) (*models.Reserva, error) {
			return &models.Reserva{ID: id, Estado: models.ReservaPendiente, ClienteNombre: "Jorge", Version: 1}, nil
		},
		DeleteFunc: func(ctx context.Context, rid uuid.UUID) error {
			if len(audit.Entradas) == 0 {
				t.Errorf("la auditoría debe escribirse antes del borrado")
			}
			borrada = true
			return nil
		},
	}
	svc := newReservaService(reservas, &MockMesaRepo{}, audit, &MockEventBus{})

	ctx, _ := ctxConActor(models.RolReservas)
	if err := svc.Eliminar(ctx, id); err != nil {
		t.Fatalf("Eliminar: %v", err)
	}
	if !borrada {
		t.Errorf("la reserva no se borró")
	}
}
