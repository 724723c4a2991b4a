package service

import (
	"context"
	"fmt"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservaInput struct {
	ClienteNombre    string
	ClienteTelefono  string
	ClienteEmail     *string
	Fecha            time.Time
	Hora             string
	CantidadPersonas int
	NumeroMesa       string // vacío = sin mesa
	Observaciones    *string
}

type ReservaService struct {
	reservas repository.ReservaRepo
	mesas    repository.MesaRepo
	audit    *AuditWriter
	events   EventBus
	log      *zap.Logger
	now      func() time.Time
}

func NewReservaService(reservas repository.ReservaRepo, mesas repository.MesaRepo, audit *AuditWriter, events EventBus, log *zap.Logger) *ReservaService {
	return &ReservaService{
		reservas: reservas,
		mesas:    mesas,
		audit:    audit,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

func soloFecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ReservaService) validar(in *ReservaInput) error {
	if in.ClienteNombre == "" || in.ClienteTelefono == "" || in.Hora == "" {
		return ErrCampoObligatorio
	}
	if in.CantidadPersonas <= 0 {
		return ErrPersonasInvalidas
	}
	if soloFecha(in.Fecha).Before(soloFecha(s.now())) {
		return ErrFechaPasada
	}
	return nil
}

// SugerirMesa recorre el inventario en orden de preferencia y devuelve la
// primera mesa libre con aforo suficiente para el horario pedido.
func (s *ReservaService) SugerirMesa(ctx context.Context, personas int, fecha time.Time, hora string) (*models.Mesa, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if personas <= 0 {
		return nil, ErrPersonasInvalidas
	}
	mesas, err := s.mesas.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ocupadas, err := s.reservas.MesasOcupadas(ctx, fecha, hora)
	if err != nil {
		return nil, err
	}
	libre := make(map[string]bool, len(mesas))
	for _, m := range mesas {
		libre[m.ID] = true
	}
	for _, id := range ocupadas {
		libre[id] = false
	}
	for _, m := range mesas {
		if m.Capacidad >= personas && libre[m.ID] {
			return m, nil
		}
	}
	return nil, ErrSinMesaDisponible
}

// verificarMesa valida existencia y disponibilidad de la mesa pedida. El
// índice único parcial de reservas es la última línea de defensa contra dos
// escrituras simultáneas sobre el mismo slot.
func (s *ReservaService) verificarMesa(ctx context.Context, in *ReservaInput, excluir *uuid.UUID) error {
	if in.NumeroMesa == "" {
		return nil
	}
	mesa, err := s.mesas.GetByID(ctx, in.NumeroMesa)
	if err != nil {
		return err
	}
	if mesa == nil {
		return ErrMesaNotFound
	}
	ocupada, err := s.reservas.ExisteConflicto(ctx, in.NumeroMesa, in.Fecha, in.Hora, excluir)
	if err != nil {
		return err
	}
	if ocupada {
		return ErrMesaOcupada
	}
	return nil
}

func (s *ReservaService) Crear(ctx context.Context, in ReservaInput) (*models.Reserva, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolReservas {
		return nil, ErrForbidden
	}
	if err := s.validar(&in); err != nil {
		return nil, err
	}
	if err := s.verificarMesa(ctx, &in, nil); err != nil {
		return nil, err
	}

	actorID := actor.ID
	r := &models.Reserva{
		ClienteNombre:    in.ClienteNombre,
		ClienteTelefono:  in.ClienteTelefono,
		ClienteEmail:     in.ClienteEmail,
		Fecha:            soloFecha(in.Fecha),
		Hora:             in.Hora,
		CantidadPersonas: in.CantidadPersonas,
		Estado:           models.ReservaPendiente,
		NumeroMesa:       in.NumeroMesa,
		Observaciones:    in.Observaciones,
		EmpleadoID:       &actorID,
	}
	if err := s.reservas.Create(ctx, r); err != nil {
		if repository.EsDuplicado(err) {
			return nil, ErrMesaOcupada
		}
		return nil, fmt.Errorf("crear reserva: %w", err)
	}

	s.audit.Record(ctx, &actorID, AccionCrearReserva, "reservas", r.ID.String(), models.JSONB{
		"cliente": r.ClienteNombre,
		"fecha":   r.Fecha.Format("2006-01-02"),
		"hora":    r.Hora,
		"mesa":    r.NumeroMesa,
	})
	s.publicar(ctx, AccionCrearReserva, r.ID)
	return r, nil
}

// Editar sólo procede mientras la reserva está pendiente; una reserva
// confirmada o cerrada es inmutable salvo por su estado.
func (s *ReservaService) Editar(ctx context.Context, id uuid.UUID, version int64, in ReservaInput) (*models.Reserva, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolReservas {
		return nil, ErrForbidden
	}
	r, err := s.reservas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReservaNotFound
	}
	if r.Estado != models.ReservaPendiente {
		return nil, ErrRegistroBloqueado
	}
	if err := s.validar(&in); err != nil {
		return nil, err
	}
	if err := s.verificarMesa(ctx, &in, &id); err != nil {
		return nil, err
	}

	ok, err := s.reservas.UpdateFieldsCAS(ctx, id, version, map[string]any{
		"cliente_nombre":    in.ClienteNombre,
		"cliente_telefono":  in.ClienteTelefono,
		"cliente_email":     in.ClienteEmail,
		"fecha":             soloFecha(in.Fecha),
		"hora":              in.Hora,
		"cantidad_personas": in.CantidadPersonas,
		"numero_mesa":       in.NumeroMesa,
		"observaciones":     in.Observaciones,
	})
	if err != nil {
		if repository.EsDuplicado(err) {
			return nil, ErrMesaOcupada
		}
		return nil, err
	}
	if !ok {
		return nil, ErrVersionObsoleta
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEditarReserva, "reservas", id.String(), models.JSONB{
		"cliente": in.ClienteNombre,
		"mesa":    in.NumeroMesa,
	})
	s.publicar(ctx, AccionEditarReserva, id)
	return s.reservas.GetByID(ctx, id)
}

func (s *ReservaService) CambiarEstado(ctx context.Context, id uuid.UUID, a models.EstadoReserva, version int64) (*models.Reserva, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolReservas {
		return nil, ErrForbidden
	}
	r, err := s.reservas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReservaNotFound
	}
	if !transicionReservaValida(r.Estado, a) {
		return nil, ErrTransicionInvalida
	}

	ok, err := s.reservas.UpdateFieldsCAS(ctx, id, version, map[string]any{"estado": a})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVersionObsoleta
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEstadoReserva, "reservas", id.String(), models.JSONB{
		"de": string(r.Estado),
		"a":  string(a),
	})
	s.publicar(ctx, AccionEstadoReserva, id)
	return s.reservas.GetByID(ctx, id)
}

// Eliminar borra una reserva pendiente. La auditoría se escribe antes del
// borrado para que quede rastro aunque el registro desaparezca.
func (s *ReservaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if actor.Rol != models.RolReservas {
		return ErrForbidden
	}
	r, err := s.reservas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrReservaNotFound
	}
	if r.Estado != models.ReservaPendiente {
		return ErrRegistroBloqueado
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEliminarReserva, "reservas", id.String(), models.JSONB{
		"cliente": r.ClienteNombre,
		"fecha":   r.Fecha.Format("2006-01-02"),
		"hora":    r.Hora,
	})
	if err := s.reservas.Delete(ctx, id); err != nil {
		return err
	}
	s.publicar(ctx, AccionEliminarReserva, id)
	return nil
}

func (s *ReservaService) Get(ctx context.Context, id uuid.UUID) (*models.Reserva, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	r, err := s.reservas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReservaNotFound
	}
	return r, nil
}

func (s *ReservaService) ListarPorFecha(ctx context.Context, fecha time.Time) ([]*models.Reserva, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelReservas) {
		return nil, ErrForbidden
	}
	return s.reservas.ListByFecha(ctx, soloFecha(fecha))
}

func (s *ReservaService) ListarTodas(ctx context.Context) ([]*models.Reserva, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelReservas) {
		return nil, ErrForbidden
	}
	return s.reservas.ListAll(ctx)
}

func (s *ReservaService) BuscarPorCliente(ctx context.Context, nombre string) ([]*models.Reserva, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelReservas) {
		return nil, ErrForbidden
	}
	return s.reservas.BuscarPorCliente(ctx, nombre)
}

// MapaMesas devuelve el inventario completo con la ocupación del horario.
func (s *ReservaService) MapaMesas(ctx context.Context, fecha time.Time, hora string) ([]*models.Mesa, map[string]bool, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !CanAccess(actor.Rol, PanelReservas) {
		return nil, nil, ErrForbidden
	}
	mesas, err := s.mesas.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	ocupadas, err := s.reservas.MesasOcupadas(ctx, fecha, hora)
	if err != nil {
		return nil, nil, err
	}
	ocupacion := make(map[string]bool, len(ocupadas))
	for _, id := range ocupadas {
		ocupacion[id] = true
	}
	return mesas, ocupacion, nil
}

func (s *ReservaService) publicar(ctx context.Context, accion string, id uuid.UUID) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCambio(ctx, "reservas", accion, id.String()); err != nil {
		s.log.Warn("no se pudo publicar cambio de reserva", zap.Error(err))
	}
}
