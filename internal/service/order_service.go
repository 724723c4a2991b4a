package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Teléfono peruano de celular: 9 seguido de 8 dígitos.
var telefonoRe = regexp.MustCompile(`^9\d{8}$`)

type ItemInput struct {
	Nombre   string
	Cantidad uint32
	Precio   decimal.Decimal
}

type CrearPedidoInput struct {
	ClienteNombre  string
	Telefono       string
	Direccion      string
	Referencia     *string
	MetodoPago     models.MetodoPago
	Pagado         bool
	Notas          *string
	Prioridad      *int16
	TiempoEstimado *int32
	RepartidorID   *uuid.UUID
	HoraEntrega    *time.Time
	Items          []ItemInput
}

type EditarPedidoInput struct {
	ClienteNombre  string
	Telefono       string
	Direccion      string
	Referencia     *string
	MetodoPago     models.MetodoPago
	Pagado         bool
	Notas          *string
	Prioridad      *int16
	TiempoEstimado *int32
	RepartidorID   *uuid.UUID
	HoraEntrega    *time.Time
	Items          []ItemInput // nil = no tocar los items
}

type PedidoService struct {
	pedidos repository.PedidoRepo
	items   repository.PedidoItemRepo
	audit   *AuditWriter
	events  EventBus
	log     *zap.Logger
	now     func() time.Time
}

func NewPedidoService(pedidos repository.PedidoRepo, items repository.PedidoItemRepo, audit *AuditWriter, events EventBus, log *zap.Logger) *PedidoService {
	return &PedidoService{
		pedidos: pedidos,
		items:   items,
		audit:   audit,
		events:  events,
		log:     log,
		now:     time.Now,
	}
}

func validarMetodoPago(m models.MetodoPago) bool {
	switch m {
	case models.PagoEfectivo, models.PagoYape, models.PagoPlin, models.PagoTransferencia:
		return true
	}
	return false
}

// calcularItems valida cada línea y devuelve los items con subtotal y el
// total del pedido. El total nunca viene del cliente, siempre se recalcula.
func calcularItems(in []ItemInput) ([]models.PedidoItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, ErrItemsVacios
	}
	total := decimal.Zero
	items := make([]models.PedidoItem, 0, len(in))
	for _, it := range in {
		if it.Nombre == "" || !it.Precio.IsPositive() {
			return nil, decimal.Zero, ErrItemInvalido
		}
		if it.Cantidad == 0 {
			return nil, decimal.Zero, ErrCantidadInvalida
		}
		sub := it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		items = append(items, models.PedidoItem{
			Nombre:   it.Nombre,
			Cantidad: it.Cantidad,
			Precio:   it.Precio,
			Subtotal: sub,
		})
		total = total.Add(sub)
	}
	return items, total, nil
}

func (s *PedidoService) validarCabecera(in *CrearPedidoInput) error {
	if in.ClienteNombre == "" || in.Direccion == "" {
		return ErrCampoObligatorio
	}
	if !telefonoRe.MatchString(in.Telefono) {
		return ErrTelefonoInvalido
	}
	if !validarMetodoPago(in.MetodoPago) {
		return fmt.Errorf("%w: método de pago", ErrCampoObligatorio)
	}
	if in.HoraEntrega != nil && in.HoraEntrega.Before(s.now()) {
		return ErrFechaPasada
	}
	return nil
}

func (s *PedidoService) Crear(ctx context.Context, in CrearPedidoInput) (*models.Pedido, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolReservas && actor.Rol != models.RolDelivery {
		return nil, ErrForbidden
	}
	if err := s.validarCabecera(&in); err != nil {
		return nil, err
	}
	items, total, err := calcularItems(in.Items)
	if err != nil {
		return nil, err
	}

	prioridad := int16(2)
	if in.Prioridad != nil {
		prioridad = *in.Prioridad
	}
	repartidor := in.RepartidorID
	if repartidor == nil && actor.Rol == models.RolDelivery {
		id := actor.ID
		repartidor = &id
	}

	p := &models.Pedido{
		ClienteNombre:  in.ClienteNombre,
		Telefono:       in.Telefono,
		Direccion:      in.Direccion,
		Referencia:     in.Referencia,
		Total:          total,
		MetodoPago:     in.MetodoPago,
		Pagado:         in.Pagado,
		Notas:          in.Notas,
		Estado:         models.PedidoPendiente,
		Prioridad:      prioridad,
		TiempoEstimado: in.TiempoEstimado,
		EmpleadoID:     actor.ID,
		RepartidorID:   repartidor,
		HoraEntrega:    in.HoraEntrega,
	}

	err = s.pedidos.WithTx(ctx, func(pr repository.PedidoRepo, ir repository.PedidoItemRepo) error {
		if err := pr.Create(ctx, p); err != nil {
			return err
		}
		for i := range items {
			items[i].PedidoID = p.ID
		}
		return ir.BulkCreate(ctx, items)
	})
	if err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	p.Items = items

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionCrearPedido, "pedidos", p.ID.String(), models.JSONB{
		"cliente": p.ClienteNombre,
		"total":   p.Total.StringFixed(2),
		"items":   len(items),
	})
	s.publicar(ctx, AccionCrearPedido, p.ID)
	return p, nil
}

// Editar reescribe la cabecera y opcionalmente los items. Sólo un pedido
// pendiente es editable; desde en_preparacion el registro queda bloqueado.
func (s *PedidoService) Editar(ctx context.Context, id uuid.UUID, version int64, in EditarPedidoInput) (*models.Pedido, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolReservas && actor.Rol != models.RolDelivery {
		return nil, ErrForbidden
	}

	p, err := s.pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPedidoNotFound
	}
	if p.Estado != models.PedidoPendiente {
		return nil, ErrRegistroBloqueado
	}

	cab := CrearPedidoInput{
		ClienteNombre: in.ClienteNombre,
		Telefono:      in.Telefono,
		Direccion:     in.Direccion,
		MetodoPago:    in.MetodoPago,
		HoraEntrega:   in.HoraEntrega,
	}
	if err := s.validarCabecera(&cab); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"cliente_nombre":  in.ClienteNombre,
		"telefono":        in.Telefono,
		"direccion":       in.Direccion,
		"referencia":      in.Referencia,
		"metodo_pago":     in.MetodoPago,
		"pagado":          in.Pagado,
		"notas":           in.Notas,
		"tiempo_estimado": in.TiempoEstimado,
		"repartidor_id":   in.RepartidorID,
		"hora_entrega":    in.HoraEntrega,
	}
	if in.Prioridad != nil {
		updates["prioridad"] = *in.Prioridad
	}

	var items []models.PedidoItem
	if in.Items != nil {
		var total decimal.Decimal
		items, total, err = calcularItems(in.Items)
		if err != nil {
			return nil, err
		}
		updates["total"] = total
	}

	err = s.pedidos.WithTx(ctx, func(pr repository.PedidoRepo, ir repository.PedidoItemRepo) error {
		ok, err := pr.UpdateFieldsCAS(ctx, id, version, updates)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVersionObsoleta
		}
		if items == nil {
			return nil
		}
		if err := ir.DeleteByPedido(ctx, id); err != nil {
			return err
		}
		for i := range items {
			items[i].PedidoID = id
		}
		return ir.BulkCreate(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEditarPedido, "pedidos", id.String(), models.JSONB{
		"cliente": in.ClienteNombre,
	})
	s.publicar(ctx, AccionEditarPedido, id)
	return s.pedidos.GetByID(ctx, id)
}

// Transicion avanza el pedido al estado siguiente de la cadena. La versión
// leída por el cliente es obligatoria: dos operadores sobre el mismo pedido
// no pueden pisarse.
func (s *PedidoService) Transicion(ctx context.Context, id uuid.UUID, a models.EstadoPedido, version int64) (*models.Pedido, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPedidoNotFound
	}
	if esTerminalPedido(p.Estado) {
		return nil, ErrTransicionInvalida
	}
	if a != models.PedidoCancelado && sucesorPedido[p.Estado] != a {
		return nil, ErrTransicionInvalida
	}
	esCreador := p.EmpleadoID == actor.ID
	if !puedeTransicionarPedido(actor.Rol, p.Estado, a, esCreador) {
		return nil, ErrForbidden
	}

	updates := map[string]any{"estado": a}
	ahora := s.now()
	switch a {
	case models.PedidoEnCamino:
		// La hora de salida se sella una sola vez, los reintentos no la mueven.
		if p.HoraSalidaReal == nil {
			updates["hora_salida_real"] = ahora
		}
	case models.PedidoEntregado:
		updates["hora_entrega_real"] = ahora
	}

	ok, err := s.pedidos.UpdateFieldsCAS(ctx, id, version, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVersionObsoleta
	}

	actorID := actor.ID
	accion := AccionEstadoPedido
	if a == models.PedidoCancelado {
		accion = AccionCancelarPedido
	}
	s.audit.Record(ctx, &actorID, accion, "pedidos", id.String(), models.JSONB{
		"de": string(p.Estado),
		"a":  string(a),
	})
	s.publicar(ctx, accion, id)
	return s.pedidos.GetByID(ctx, id)
}

// Cancelar anula el pedido desde cualquier estado no terminal y anota el
// motivo en las notas.
func (s *PedidoService) Cancelar(ctx context.Context, id uuid.UUID, version int64, motivo string) (*models.Pedido, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPedidoNotFound
	}
	if esTerminalPedido(p.Estado) {
		return nil, ErrTransicionInvalida
	}
	if !puedeTransicionarPedido(actor.Rol, p.Estado, models.PedidoCancelado, p.EmpleadoID == actor.ID) {
		return nil, ErrForbidden
	}

	updates := map[string]any{"estado": models.PedidoCancelado}
	if motivo != "" {
		notas := motivo
		if p.Notas != nil && *p.Notas != "" {
			notas = *p.Notas + " | Cancelado: " + motivo
		}
		updates["notas"] = notas
	}
	ok, err := s.pedidos.UpdateFieldsCAS(ctx, id, version, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVersionObsoleta
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionCancelarPedido, "pedidos", id.String(), models.JSONB{
		"de":     string(p.Estado),
		"motivo": motivo,
	})
	s.publicar(ctx, AccionCancelarPedido, id)
	return s.pedidos.GetByID(ctx, id)
}

func (s *PedidoService) Get(ctx context.Context, id uuid.UUID) (*models.Pedido, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	p, err := s.pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPedidoNotFound
	}
	return p, nil
}

func (s *PedidoService) List(ctx context.Context, f repository.PedidoListFilter) ([]*models.Pedido, int64, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !CanAccess(actor.Rol, PanelDelivery) && actor.Rol != models.RolCocina {
		return nil, 0, ErrForbidden
	}
	return s.pedidos.List(ctx, f)
}

func (s *PedidoService) Estadisticas(ctx context.Context) (repository.PedidoStats, error) {
	if _, err := requireActor(ctx); err != nil {
		return repository.PedidoStats{}, err
	}
	y, m, d := s.now().Date()
	inicioDia := time.Date(y, m, d, 0, 0, 0, 0, s.now().Location())
	return s.pedidos.Stats(ctx, inicioDia)
}

func (s *PedidoService) publicar(ctx context.Context, accion string, id uuid.UUID) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCambio(ctx, "pedidos", accion, id.String()); err != nil {
		s.log.Warn("no se pudo publicar cambio de pedido", zap.Error(err))
	}
}
