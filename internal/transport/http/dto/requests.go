package dto

import (
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Sesión ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Empleado  EmpleadoResponse `json:"empleado"`
}

type EmpleadoResponse struct {
	ID       uuid.UUID             `json:"id"`
	Nombre   string                `json:"nombre"`
	Email    string                `json:"email"`
	Telefono string                `json:"telefono,omitempty"`
	Rol      models.Rol            `json:"rol"`
	Estado   models.EstadoEmpleado `json:"estado"`
	Paneles  []string              `json:"paneles,omitempty"`
}

func ToEmpleadoResponse(e *models.Empleado) EmpleadoResponse {
	return EmpleadoResponse{
		ID:       e.ID,
		Nombre:   e.Nombre,
		Email:    e.Email,
		Telefono: e.Telefono,
		Rol:      e.Rol,
		Estado:   e.Estado,
	}
}

// --- Pedidos ---

type ItemRequest struct {
	Nombre   string          `json:"nombre" binding:"required"`
	Cantidad uint32          `json:"cantidad" binding:"required"`
	Precio   decimal.Decimal `json:"precio" binding:"required"`
}

type CrearPedidoRequest struct {
	ClienteNombre  string            `json:"cliente_nombre" binding:"required"`
	Telefono       string            `json:"telefono" binding:"required"`
	Direccion      string            `json:"direccion" binding:"required"`
	Referencia     *string           `json:"referencia"`
	MetodoPago     models.MetodoPago `json:"metodo_pago" binding:"required"`
	Pagado         bool              `json:"pagado"`
	Notas          *string           `json:"notas"`
	Prioridad      *int16            `json:"prioridad"`
	TiempoEstimado *int32            `json:"tiempo_estimado"`
	RepartidorID   *uuid.UUID        `json:"repartidor_id"`
	HoraEntrega    *time.Time        `json:"hora_entrega"`
	Items          []ItemRequest     `json:"items" binding:"required"`
}

type EditarPedidoRequest struct {
	Version        int64             `json:"version" binding:"required"`
	ClienteNombre  string            `json:"cliente_nombre" binding:"required"`
	Telefono       string            `json:"telefono" binding:"required"`
	Direccion      string            `json:"direccion" binding:"required"`
	Referencia     *string           `json:"referencia"`
	MetodoPago     models.MetodoPago `json:"metodo_pago" binding:"required"`
	Pagado         bool              `json:"pagado"`
	Notas          *string           `json:"notas"`
	Prioridad      *int16            `json:"prioridad"`
	TiempoEstimado *int32            `json:"tiempo_estimado"`
	RepartidorID   *uuid.UUID        `json:"repartidor_id"`
	HoraEntrega    *time.Time        `json:"hora_entrega"`
	Items          []ItemRequest     `json:"items"`
}

type TransicionPedidoRequest struct {
	Estado  models.EstadoPedido `json:"estado" binding:"required"`
	Version int64               `json:"version" binding:"required"`
}

type CancelarPedidoRequest struct {
	Version int64  `json:"version" binding:"required"`
	Motivo  string `json:"motivo"`
}

type ItemResponse struct {
	Nombre   string          `json:"nombre"`
	Cantidad uint32          `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID              uuid.UUID           `json:"id"`
	ClienteNombre   string              `json:"cliente_nombre"`
	Telefono        string              `json:"telefono"`
	Direccion       string              `json:"direccion"`
	Referencia      *string             `json:"referencia,omitempty"`
	Total           decimal.Decimal     `json:"total"`
	MetodoPago      models.MetodoPago   `json:"metodo_pago"`
	Pagado          bool                `json:"pagado"`
	Notas           *string             `json:"notas,omitempty"`
	Estado          models.EstadoPedido `json:"estado"`
	Prioridad       int16               `json:"prioridad"`
	TiempoEstimado  *int32              `json:"tiempo_estimado,omitempty"`
	EmpleadoID      uuid.UUID           `json:"empleado_id"`
	RepartidorID    *uuid.UUID          `json:"repartidor_id,omitempty"`
	HoraEntrega     *time.Time          `json:"hora_entrega,omitempty"`
	HoraSalidaReal  *time.Time          `json:"hora_salida_real,omitempty"`
	HoraEntregaReal *time.Time          `json:"hora_entrega_real,omitempty"`
	Version         int64               `json:"version"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []ItemResponse      `json:"items,omitempty"`
}

func ToPedidoResponse(p *models.Pedido) PedidoResponse {
	resp := PedidoResponse{
		ID:              p.ID,
		ClienteNombre:   p.ClienteNombre,
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
		Referencia:      p.Referencia,
		Total:           p.Total,
		MetodoPago:      p.MetodoPago,
		Pagado:          p.Pagado,
		Notas:           p.Notas,
		Estado:          p.Estado,
		Prioridad:       p.Prioridad,
		TiempoEstimado:  p.TiempoEstimado,
		EmpleadoID:      p.EmpleadoID,
		RepartidorID:    p.RepartidorID,
		HoraEntrega:     p.HoraEntrega,
		HoraSalidaReal:  p.HoraSalidaReal,
		HoraEntregaReal: p.HoraEntregaReal,
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, ItemResponse{
			Nombre:   it.Nombre,
			Cantidad: it.Cantidad,
			Precio:   it.Precio,
			Subtotal: it.Subtotal,
		})
	}
	return resp
}

func ToPedidoListResponse(list []*models.Pedido) []PedidoResponse {
	out := make([]PedidoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPedidoResponse(p))
	}
	return out
}

type TableroCocinaResponse struct {
	Registrados []PedidoResponse `json:"registrados"`
	Cocinando   []PedidoResponse `json:"cocinando"`
	Listos      []PedidoResponse `json:"listos"`
}

// --- Reservas ---

type ReservaRequest struct {
	ClienteNombre    string  `json:"cliente_nombre" binding:"required"`
	ClienteTelefono  string  `json:"cliente_telefono" binding:"required"`
	ClienteEmail     *string `json:"cliente_email"`
	Fecha            string  `json:"fecha" binding:"required"` // 2006-01-02
	Hora             string  `json:"hora" binding:"required"`
	CantidadPersonas int     `json:"cantidad_personas" binding:"required"`
	NumeroMesa       string  `json:"numero_mesa"`
	Observaciones    *string `json:"observaciones"`
}

type EditarReservaRequest struct {
	Version int64 `json:"version" binding:"required"`
	ReservaRequest
}

type EstadoReservaRequest struct {
	Estado  models.EstadoReserva `json:"estado" binding:"required"`
	Version int64                `json:"version" binding:"required"`
}

type ReservaResponse struct {
	ID               uuid.UUID            `json:"id"`
	ClienteNombre    string               `json:"cliente_nombre"`
	ClienteTelefono  string               `json:"cliente_telefono"`
	ClienteEmail     *string              `json:"cliente_email,omitempty"`
	Fecha            string               `json:"fecha"`
	Hora             string               `json:"hora"`
	CantidadPersonas int                  `json:"cantidad_personas"`
	Estado           models.EstadoReserva `json:"estado"`
	NumeroMesa       string               `json:"numero_mesa"`
	Observaciones    *string              `json:"observaciones,omitempty"`
	Version          int64                `json:"version"`
	CreatedAt        time.Time            `json:"created_at"`
}

func ToReservaResponse(r *models.Reserva) ReservaResponse {
	return ReservaResponse{
		ID:               r.ID,
		ClienteNombre:    r.ClienteNombre,
		ClienteTelefono:  r.ClienteTelefono,
		ClienteEmail:     r.ClienteEmail,
		Fecha:            r.Fecha.Format("2006-01-02"),
		Hora:             r.Hora,
		CantidadPersonas: r.CantidadPersonas,
		Estado:           r.Estado,
		NumeroMesa:       r.NumeroMesa,
		Observaciones:    r.Observaciones,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
	}
}

func ToReservaListResponse(list []*models.Reserva) []ReservaResponse {
	out := make([]ReservaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToReservaResponse(r))
	}
	return out
}

type MesaResponse struct {
	ID        string      `json:"id"`
	Etiqueta  string      `json:"etiqueta"`
	Capacidad int         `json:"capacidad"`
	Zona      models.Zona `json:"zona"`
	Posicion  int         `json:"posicion"`
	Ocupada   bool        `json:"ocupada"`
}

// --- Reclamaciones ---

type RegistrarReclamacionRequest struct {
	ClienteNombre    string                 `json:"cliente_nombre" binding:"required"`
	ClienteDNI       string                 `json:"cliente_dni" binding:"required"`
	ClienteDireccion string                 `json:"cliente_direccion" binding:"required"`
	ClienteTelefono  string                 `json:"cliente_telefono" binding:"required"`
	ClienteEmail     string                 `json:"cliente_email" binding:"required,email"`
	TipoBien         models.TipoBien        `json:"tipo_bien" binding:"required"`
	MontoReclamado   *string                `json:"monto_reclamado"`
	DescripcionBien  string                 `json:"descripcion_bien" binding:"required"`
	Tipo             models.TipoReclamacion `json:"tipo" binding:"required"`
	Detalle          string                 `json:"detalle" binding:"required"`
	PedidoConsumidor string                 `json:"pedido_consumidor" binding:"required"`
}

type EstadoReclamacionRequest struct {
	Estado models.EstadoReclamacion `json:"estado" binding:"required"`
}

type ResponderReclamacionRequest struct {
	Respuesta string `json:"respuesta" binding:"required"`
}

type ReclamacionResponse struct {
	ID               uuid.UUID                `json:"id"`
	Codigo           string                   `json:"codigo"`
	Fecha            time.Time                `json:"fecha"`
	ClienteNombre    string                   `json:"cliente_nombre"`
	ClienteDNI       string                   `json:"cliente_dni"`
	ClienteDireccion string                   `json:"cliente_direccion"`
	ClienteTelefono  string                   `json:"cliente_telefono"`
	ClienteEmail     string                   `json:"cliente_email"`
	TipoBien         models.TipoBien          `json:"tipo_bien"`
	MontoReclamado   *decimal.Decimal         `json:"monto_reclamado,omitempty"`
	DescripcionBien  string                   `json:"descripcion_bien"`
	Tipo             models.TipoReclamacion   `json:"tipo"`
	Detalle          string                   `json:"detalle"`
	PedidoConsumidor string                   `json:"pedido_consumidor"`
	Estado           models.EstadoReclamacion `json:"estado"`
	RespuestaEmpresa *string                  `json:"respuesta_empresa,omitempty"`
	RespondidoAt     *time.Time               `json:"respondido_at,omitempty"`
}

func ToReclamacionResponse(r *models.Reclamacion) ReclamacionResponse {
	return ReclamacionResponse{
		ID:               r.ID,
		Codigo:           r.Codigo,
		Fecha:            r.Fecha,
		ClienteNombre:    r.ClienteNombre,
		ClienteDNI:       r.ClienteDNI,
		ClienteDireccion: r.ClienteDireccion,
		ClienteTelefono:  r.ClienteTelefono,
		ClienteEmail:     r.ClienteEmail,
		TipoBien:         r.TipoBien,
		MontoReclamado:   r.MontoReclamado,
		DescripcionBien:  r.DescripcionBien,
		Tipo:             r.Tipo,
		Detalle:          r.Detalle,
		PedidoConsumidor: r.PedidoConsumidor,
		Estado:           r.Estado,
		RespuestaEmpresa: r.RespuestaEmpresa,
		RespondidoAt:     r.RespondidoAt,
	}
}

// ReclamacionPublicaResponse es lo único que ve el reclamante al consultar
// por código: sin datos internos de gestión.
type ReclamacionPublicaResponse struct {
	Codigo           string                   `json:"codigo"`
	Fecha            time.Time                `json:"fecha"`
	Tipo             models.TipoReclamacion   `json:"tipo"`
	Estado           models.EstadoReclamacion `json:"estado"`
	RespuestaEmpresa *string                  `json:"respuesta_empresa,omitempty"`
	RespondidoAt     *time.Time               `json:"respondido_at,omitempty"`
}

// --- Empleados ---

type CrearEmpleadoRequest struct {
	Nombre   string     `json:"nombre" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Telefono string     `json:"telefono"`
	Rol      models.Rol `json:"rol" binding:"required"`
	Password string     `json:"password" binding:"required"`
}

type EditarEmpleadoRequest struct {
	Nombre   string                `json:"nombre" binding:"required"`
	Telefono string                `json:"telefono"`
	Rol      models.Rol            `json:"rol" binding:"required"`
	Estado   models.EstadoEmpleado `json:"estado" binding:"required"`
}

type CambiarPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// --- Auditoría ---

type AuditoriaResponse struct {
	ID            uuid.UUID    `json:"id"`
	EmpleadoID    *uuid.UUID   `json:"empleado_id,omitempty"`
	Accion        string       `json:"accion"`
	TablaAfectada string       `json:"tabla_afectada"`
	RegistroID    *string      `json:"registro_id,omitempty"`
	Detalles      models.JSONB `json:"detalles,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

func ToAuditoriaResponse(a *models.Auditoria) AuditoriaResponse {
	return AuditoriaResponse{
		ID:            a.ID,
		EmpleadoID:    a.EmpleadoID,
		Accion:        a.Accion,
		TablaAfectada: a.TablaAfectada,
		RegistroID:    a.RegistroID,
		Detalles:      a.Detalles,
		CreatedAt:     a.CreatedAt,
	}
}
