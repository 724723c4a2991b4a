package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Rol string

const (
	RolAdmin    Rol = "admin"
	RolReservas Rol = "reservas"
	RolDelivery Rol = "delivery"
	RolCocina   Rol = "cocina"
)

type EstadoEmpleado string

const (
	EmpleadoActivo     EstadoEmpleado = "activo"
	EmpleadoInactivo   EstadoEmpleado = "inactivo"
	EmpleadoVacaciones EstadoEmpleado = "vacaciones"
)

type Empleado struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Nombre       string         `gorm:"type:text;not null"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	Telefono     string         `gorm:"type:text"`
	Rol          Rol            `gorm:"type:text;not null;index"`
	Estado       EstadoEmpleado `gorm:"type:text;not null;default:'activo'"`
	PasswordHash string         `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Empleado) TableName() string { return "empleados" }

// EstadoPedido — máquina de estados del delivery. Los valores persistidos
// son los mismos del sistema anterior; "cocinando" ya no existe como estado
// local, es en_preparacion persistido.
type EstadoPedido string

const (
	PedidoPendiente     EstadoPedido = "pendiente"
	PedidoEnPreparacion EstadoPedido = "en_preparacion"
	PedidoListoReparto  EstadoPedido = "listo_para_reparto"
	PedidoEnCamino      EstadoPedido = "en_camino"
	PedidoEntregado     EstadoPedido = "entregado"
	PedidoCancelado     EstadoPedido = "cancelado"
)

type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "efectivo"
	PagoYape          MetodoPago = "yape"
	PagoPlin          MetodoPago = "plin"
	PagoTransferencia MetodoPago = "transferencia"
)

type Pedido struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClienteNombre  string          `gorm:"type:text;not null"`
	Telefono       string          `gorm:"type:char(9);not null"`
	Direccion      string          `gorm:"type:text;not null"`
	Referencia     *string         `gorm:"type:text"`
	Total          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	MetodoPago     MetodoPago      `gorm:"type:text;not null"`
	Pagado         bool            `gorm:"not null;default:false"`
	Notas          *string         `gorm:"type:text"`
	Estado         EstadoPedido    `gorm:"type:text;not null;default:'pendiente';index"`
	Prioridad      int16           `gorm:"type:smallint;not null;default:2"`
	TiempoEstimado *int32          `gorm:"type:int"` // minutos
	EmpleadoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	RepartidorID   *uuid.UUID      `gorm:"type:uuid;index"`

	HoraEntrega     *time.Time `gorm:"type:timestamptz"` // programada
	HoraSalidaReal  *time.Time `gorm:"type:timestamptz"`
	HoraEntregaReal *time.Time `gorm:"type:timestamptz"`

	// Token de concurrencia optimista: toda transición exige la versión leída.
	Version int64 `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []PedidoItem `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

func (Pedido) TableName() string { return "pedidos" }

type PedidoItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PedidoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre   string          `gorm:"type:text;not null"`
	Cantidad uint32          `gorm:"type:int;not null"`
	Precio   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Subtotal decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (PedidoItem) TableName() string { return "pedido_items" }

type Zona string

const (
	ZonaTerraza Zona = "Terraza"
	ZonaSalon   Zona = "Salon"
	ZonaVIP     Zona = "VIP"
	ZonaEventos Zona = "Eventos"
)

// Mesa es inventario de referencia, sembrado por la migración y nunca
// modificado en runtime. Posicion define el orden de preferencia del
// asignador.
type Mesa struct {
	ID        string `gorm:"type:text;primaryKey"`
	Etiqueta  string `gorm:"type:text;not null"`
	Capacidad int    `gorm:"type:int;not null"`
	Zona      Zona   `gorm:"type:text;not null"`
	Posicion  int    `gorm:"type:int;not null;uniqueIndex"`
}

func (Mesa) TableName() string { return "mesas" }

type EstadoReserva string

const (
	ReservaPendiente  EstadoReserva = "pendiente"
	ReservaConfirmada EstadoReserva = "confirmada"
	ReservaFinalizada EstadoReserva = "finalizada"
	ReservaCancelada  EstadoReserva = "cancelada"
	ReservaNoShow     EstadoReserva = "no_show"
)

type Reserva struct {
	ID               uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClienteNombre    string        `gorm:"type:text;not null"`
	ClienteTelefono  string        `gorm:"type:text;not null"`
	ClienteEmail     *string       `gorm:"type:text"`
	Fecha            time.Time     `gorm:"type:date;not null;index"`
	Hora             string        `gorm:"type:text;not null"` // "19:00"
	CantidadPersonas int           `gorm:"type:int;not null"`
	Estado           EstadoReserva `gorm:"type:text;not null;default:'pendiente';index"`
	NumeroMesa       string        `gorm:"type:text"` // vacío = sin mesa asignada
	Observaciones    *string       `gorm:"type:text"`
	EmpleadoID       *uuid.UUID    `gorm:"type:uuid;index"`

	Version int64 `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Reserva) TableName() string { return "reservas" }

type TipoBien string

const (
	BienProducto TipoBien = "producto"
	BienServicio TipoBien = "servicio"
)

type TipoReclamacion string

const (
	TipoReclamo TipoReclamacion = "reclamacion"
	TipoQueja   TipoReclamacion = "queja"
)

type EstadoReclamacion string

const (
	ReclamacionPendiente EstadoReclamacion = "pendiente"
	ReclamacionEnProceso EstadoReclamacion = "en_proceso"
	ReclamacionResuelto  EstadoReclamacion = "resuelto"
)

// Reclamacion es una hoja del Libro de Reclamaciones. Una vez resuelta el
// registro queda inmutable.
type Reclamacion struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Codigo string    `gorm:"type:text;not null;uniqueIndex"`
	Fecha  time.Time `gorm:"type:timestamptz;not null;default:now()"`

	ClienteNombre    string `gorm:"type:text;not null"`
	ClienteDNI       string `gorm:"type:text;not null"`
	ClienteDireccion string `gorm:"type:text;not null"`
	ClienteTelefono  string `gorm:"type:text;not null"`
	ClienteEmail     string `gorm:"type:text;not null"`

	TipoBien        TipoBien         `gorm:"type:text;not null"`
	MontoReclamado  *decimal.Decimal `gorm:"type:numeric(10,2)"`
	DescripcionBien string           `gorm:"type:text;not null"`

	Tipo             TipoReclamacion   `gorm:"type:text;not null"`
	Detalle          string            `gorm:"type:text;not null"`
	PedidoConsumidor string            `gorm:"type:text;not null"`
	Estado           EstadoReclamacion `gorm:"type:text;not null;default:'pendiente';index"`

	RespuestaEmpresa *string    `gorm:"type:text"`
	RespondidoPor    *uuid.UUID `gorm:"type:uuid"`
	RespondidoAt     *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Reclamacion) TableName() string { return "reclamaciones" }

// JSONB es el payload libre de detalles de auditoría.
type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("jsonb: tipo de columna inesperado")
	}
	return json.Unmarshal(data, j)
}

// Auditoria es append-only: nunca se edita ni se borra.
type Auditoria struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmpleadoID    *uuid.UUID `gorm:"type:uuid;index"` // null = acción del sistema
	Accion        string     `gorm:"type:text;not null"`
	TablaAfectada string     `gorm:"type:text;not null;index"`
	RegistroID    *string    `gorm:"type:text"`
	Detalles      JSONB      `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (Auditoria) TableName() string { return "auditoria" }
