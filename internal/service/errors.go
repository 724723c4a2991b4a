package service

import "errors"

var (
	ErrUnauthorized = errors.New("no autenticado")
	ErrForbidden    = errors.New("rol sin permiso para esta operación")
	ErrRateLimited  = errors.New("demasiados intentos, espere un momento")

	ErrPedidoNotFound      = errors.New("pedido no encontrado")
	ErrReservaNotFound     = errors.New("reserva no encontrada")
	ErrReclamacionNotFound = errors.New("reclamación no encontrada")
	ErrEmpleadoNotFound    = errors.New("empleado no encontrado")
	ErrMesaNotFound        = errors.New("mesa no encontrada")

	// Validación: se reporta antes de tocar la persistencia.
	ErrTelefonoInvalido  = errors.New("teléfono inválido: debe ser 9 seguido de 8 dígitos")
	ErrItemsVacios       = errors.New("el pedido no tiene items")
	ErrItemInvalido      = errors.New("item inválido: nombre vacío o precio no positivo")
	ErrCantidadInvalida  = errors.New("cantidad debe ser mayor a cero")
	ErrFechaPasada       = errors.New("la fecha no puede estar en el pasado")
	ErrCampoObligatorio  = errors.New("campo obligatorio vacío")
	ErrRespuestaVacia    = errors.New("la respuesta no puede estar vacía")
	ErrPasswordDebil     = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrRolInvalido       = errors.New("rol desconocido")
	ErrPersonasInvalidas = errors.New("cantidad de personas debe ser mayor a cero")

	// Conflicto: choque con un invariante de negocio, distinto de validación.
	ErrTransicionInvalida    = errors.New("transición de estado no permitida")
	ErrRegistroBloqueado     = errors.New("el registro ya no está pendiente y quedó bloqueado")
	ErrMesaOcupada           = errors.New("la mesa ya está reservada para esa fecha y hora")
	ErrSinMesaDisponible     = errors.New("no hay mesa disponible para ese aforo y horario")
	ErrVersionObsoleta       = errors.New("el registro fue modificado por otra operación, recargue")
	ErrReclamacionCerrada    = errors.New("expediente ya cerrado")
	ErrEmailYaRegistrado     = errors.New("ya existe un empleado con ese email")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")

	// Dependencia: fallo de un colaborador externo en ruta crítica.
	ErrNotificacionFallida = errors.New("no se pudo notificar al reclamante")
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindDependency
	KindRateLimited
)

// Kind clasifica un error de servicio para que el transporte elija el código
// HTTP y el mensaje accionable (spec de errores: cada rechazo dice qué
// restricción falló).
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrCredencialesInvalidas):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrPedidoNotFound),
		errors.Is(err, ErrReservaNotFound),
		errors.Is(err, ErrReclamacionNotFound),
		errors.Is(err, ErrEmpleadoNotFound),
		errors.Is(err, ErrMesaNotFound):
		return KindNotFound
	case errors.Is(err, ErrTelefonoInvalido),
		errors.Is(err, ErrItemsVacios),
		errors.Is(err, ErrItemInvalido),
		errors.Is(err, ErrCantidadInvalida),
		errors.Is(err, ErrFechaPasada),
		errors.Is(err, ErrCampoObligatorio),
		errors.Is(err, ErrRespuestaVacia),
		errors.Is(err, ErrPasswordDebil),
		errors.Is(err, ErrRolInvalido),
		errors.Is(err, ErrPersonasInvalidas):
		return KindValidation
	case errors.Is(err, ErrTransicionInvalida),
		errors.Is(err, ErrRegistroBloqueado),
		errors.Is(err, ErrMesaOcupada),
		errors.Is(err, ErrSinMesaDisponible),
		errors.Is(err, ErrVersionObsoleta),
		errors.Is(err, ErrReclamacionCerrada),
		errors.Is(err, ErrEmailYaRegistrado):
		return KindConflict
	case errors.Is(err, ErrNotificacionFallida):
		return KindDependency
	default:
		return KindInternal
	}
}
