package service

import "github.com/23121005-sketch/D-arlet/internal/models"

type Panel string

const (
	PanelDashboard     Panel = "dashboard"
	PanelReservas      Panel = "reservas"
	PanelDelivery      Panel = "delivery"
	PanelCocina        Panel = "cocina"
	PanelReclamaciones Panel = "reclamaciones"
	PanelAuditoria     Panel = "auditoria"
	PanelEmpleados     Panel = "empleados"
)

// El admin ve todos los paneles pero sus permisos son de solo lectura sobre
// los ciclos de vida: las transiciones las ejecutan los roles operativos.
var panelesPorRol = map[models.Rol][]Panel{
	models.RolAdmin: {
		PanelDashboard, PanelReservas, PanelDelivery, PanelCocina,
		PanelReclamaciones, PanelAuditoria, PanelEmpleados,
	},
	models.RolReservas: {PanelDashboard, PanelReservas, PanelDelivery},
	models.RolDelivery: {PanelDashboard, PanelDelivery},
	models.RolCocina:   {PanelDashboard, PanelCocina},
}

// PanelesDe devuelve los paneles visibles para el rol, en el orden del menú.
func PanelesDe(rol models.Rol) []Panel {
	return panelesPorRol[rol]
}

func CanAccess(rol models.Rol, panel Panel) bool {
	for _, p := range panelesPorRol[rol] {
		if p == panel {
			return true
		}
	}
	return false
}

// sucesorPedido define la cadena lineal de avance de un pedido. Cancelado no
// aparece: se maneja aparte porque es alcanzable desde cualquier estado no
// terminal.
var sucesorPedido = map[models.EstadoPedido]models.EstadoPedido{
	models.PedidoPendiente:     models.PedidoEnPreparacion,
	models.PedidoEnPreparacion: models.PedidoListoReparto,
	models.PedidoListoReparto:  models.PedidoEnCamino,
	models.PedidoEnCamino:      models.PedidoEntregado,
}

func esTerminalPedido(e models.EstadoPedido) bool {
	return e == models.PedidoEntregado || e == models.PedidoCancelado
}

// puedeTransicionarPedido aplica la matriz de permisos por rol. El creador
// del pedido puede iniciar su preparación aunque no sea de cocina; el admin
// nunca transiciona.
func puedeTransicionarPedido(rol models.Rol, de, a models.EstadoPedido, esCreador bool) bool {
	if rol == models.RolAdmin {
		return false
	}
	if a == models.PedidoCancelado {
		return !esTerminalPedido(de)
	}
	if sucesorPedido[de] != a {
		return false
	}
	switch a {
	case models.PedidoEnPreparacion:
		return rol == models.RolCocina || esCreador
	case models.PedidoListoReparto:
		return rol == models.RolCocina
	case models.PedidoEnCamino, models.PedidoEntregado:
		return rol == models.RolDelivery
	}
	return false
}

var transicionesReserva = map[models.EstadoReserva][]models.EstadoReserva{
	models.ReservaPendiente:  {models.ReservaConfirmada, models.ReservaCancelada, models.ReservaNoShow},
	models.ReservaConfirmada: {models.ReservaFinalizada, models.ReservaCancelada, models.ReservaNoShow},
}

func transicionReservaValida(de, a models.EstadoReserva) bool {
	for _, t := range transicionesReserva[de] {
		if t == a {
			return true
		}
	}
	return false
}
