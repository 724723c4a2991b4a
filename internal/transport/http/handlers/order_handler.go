package handlers

import (
	"net/http"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PedidoHandler struct {
	pedidos *service.PedidoService
	log     *zap.Logger
}

func NewPedidoHandler(pedidos *service.PedidoService, log *zap.Logger) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos, log: log}
}

func itemsFromRequest(in []dto.ItemRequest) []service.ItemInput {
	if in == nil {
		return nil
	}
	out := make([]service.ItemInput, 0, len(in))
	for _, it := range in {
		out = append(out, service.ItemInput{Nombre: it.Nombre, Cantidad: it.Cantidad, Precio: it.Precio})
	}
	return out
}

func (h *PedidoHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	p, err := h.pedidos.Crear(c.Request.Context(), service.CrearPedidoInput{
		ClienteNombre:  req.ClienteNombre,
		Telefono:       req.Telefono,
		Direccion:      req.Direccion,
		Referencia:     req.Referencia,
		MetodoPago:     req.MetodoPago,
		Pagado:         req.Pagado,
		Notas:          req.Notas,
		Prioridad:      req.Prioridad,
		TiempoEstimado: req.TiempoEstimado,
		RepartidorID:   req.RepartidorID,
		HoraEntrega:    req.HoraEntrega,
		Items:          itemsFromRequest(req.Items),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPedidoResponse(p))
}

func (h *PedidoHandler) Listar(c *gin.Context) {
	f := repository.PedidoListFilter{}
	if estado := c.Query("estado"); estado != "" {
		e := models.EstadoPedido(estado)
		f.Estado = &e
	}
	if rep := c.Query("repartidor_id"); rep != "" {
		id, err := uuid.Parse(rep)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("repartidor_id inválido", nil))
			return
		}
		f.RepartidorID = &id
	}

	list, total, err := h.pedidos.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"pedidos": dto.ToPedidoListResponse(list),
	})
}

func (h *PedidoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	p, err := h.pedidos.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPedidoResponse(p))
}

func (h *PedidoHandler) Editar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.EditarPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	p, err := h.pedidos.Editar(c.Request.Context(), id, req.Version, service.EditarPedidoInput{
		ClienteNombre:  req.ClienteNombre,
		Telefono:       req.Telefono,
		Direccion:      req.Direccion,
		Referencia:     req.Referencia,
		MetodoPago:     req.MetodoPago,
		Pagado:         req.Pagado,
		Notas:          req.Notas,
		Prioridad:      req.Prioridad,
		TiempoEstimado: req.TiempoEstimado,
		RepartidorID:   req.RepartidorID,
		HoraEntrega:    req.HoraEntrega,
		Items:          itemsFromRequest(req.Items),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPedidoResponse(p))
}

func (h *PedidoHandler) Transicion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.TransicionPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	p, err := h.pedidos.Transicion(c.Request.Context(), id, req.Estado, req.Version)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPedidoResponse(p))
}

func (h *PedidoHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.CancelarPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	p, err := h.pedidos.Cancelar(c.Request.Context(), id, req.Version, req.Motivo)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPedidoResponse(p))
}

func (h *PedidoHandler) Estadisticas(c *gin.Context) {
	stats, err := h.pedidos.Estadisticas(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
