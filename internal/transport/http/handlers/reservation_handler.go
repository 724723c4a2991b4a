package handlers

import (
	"net/http"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservaHandler struct {
	reservas *service.ReservaService
	log      *zap.Logger
}

func NewReservaHandler(reservas *service.ReservaService, log *zap.Logger) *ReservaHandler {
	return &ReservaHandler{reservas: reservas, log: log}
}

func reservaInputFromRequest(req dto.ReservaRequest) (service.ReservaInput, bool) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return service.ReservaInput{}, false
	}
	return service.ReservaInput{
		ClienteNombre:    req.ClienteNombre,
		ClienteTelefono:  req.ClienteTelefono,
		ClienteEmail:     req.ClienteEmail,
		Fecha:            fecha,
		Hora:             req.Hora,
		CantidadPersonas: req.CantidadPersonas,
		NumeroMesa:       req.NumeroMesa,
		Observaciones:    req.Observaciones,
	}, true
}

func (h *ReservaHandler) Crear(c *gin.Context) {
	var req dto.ReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}
	in, ok := reservaInputFromRequest(req)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("fecha inválida, formato AAAA-MM-DD", nil))
		return
	}

	r, err := h.reservas.Crear(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReservaResponse(r))
}

// Listar devuelve las reservas del día pedido; con ?cliente= busca por
// nombre y sin filtros devuelve todas.
func (h *ReservaHandler) Listar(c *gin.Context) {
	if cliente := c.Query("cliente"); cliente != "" {
		list, err := h.reservas.BuscarPorCliente(c.Request.Context(), cliente)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToReservaListResponse(list))
		return
	}

	fechaStr := c.Query("fecha")
	if fechaStr == "" {
		list, err := h.reservas.ListarTodas(c.Request.Context())
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToReservaListResponse(list))
		return
	}

	fecha, err := time.Parse("2006-01-02", fechaStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("fecha inválida, formato AAAA-MM-DD", nil))
		return
	}
	list, err := h.reservas.ListarPorFecha(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservaListResponse(list))
}

func (h *ReservaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	r, err := h.reservas.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservaResponse(r))
}

func (h *ReservaHandler) Editar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.EditarReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}
	in, ok := reservaInputFromRequest(req.ReservaRequest)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("fecha inválida, formato AAAA-MM-DD", nil))
		return
	}

	r, err := h.reservas.Editar(c.Request.Context(), id, req.Version, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservaResponse(r))
}

func (h *ReservaHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.EstadoReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	r, err := h.reservas.CambiarEstado(c.Request.Context(), id, req.Estado, req.Version)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservaResponse(r))
}

func (h *ReservaHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	if err := h.reservas.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MapaMesas pinta el plano del salón para la fecha y hora pedidas.
func (h *ReservaHandler) MapaMesas(c *gin.Context) {
	fecha, err := time.Parse("2006-01-02", c.Query("fecha"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("fecha inválida, formato AAAA-MM-DD", nil))
		return
	}
	hora := c.Query("hora")
	if hora == "" {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("hora es obligatoria", nil))
		return
	}

	mesas, ocupacion, err := h.reservas.MapaMesas(c.Request.Context(), fecha, hora)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]dto.MesaResponse, 0, len(mesas))
	for _, m := range mesas {
		out = append(out, dto.MesaResponse{
			ID:        m.ID,
			Etiqueta:  m.Etiqueta,
			Capacidad: m.Capacidad,
			Zona:      m.Zona,
			Posicion:  m.Posicion,
			Ocupada:   ocupacion[m.ID],
		})
	}
	c.JSON(http.StatusOK, out)
}

// SugerirMesa responde con la primera mesa libre que aguante el grupo.
func (h *ReservaHandler) SugerirMesa(c *gin.Context) {
	var q struct {
		Personas int    `form:"personas" binding:"required"`
		Fecha    string `form:"fecha" binding:"required"`
		Hora     string `form:"hora" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("parámetros incompletos: personas, fecha, hora", nil))
		return
	}
	fecha, err := time.Parse("2006-01-02", q.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("fecha inválida, formato AAAA-MM-DD", nil))
		return
	}

	mesa, err := h.reservas.SugerirMesa(c.Request.Context(), q.Personas, fecha, q.Hora)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MesaResponse{
		ID:        mesa.ID,
		Etiqueta:  mesa.Etiqueta,
		Capacidad: mesa.Capacidad,
		Zona:      mesa.Zona,
		Posicion:  mesa.Posicion,
	})
}
