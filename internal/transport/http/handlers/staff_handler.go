package handlers

import (
	"net/http"

	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EmpleadoHandler struct {
	empleados *service.EmpleadoService
	log       *zap.Logger
}

func NewEmpleadoHandler(empleados *service.EmpleadoService, log *zap.Logger) *EmpleadoHandler {
	return &EmpleadoHandler{empleados: empleados, log: log}
}

func (h *EmpleadoHandler) Crear(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	e, err := h.empleados.Crear(c.Request.Context(), service.CrearEmpleadoInput{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Telefono: req.Telefono,
		Rol:      req.Rol,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmpleadoResponse(e))
}

func (h *EmpleadoHandler) Listar(c *gin.Context) {
	list, err := h.empleados.Listar(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]dto.EmpleadoResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ToEmpleadoResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h *EmpleadoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.EditarEmpleadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	e, err := h.empleados.Actualizar(c.Request.Context(), id, service.EditarEmpleadoInput{
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		Rol:      req.Rol,
		Estado:   req.Estado,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmpleadoResponse(e))
}

func (h *EmpleadoHandler) CambiarPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.CambiarPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	if err := h.empleados.CambiarPassword(c.Request.Context(), id, req.Password); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EmpleadoHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	if err := h.empleados.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
