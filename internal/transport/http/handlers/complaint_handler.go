package handlers

import (
	"net/http"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReclamacionHandler struct {
	reclamaciones *service.ReclamacionService
	log           *zap.Logger
}

func NewReclamacionHandler(reclamaciones *service.ReclamacionService, log *zap.Logger) *ReclamacionHandler {
	return &ReclamacionHandler{reclamaciones: reclamaciones, log: log}
}

// Registrar es el endpoint público del Libro de Reclamaciones.
func (h *ReclamacionHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarReclamacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido o campos faltantes", nil))
		return
	}

	r, err := h.reclamaciones.Registrar(c.Request.Context(), service.RegistrarReclamacionInput{
		ClienteNombre:    req.ClienteNombre,
		ClienteDNI:       req.ClienteDNI,
		ClienteDireccion: req.ClienteDireccion,
		ClienteTelefono:  req.ClienteTelefono,
		ClienteEmail:     req.ClienteEmail,
		TipoBien:         req.TipoBien,
		MontoReclamado:   req.MontoReclamado,
		DescripcionBien:  req.DescripcionBien,
		Tipo:             req.Tipo,
		Detalle:          req.Detalle,
		PedidoConsumidor: req.PedidoConsumidor,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"codigo": r.Codigo, "fecha": r.Fecha})
}

// ConsultarPorCodigo deja al reclamante ver el estado de su hoja sin sesión.
func (h *ReclamacionHandler) ConsultarPorCodigo(c *gin.Context) {
	r, err := h.reclamaciones.ConsultarPorCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReclamacionPublicaResponse{
		Codigo:           r.Codigo,
		Fecha:            r.Fecha,
		Tipo:             r.Tipo,
		Estado:           r.Estado,
		RespuestaEmpresa: r.RespuestaEmpresa,
		RespondidoAt:     r.RespondidoAt,
	})
}

func (h *ReclamacionHandler) Listar(c *gin.Context) {
	var estado *models.EstadoReclamacion
	if e := c.Query("estado"); e != "" {
		v := models.EstadoReclamacion(e)
		estado = &v
	}
	list, err := h.reclamaciones.Listar(c.Request.Context(), estado)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]dto.ReclamacionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToReclamacionResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReclamacionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	r, err := h.reclamaciones.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReclamacionResponse(r))
}

func (h *ReclamacionHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.EstadoReclamacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	r, err := h.reclamaciones.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReclamacionResponse(r))
}

func (h *ReclamacionHandler) Responder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req dto.ResponderReclamacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	r, err := h.reclamaciones.Responder(c.Request.Context(), id, req.Respuesta)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReclamacionResponse(r))
}
