package handlers

import (
	"context"
	"net/http"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CocinaHandler struct {
	cocina *service.CocinaService
	log    *zap.Logger
}

func NewCocinaHandler(cocina *service.CocinaService, log *zap.Logger) *CocinaHandler {
	return &CocinaHandler{cocina: cocina, log: log}
}

func (h *CocinaHandler) Tablero(c *gin.Context) {
	t, err := h.cocina.Tablero(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.TableroCocinaResponse{
		Registrados: dto.ToPedidoListResponse(t.Registrados),
		Cocinando:   dto.ToPedidoListResponse(t.Cocinando),
		Listos:      dto.ToPedidoListResponse(t.Listos),
	})
}

type versionRequest struct {
	Version int64 `json:"version" binding:"required"`
}

func (h *CocinaHandler) Iniciar(c *gin.Context) {
	h.accion(c, h.cocina.IniciarCocina)
}

func (h *CocinaHandler) MarcarListo(c *gin.Context) {
	h.accion(c, h.cocina.MarcarListo)
}

func (h *CocinaHandler) accion(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, version int64) (*models.Pedido, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id inválido", nil))
		return
	}
	var req versionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}
	p, err := fn(c.Request.Context(), id, req.Version)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPedidoResponse(p))
}
