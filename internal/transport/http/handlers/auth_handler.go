package handlers

import (
	"net/http"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	empleados *service.EmpleadoService
	log       *zap.Logger
}

func NewAuthHandler(empleados *service.EmpleadoService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{empleados: empleados, log: log}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cuerpo inválido", nil))
		return
	}

	e, tok, exp, err := h.empleados.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	emp := dto.ToEmpleadoResponse(e)
	for _, p := range service.PanelesDe(e.Rol) {
		emp.Paneles = append(emp.Paneles, string(p))
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: tok, ExpiresAt: exp, Empleado: emp})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(middleware.CtxRawToken)
	exp, _ := c.Get(middleware.CtxTokenExp)
	expAt, _ := exp.(time.Time)

	if err := h.empleados.Logout(c.Request.Context(), raw, expAt); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me devuelve la sesión vigente con sus paneles; el frontend arma el menú con
// esto.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := service.ActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("no autenticado"))
		return
	}
	paneles := make([]string, 0, 8)
	for _, p := range service.PanelesDe(actor.Rol) {
		paneles = append(paneles, string(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      actor.ID,
		"nombre":  actor.Nombre,
		"rol":     actor.Rol,
		"paneles": paneles,
	})
}
