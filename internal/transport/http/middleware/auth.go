package middleware

import (
	"net/http"
	"strings"

	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/token"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Claves del contexto gin para la sesión en curso.
const (
	CtxRawToken = "raw_token"
	CtxTokenExp = "token_exp"
)

// AuthRequired valida el Bearer token, consulta la lista negra y cuelga el
// actor en el contexto de la request para la capa de servicio.
func AuthRequired(tokens *token.HSProvider, sessions service.SessionCache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("falta el header Authorization"))
			return
		}
		raw, ok := ExtractBearerToken(authz)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("header Authorization inválido"))
			return
		}

		claims, err := tokens.ParseAndValidate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("token inválido o expirado"))
			return
		}

		blacklisted, err := sessions.IsTokenBlacklisted(c.Request.Context(), token.Fingerprint(raw))
		if err != nil {
			log.Warn("lista negra no disponible", zap.Error(err))
		}
		if blacklisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sesión cerrada"))
			return
		}

		actor := service.Actor{
			ID:     claims.EmpleadoID,
			Rol:    claims.Rol,
			Nombre: claims.Nombre,
		}
		c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), actor))
		c.Set(CtxRawToken, raw)
		c.Set(CtxTokenExp, claims.Exp)
		c.Next()
	}
}

// RequirePanel corta en 403 antes de llegar al handler cuando el rol no tiene
// el panel. La capa de servicio vuelve a validar; esto sólo ahorra trabajo.
func RequirePanel(panel service.Panel) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := service.ActorFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("no autenticado"))
			return
		}
		if !service.CanAccess(actor.Rol, panel) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("su rol no tiene acceso a este panel"))
			return
		}
		c.Next()
	}
}

func ExtractBearerToken(authz string) (string, bool) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexAny(t, ", "); i >= 0 {
		t = strings.Trim(t[:i], " \"'")
	}
	return t, true
}
