package handlers

import (
	"net/http"

	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError traduce el error de servicio al código HTTP y al formato
// BaseError. Los internos no filtran detalle al cliente, sólo al log.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch service.Kind(err) {
	case service.KindValidation:
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
	case service.KindConflict:
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case service.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case service.KindForbidden:
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(err.Error()))
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case service.KindRateLimited:
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedError(err.Error()))
	case service.KindDependency:
		c.JSON(http.StatusBadGateway, dto.NewDependencyError(err.Error()))
	default:
		log.Error("error interno", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}
