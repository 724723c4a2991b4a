package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/23121005-sketch/D-arlet/internal/events"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var tablasSuscribibles = map[string]bool{
	"pedidos":       true,
	"reservas":      true,
	"reclamaciones": true,
}

type EventosHandler struct {
	hub *events.Hub
	log *zap.Logger
}

func NewEventosHandler(hub *events.Hub, log *zap.Logger) *EventosHandler {
	return &EventosHandler{hub: hub, log: log}
}

// Stream mantiene una conexión SSE y empuja cada cambio de la colección. El
// panel reacciona recargando su lista; por el stream no viaja ningún dato de
// negocio.
func (h *EventosHandler) Stream(c *gin.Context) {
	tabla := c.Param("tabla")
	if !tablasSuscribibles[tabla] {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("colección desconocida"))
		return
	}

	ch, cancel := h.hub.Subscribe(tabla)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case cambio, ok := <-ch:
			if !ok {
				return false
			}
			payload, err := json.Marshal(cambio)
			if err != nil {
				h.log.Error("serializar cambio", zap.Error(err))
				return true
			}
			c.SSEvent("cambio", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
