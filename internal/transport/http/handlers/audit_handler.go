package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/repository"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditoriaHandler struct {
	audit *service.AuditService
	log   *zap.Logger
}

func NewAuditoriaHandler(audit *service.AuditService, log *zap.Logger) *AuditoriaHandler {
	return &AuditoriaHandler{audit: audit, log: log}
}

func filterFromQuery(c *gin.Context) (repository.AuditoriaFilter, bool) {
	f := repository.AuditoriaFilter{}
	if tabla := c.Query("tabla"); tabla != "" {
		f.TablaAfectada = &tabla
	}
	if emp := c.Query("empleado_id"); emp != "" {
		id, err := uuid.Parse(emp)
		if err != nil {
			return f, false
		}
		f.EmpleadoID = &id
	}
	if desde := c.Query("desde"); desde != "" {
		t, err := time.Parse("2006-01-02", desde)
		if err != nil {
			return f, false
		}
		f.FechaInicio = &t
	}
	if hasta := c.Query("hasta"); hasta != "" {
		t, err := time.Parse("2006-01-02", hasta)
		if err != nil {
			return f, false
		}
		// inclusivo: hasta el final del día
		fin := t.Add(24*time.Hour - time.Nanosecond)
		f.FechaFin = &fin
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return f, false
		}
		f.Limit = n
	}
	return f, true
}

func (h *AuditoriaHandler) Listar(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("filtros inválidos: desde/hasta en AAAA-MM-DD, limit numérico", nil))
		return
	}
	list, err := h.audit.Listar(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]dto.AuditoriaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAuditoriaResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AuditoriaHandler) Estadisticas(c *gin.Context) {
	stats, err := h.audit.Estadisticas(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Exportar descarga la bitácora filtrada como CSV con cabeceras en español.
func (h *AuditoriaHandler) Exportar(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("filtros inválidos: desde/hasta en AAAA-MM-DD, limit numérico", nil))
		return
	}
	list, err := h.audit.Listar(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="auditoria_`+time.Now().Format("20060102_150405")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Fecha", "Empleado", "Acción", "Tabla", "Registro", "Detalles"})
	for _, a := range list {
		empleado := "sistema"
		if a.EmpleadoID != nil {
			empleado = a.EmpleadoID.String()
		}
		registro := ""
		if a.RegistroID != nil {
			registro = *a.RegistroID
		}
		detalles := ""
		if a.Detalles != nil {
			if b, err := a.Detalles.Value(); err == nil {
				if raw, ok := b.([]byte); ok {
					detalles = string(raw)
				}
			}
		}
		_ = w.Write([]string{
			a.CreatedAt.Format("02/01/2006 15:04:05"),
			empleado,
			a.Accion,
			a.TablaAfectada,
			registro,
			detalles,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Error("exportar auditoría", zap.Error(err))
	}
}
