package service

import (
	"context"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Acciones de auditoría. Los nombres son los que lee el panel de auditoría,
// no se renombran sin migrar los registros históricos.
const (
	AccionCrearPedido    = "CREAR_PEDIDO"
	AccionEditarPedido   = "EDITAR_PEDIDO"
	AccionEstadoPedido   = "ESTADO_PEDIDO"
	AccionCancelarPedido = "CANCELAR_PEDIDO"

	AccionCrearReserva    = "CREAR_RESERVA"
	AccionEditarReserva   = "EDITAR_RESERVA"
	AccionEstadoReserva   = "ESTADO_RESERVA"
	AccionEliminarReserva = "ELIMINAR_RESERVA"

	AccionNuevaReclamacion     = "NUEVA_RECLAMACION_CLIENTE"
	AccionEstadoReclamacion    = "ESTADO_RECLAMACION"
	AccionResponderReclamacion = "RESPONDER_RECLAMACION"

	AccionLogin            = "LOGIN"
	AccionCrearEmpleado    = "CREAR_EMPLEADO"
	AccionEditarEmpleado   = "EDITAR_EMPLEADO"
	AccionCambiarPassword  = "CAMBIAR_CONTRASENA"
	AccionEliminarEmpleado = "ELIMINAR_EMPLEADO"
)

// AuditWriter registra la bitácora sin bloquear la operación que la origina:
// un fallo de auditoría se loguea y se traga. Si el insert falla con actor,
// reintenta una vez como acción de sistema (actor nulo) para no perder el
// rastro del cambio.
type AuditWriter struct {
	repo repository.AuditoriaRepo
	log  *zap.Logger
}

func NewAuditWriter(repo repository.AuditoriaRepo, log *zap.Logger) *AuditWriter {
	return &AuditWriter{repo: repo, log: log}
}

func (w *AuditWriter) Record(ctx context.Context, actorID *uuid.UUID, accion, tabla string, registroID string, detalles models.JSONB) {
	var regPtr *string
	if registroID != "" {
		regPtr = &registroID
	}
	entry := &models.Auditoria{
		EmpleadoID:    actorID,
		Accion:        accion,
		TablaAfectada: tabla,
		RegistroID:    regPtr,
		Detalles:      detalles,
	}
	err := w.repo.Insert(ctx, entry)
	if err == nil {
		return
	}
	w.log.Warn("fallo al escribir auditoría",
		zap.String("accion", accion),
		zap.String("tabla", tabla),
		zap.Error(err),
	)
	if actorID == nil {
		return
	}
	retry := *entry
	retry.ID = uuid.Nil
	retry.EmpleadoID = nil
	if err := w.repo.Insert(ctx, &retry); err != nil {
		w.log.Error("auditoría perdida tras reintento sin actor",
			zap.String("accion", accion),
			zap.Error(err),
		)
	}
}
