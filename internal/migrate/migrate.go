package migrate

import (
	"context"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK de estados, teléfono y montos
	CreateIndexes          bool // índices y UNIQUE parciales
	CreateUpdatedAtTrigger bool // trigger de updated_at
	SeedMesas              bool // inventario fijo de mesas
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateUpdatedAtTrigger: true,
		SeedMesas:              true,
	}
}

// MesasInventario es el inventario físico del local en orden de preferencia
// del asignador.
var MesasInventario = []models.Mesa{
	{ID: "T-01", Etiqueta: "T-01", Capacidad: 2, Zona: models.ZonaTerraza, Posicion: 1},
	{ID: "T-02", Etiqueta: "T-02", Capacidad: 2, Zona: models.ZonaTerraza, Posicion: 2},
	{ID: "T-03", Etiqueta: "T-03", Capacidad: 4, Zona: models.ZonaTerraza, Posicion: 3},
	{ID: "T-04", Etiqueta: "T-04", Capacidad: 4, Zona: models.ZonaTerraza, Posicion: 4},
	{ID: "S-01", Etiqueta: "S-01", Capacidad: 4, Zona: models.ZonaSalon, Posicion: 5},
	{ID: "S-02", Etiqueta: "S-02", Capacidad: 4, Zona: models.ZonaSalon, Posicion: 6},
	{ID: "S-03", Etiqueta: "S-03", Capacidad: 6, Zona: models.ZonaSalon, Posicion: 7},
	{ID: "S-04", Etiqueta: "S-04", Capacidad: 6, Zona: models.ZonaSalon, Posicion: 8},
	{ID: "S-12", Etiqueta: "S-12", Capacidad: 4, Zona: models.ZonaSalon, Posicion: 9},
	{ID: "S-15", Etiqueta: "S-15", Capacidad: 6, Zona: models.ZonaSalon, Posicion: 10},
	{ID: "VIP-01", Etiqueta: "VIP", Capacidad: 10, Zona: models.ZonaVIP, Posicion: 11},
	{ID: "EVENTO", Etiqueta: "Eventos", Capacidad: 20, Zona: models.ZonaEventos, Posicion: 12},
}

func MigrateDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Iniciando migración de la base de datos")

	if opt.CreateExtensions {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("No se pudo habilitar pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Creando tablas")
	if err := db.AutoMigrate(
		&models.Empleado{},
		&models.Mesa{},
		&models.Pedido{},
		&models.PedidoItem{},
		&models.Reserva{},
		&models.Reclamacion{},
		&models.Auditoria{},
	); err != nil {
		log.Error("AutoMigrate falló", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_pedidos_updated ON pedidos;
CREATE TRIGGER trg_pedidos_updated
BEFORE UPDATE ON pedidos
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_reservas_updated ON reservas;
CREATE TRIGGER trg_reservas_updated
BEFORE UPDATE ON reservas
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_reclamaciones_updated ON reclamaciones;
CREATE TRIGGER trg_reclamaciones_updated
BEFORE UPDATE ON reclamaciones
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("No se pudo crear el trigger updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Creando CHECK constraints")

		if err := db.Exec(`
ALTER TABLE pedidos
  DROP CONSTRAINT IF EXISTS chk_pedidos_estado;
ALTER TABLE pedidos
  ADD CONSTRAINT chk_pedidos_estado
  CHECK (estado IN ('pendiente','en_preparacion','listo_para_reparto','en_camino','entregado','cancelado'));
`).Error; err != nil {
			log.Error("CHECK de estado de pedidos falló", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE pedidos
  DROP CONSTRAINT IF EXISTS chk_pedidos_telefono;
ALTER TABLE pedidos
  ADD CONSTRAINT chk_pedidos_telefono
  CHECK (telefono ~ '^9[0-9]{8}$');
`).Error; err != nil {
			log.Error("CHECK de teléfono falló", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE pedido_items
  DROP CONSTRAINT IF EXISTS chk_pedido_items_cantidad;
ALTER TABLE pedido_items
  ADD CONSTRAINT chk_pedido_items_cantidad
  CHECK (cantidad > 0);
ALTER TABLE pedido_items
  DROP CONSTRAINT IF EXISTS chk_pedido_items_precio;
ALTER TABLE pedido_items
  ADD CONSTRAINT chk_pedido_items_precio
  CHECK (precio > 0 AND subtotal >= 0);
`).Error; err != nil {
			log.Error("CHECK de items falló", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE reservas
  DROP CONSTRAINT IF EXISTS chk_reservas_estado;
ALTER TABLE reservas
  ADD CONSTRAINT chk_reservas_estado
  CHECK (estado IN ('pendiente','confirmada','finalizada','cancelada','no_show'));
ALTER TABLE reservas
  DROP CONSTRAINT IF EXISTS chk_reservas_personas;
ALTER TABLE reservas
  ADD CONSTRAINT chk_reservas_personas
  CHECK (cantidad_personas > 0);
`).Error; err != nil {
			log.Error("CHECK de reservas falló", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE reclamaciones
  DROP CONSTRAINT IF EXISTS chk_reclamaciones_estado;
ALTER TABLE reclamaciones
  ADD CONSTRAINT chk_reclamaciones_estado
  CHECK (estado IN ('pendiente','en_proceso','resuelto'));
`).Error; err != nil {
			log.Error("CHECK de reclamaciones falló", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Creando índices")

		// Garantía de no doble reserva: única por mesa+fecha+hora entre las
		// no canceladas. Dos creaciones concurrentes no pueden ganar ambas.
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_reservas_mesa_slot
ON reservas (numero_mesa, fecha, hora)
WHERE estado <> 'cancelada' AND numero_mesa <> '';
`).Error; err != nil {
			log.Error("No se pudo crear ux_reservas_mesa_slot", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_pedidos_estado_created
ON pedidos (estado, created_at ASC);
`).Error; err != nil {
			log.Error("No se pudo crear ix_pedidos_estado_created", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_pedidos_repartidor_created
ON pedidos (repartidor_id, created_at DESC);
`).Error; err != nil {
			log.Error("No se pudo crear ix_pedidos_repartidor_created", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_auditoria_tabla_created
ON auditoria (tabla_afectada, created_at DESC);
`).Error; err != nil {
			log.Error("No se pudo crear ix_auditoria_tabla_created", zap.Error(err))
			return err
		}
	}

	if opt.SeedMesas {
		log.Info("Sembrando inventario de mesas")
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"etiqueta", "capacidad", "zona", "posicion"}),
			}).
			Create(&MesasInventario).Error; err != nil {
			log.Error("No se pudo sembrar mesas", zap.Error(err))
			return err
		}
	}

	log.Info("Migración completada")
	return nil
}
