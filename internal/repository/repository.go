package repository

import "gorm.io/gorm"

type Repository struct {
	DB            *gorm.DB
	Empleados     EmpleadoRepo
	Pedidos       PedidoRepo
	PedidoItems   PedidoItemRepo
	Mesas         MesaRepo
	Reservas      ReservaRepo
	Reclamaciones ReclamacionRepo
	Auditoria     AuditoriaRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:            db,
		Empleados:     NewEmpleadoRepo(db),
		Pedidos:       NewPedidoRepo(db),
		PedidoItems:   NewPedidoItemRepo(db),
		Mesas:         NewMesaRepo(db),
		Reservas:      NewReservaRepo(db),
		Reclamaciones: NewReclamacionRepo(db),
		Auditoria:     NewAuditoriaRepo(db),
	}
}
