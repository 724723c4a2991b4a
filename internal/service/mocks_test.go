package service_test

import (
	"context"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"
	"github.com/23121005-sketch/D-arlet/internal/service"

	"github.com/google/uuid"
)

// Mocks de función por campo, al estilo del resto de los tests del proyecto:
// sólo se define el comportamiento que el caso necesita.

type MockPedidoRepo struct {
	CreateFunc          func(ctx context.Context, p *models.Pedido) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Pedido, error)
	ListFunc            func(ctx context.Context, f repository.PedidoListFilter) ([]*models.Pedido, int64, error)
	ListByEstadosFunc   func(ctx context.Context, estados []models.EstadoPedido) ([]*models.Pedido, error)
	UpdateFieldsCASFunc func(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error)
	StatsFunc           func(ctx context.Context, inicioDia time.Time) (repository.PedidoStats, error)

	Items *MockPedidoItemRepo
}

func (m *MockPedidoRepo) Create(ctx context.Context, p *models.Pedido) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockPedidoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPedidoRepo) List(ctx context.Context, f repository.PedidoListFilter) ([]*models.Pedido, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockPedidoRepo) ListByEstados(ctx context.Context, estados []models.EstadoPedido) ([]*models.Pedido, error) {
	if m.ListByEstadosFunc != nil {
		return m.ListByEstadosFunc(ctx, estados)
	}
	return nil, nil
}

func (m *MockPedidoRepo) UpdateFieldsCAS(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error) {
	if m.UpdateFieldsCASFunc != nil {
		return m.UpdateFieldsCASFunc(ctx, id, version, updates)
	}
	return true, nil
}

func (m *MockPedidoRepo) Stats(ctx context.Context, inicioDia time.Time) (repository.PedidoStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, inicioDia)
	}
	return repository.PedidoStats{}, nil
}

func (m *MockPedidoRepo) WithTx(ctx context.Context, fn func(tx repository.PedidoRepo, txItems repository.PedidoItemRepo) error) error {
	items := m.Items
	if items == nil {
		items = &MockPedidoItemRepo{}
	}
	return fn(m, items)
}

type MockPedidoItemRepo struct {
	BulkCreateFunc     func(ctx context.Context, items []models.PedidoItem) error
	DeleteByPedidoFunc func(ctx context.Context, pedidoID uuid.UUID) error
}

func (m *MockPedidoItemRepo) BulkCreate(ctx context.Context, items []models.PedidoItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockPedidoItemRepo) DeleteByPedido(ctx context.Context, pedidoID uuid.UUID) error {
	if m.DeleteByPedidoFunc != nil {
		return m.DeleteByPedidoFunc(ctx, pedidoID)
	}
	return nil
}

type MockReservaRepo struct {
	CreateFunc          func(ctx context.Context, res *models.Reserva) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Reserva, error)
	ListByFechaFunc     func(ctx context.Context, fecha time.Time) ([]*models.Reserva, error)
	ListAllFunc         func(ctx context.Context) ([]*models.Reserva, error)
	BuscarFunc          func(ctx context.Context, nombre string) ([]*models.Reserva, error)
	MesasOcupadasFunc   func(ctx context.Context, fecha time.Time, hora string) ([]string, error)
	ExisteConflictoFunc func(ctx context.Context, mesa string, fecha time.Time, hora string, excluir *uuid.UUID) (bool, error)
	UpdateFieldsCASFunc func(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *MockReservaRepo) Create(ctx context.Context, res *models.Reserva) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, res)
	}
	return nil
}

func (m *MockReservaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reserva, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReservaRepo) ListByFecha(ctx context.Context, fecha time.Time) ([]*models.Reserva, error) {
	if m.ListByFechaFunc != nil {
		return m.ListByFechaFunc(ctx, fecha)
	}
	return nil, nil
}

func (m *MockReservaRepo) ListAll(ctx context.Context) ([]*models.Reserva, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockReservaRepo) BuscarPorCliente(ctx context.Context, nombre string) ([]*models.Reserva, error) {
	if m.BuscarFunc != nil {
		return m.BuscarFunc(ctx, nombre)
	}
	return nil, nil
}

func (m *MockReservaRepo) MesasOcupadas(ctx context.Context, fecha time.Time, hora string) ([]string, error) {
	if m.MesasOcupadasFunc != nil {
		return m.MesasOcupadasFunc(ctx, fecha, hora)
	}
	return nil, nil
}

func (m *MockReservaRepo) ExisteConflicto(ctx context.Context, mesa string, fecha time.Time, hora string, excluir *uuid.UUID) (bool, error) {
	if m.ExisteConflictoFunc != nil {
		return m.ExisteConflictoFunc(ctx, mesa, fecha, hora, excluir)
	}
	return false, nil
}

func (m *MockReservaRepo) UpdateFieldsCAS(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) (bool, error) {
	if m.UpdateFieldsCASFunc != nil {
		return m.UpdateFieldsCASFunc(ctx, id, version, updates)
	}
	return true, nil
}

func (m *MockReservaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockMesaRepo struct {
	ListAllFunc func(ctx context.Context) ([]*models.Mesa, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Mesa, error)
}

func (m *MockMesaRepo) ListAll(ctx context.Context) ([]*models.Mesa, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockMesaRepo) GetByID(ctx context.Context, id string) (*models.Mesa, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type MockReclamacionRepo struct {
	CreateFunc       func(ctx context.Context, rec *models.Reclamacion) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Reclamacion, error)
	GetByCodigoFunc  func(ctx context.Context, codigo string) (*models.Reclamacion, error)
	ListFunc         func(ctx context.Context, estado *models.EstadoReclamacion) ([]*models.Reclamacion, error)
	UpdateEstadoFunc func(ctx context.Context, id uuid.UUID, estado models.EstadoReclamacion) (bool, error)
	ResolverFunc     func(ctx context.Context, id uuid.UUID, respuesta string, por uuid.UUID, at time.Time) (bool, error)
}

func (m *MockReclamacionRepo) Create(ctx context.Context, rec *models.Reclamacion) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *MockReclamacionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reclamacion, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReclamacionRepo) GetByCodigo(ctx context.Context, codigo string) (*models.Reclamacion, error) {
	if m.GetByCodigoFunc != nil {
		return m.GetByCodigoFunc(ctx, codigo)
	}
	return nil, nil
}

func (m *MockReclamacionRepo) List(ctx context.Context, estado *models.EstadoReclamacion) ([]*models.Reclamacion, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, estado)
	}
	return nil, nil
}

func (m *MockReclamacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado models.EstadoReclamacion) (bool, error) {
	if m.UpdateEstadoFunc != nil {
		return m.UpdateEstadoFunc(ctx, id, estado)
	}
	return true, nil
}

func (m *MockReclamacionRepo) Resolver(ctx context.Context, id uuid.UUID, respuesta string, por uuid.UUID, at time.Time) (bool, error) {
	if m.ResolverFunc != nil {
		return m.ResolverFunc(ctx, id, respuesta, por, at)
	}
	return true, nil
}

type MockEmpleadoRepo struct {
	CreateFunc         func(ctx context.Context, e *models.Empleado) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Empleado, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.Empleado, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	ListFunc           func(ctx context.Context) ([]*models.Empleado, error)
	UpdateFieldsFunc   func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockEmpleadoRepo) Create(ctx context.Context, e *models.Empleado) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *MockEmpleadoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Empleado, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEmpleadoRepo) GetByEmail(ctx context.Context, email string) (*models.Empleado, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockEmpleadoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockEmpleadoRepo) List(ctx context.Context) ([]*models.Empleado, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockEmpleadoRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, updates)
	}
	return nil
}

func (m *MockEmpleadoRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash)
	}
	return nil
}

func (m *MockEmpleadoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockAuditoriaRepo struct {
	InsertFunc func(ctx context.Context, a *models.Auditoria) error

	Entradas []*models.Auditoria
}

func (m *MockAuditoriaRepo) Insert(ctx context.Context, a *models.Auditoria) error {
	if m.InsertFunc != nil {
		if err := m.InsertFunc(ctx, a); err != nil {
			return err
		}
	}
	m.Entradas = append(m.Entradas, a)
	return nil
}

func (m *MockAuditoriaRepo) List(ctx context.Context, f repository.AuditoriaFilter) ([]*models.Auditoria, error) {
	return m.Entradas, nil
}

func (m *MockAuditoriaRepo) Stats(ctx context.Context, inicioDia time.Time) (repository.AuditoriaStats, error) {
	return repository.AuditoriaStats{Total: int64(len(m.Entradas))}, nil
}

type MockEmailSender struct {
	SendFunc func(ctx context.Context, to, nombre, asunto, cuerpo string, meta map[string]string) error

	Enviados int
}

func (m *MockEmailSender) Send(ctx context.Context, to, nombre, asunto, cuerpo string, meta map[string]string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, to, nombre, asunto, cuerpo, meta); err != nil {
			return err
		}
	}
	m.Enviados++
	return nil
}

type MockEventBus struct {
	PublishFunc func(ctx context.Context, tabla, accion, registroID string) error

	Publicados []string
}

func (m *MockEventBus) PublishCambio(ctx context.Context, tabla, accion, registroID string) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, tabla, accion, registroID); err != nil {
			return err
		}
	}
	m.Publicados = append(m.Publicados, tabla+":"+accion)
	return nil
}

type MockHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hash:" + password, nil
}

func (m *MockHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hash:"+password
}

type MockTokenProvider struct {
	SignAccessFunc func(id uuid.UUID, rol models.Rol, nombre string) (string, time.Time, error)
}

func (m *MockTokenProvider) SignAccess(id uuid.UUID, rol models.Rol, nombre string) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(id, rol, nombre)
	}
	return "token", time.Now().Add(time.Hour), nil
}

type MockSessionCache struct {
	Limited     bool
	Blacklisted []string
	RateLimits  []string
}

func (m *MockSessionCache) CheckRateLimit(ctx context.Context, key string) (bool, error) {
	return m.Limited, nil
}

func (m *MockSessionCache) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error {
	m.RateLimits = append(m.RateLimits, key)
	return nil
}

func (m *MockSessionCache) BlacklistToken(ctx context.Context, fingerprint string, ttl time.Duration) error {
	m.Blacklisted = append(m.Blacklisted, fingerprint)
	return nil
}

func (m *MockSessionCache) IsTokenBlacklisted(ctx context.Context, fingerprint string) (bool, error) {
	for _, f := range m.Blacklisted {
		if f == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

func ctxConActor(rol models.Rol) (context.Context, service.Actor) {
	actor := service.Actor{ID: uuid.New(), Rol: rol, Nombre: "Test"}
	return service.WithActor(context.Background(), actor), actor
}
