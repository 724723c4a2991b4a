package service

import (
	"context"
	"fmt"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"
	"github.com/23121005-sketch/D-arlet/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CrearEmpleadoInput struct {
	Nombre   string
	Email    string
	Telefono string
	Rol      models.Rol
	Password string
}

type EditarEmpleadoInput struct {
	Nombre   string
	Telefono string
	Rol      models.Rol
	Estado   models.EstadoEmpleado
}

type EmpleadoService struct {
	empleados repository.EmpleadoRepo
	hasher    PasswordHasher
	tokens    TokenProvider
	cache     SessionCache
	audit     *AuditWriter
	log       *zap.Logger
	now       func() time.Time
}

func NewEmpleadoService(empleados repository.EmpleadoRepo, hasher PasswordHasher, tokens TokenProvider, cache SessionCache, audit *AuditWriter, log *zap.Logger) *EmpleadoService {
	return &EmpleadoService{
		empleados: empleados,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		audit:     audit,
		log:       log,
		now:       time.Now,
	}
}

func rolValido(r models.Rol) bool {
	switch r {
	case models.RolAdmin, models.RolReservas, models.RolDelivery, models.RolCocina:
		return true
	}
	return false
}

// Login no distingue entre email inexistente, cuenta inactiva y contraseña
// equivocada: todo es credencial inválida hacia afuera.
func (s *EmpleadoService) Login(ctx context.Context, email, password string) (*models.Empleado, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrCredencialesInvalidas
	}

	key := "login:" + email
	limited, err := s.cache.CheckRateLimit(ctx, key)
	if err != nil {
		s.log.Warn("rate limit no disponible", zap.Error(err))
	}
	if limited {
		return nil, "", time.Time{}, ErrRateLimited
	}

	e, err := s.empleados.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if e == nil || e.Estado != models.EmpleadoActivo || !s.hasher.Compare(e.PasswordHash, password) {
		if err := s.cache.SetRateLimit(ctx, key, 3*time.Second); err != nil {
			s.log.Warn("no se pudo registrar el intento fallido", zap.Error(err))
		}
		return nil, "", time.Time{}, ErrCredencialesInvalidas
	}

	token, exp, err := s.tokens.SignAccess(e.ID, e.Rol, e.Nombre)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("firmar token: %w", err)
	}

	id := e.ID
	s.audit.Record(ctx, &id, AccionLogin, "empleados", e.ID.String(), models.JSONB{
		"rol": string(e.Rol),
	})
	return e, token, exp, nil
}

// Logout invalida el token restante de la sesión hasta su expiración.
func (s *EmpleadoService) Logout(ctx context.Context, rawToken string, exp time.Time) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.cache.BlacklistToken(ctx, token.Fingerprint(rawToken), ttl)
}

func (s *EmpleadoService) Crear(ctx context.Context, in CrearEmpleadoInput) (*models.Empleado, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolAdmin {
		return nil, ErrForbidden
	}
	if in.Nombre == "" || in.Email == "" {
		return nil, ErrCampoObligatorio
	}
	if !rolValido(in.Rol) {
		return nil, ErrRolInvalido
	}
	if len(in.Password) < 8 {
		return nil, ErrPasswordDebil
	}

	exists, err := s.empleados.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailYaRegistrado
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}

	e := &models.Empleado{
		Nombre:       in.Nombre,
		Email:        in.Email,
		Telefono:     in.Telefono,
		Rol:          in.Rol,
		Estado:       models.EmpleadoActivo,
		PasswordHash: hash,
	}
	if err := s.empleados.Create(ctx, e); err != nil {
		if repository.EsDuplicado(err) {
			return nil, ErrEmailYaRegistrado
		}
		return nil, fmt.Errorf("crear empleado: %w", err)
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionCrearEmpleado, "empleados", e.ID.String(), models.JSONB{
		"email": e.Email,
		"rol":   string(e.Rol),
	})
	return e, nil
}

func (s *EmpleadoService) Listar(ctx context.Context) ([]*models.Empleado, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelEmpleados) {
		return nil, ErrForbidden
	}
	return s.empleados.List(ctx)
}

func (s *EmpleadoService) Actualizar(ctx context.Context, id uuid.UUID, in EditarEmpleadoInput) (*models.Empleado, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolAdmin {
		return nil, ErrForbidden
	}
	if in.Nombre == "" {
		return nil, ErrCampoObligatorio
	}
	if !rolValido(in.Rol) {
		return nil, ErrRolInvalido
	}
	switch in.Estado {
	case models.EmpleadoActivo, models.EmpleadoInactivo, models.EmpleadoVacaciones:
	default:
		return nil, ErrCampoObligatorio
	}

	e, err := s.empleados.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmpleadoNotFound
	}

	err = s.empleados.UpdateFields(ctx, id, map[string]any{
		"nombre":   in.Nombre,
		"telefono": in.Telefono,
		"rol":      in.Rol,
		"estado":   in.Estado,
	})
	if err != nil {
		return nil, err
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEditarEmpleado, "empleados", id.String(), models.JSONB{
		"rol":    string(in.Rol),
		"estado": string(in.Estado),
	})
	return s.empleados.GetByID(ctx, id)
}

func (s *EmpleadoService) CambiarPassword(ctx context.Context, id uuid.UUID, nueva string) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if actor.Rol != models.RolAdmin && actor.ID != id {
		return ErrForbidden
	}
	if len(nueva) < 8 {
		return ErrPasswordDebil
	}
	e, err := s.empleados.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrEmpleadoNotFound
	}

	hash, err := s.hasher.Hash(nueva)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	if err := s.empleados.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionCambiarPassword, "empleados", id.String(), nil)
	return nil
}

// Eliminar borra la cuenta; el propio admin no puede eliminarse.
func (s *EmpleadoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if actor.Rol != models.RolAdmin {
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrForbidden
	}
	e, err := s.empleados.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrEmpleadoNotFound
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEliminarEmpleado, "empleados", id.String(), models.JSONB{
		"email": e.Email,
	})
	return s.empleados.Delete(ctx, id)
}
