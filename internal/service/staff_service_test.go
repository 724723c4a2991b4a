package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newEmpleadoService(repo *MockEmpleadoRepo, cache *MockSessionCache, audit *MockAuditoriaRepo) *service.EmpleadoService {
	log := zap.NewNop()
	return service.NewEmpleadoService(repo, &MockHasher{}, &MockTokenProvider{}, cache, service.NewAuditWriter(audit, log), log)
}

func empleadoActivo() *models.Empleado {
	return &models.Empleado{
		ID:           uuid.New(),
		Nombre:       "Rosa Díaz",
		Email:        "rosa@darlet.pe",
		Rol:          models.RolReservas,
		Estado:       models.EmpleadoActivo,
		PasswordHash: "hash:secreta123",
	}
}

func TestLogin_OK(t *testing.T) {
	e := empleadoActivo()
	repo := &MockEmpleadoRepo{GetByEmailFunc: func(ctx context.Context, email string) (*models.Empleado, error) {
		return e, nil
	}}
	audit := &MockAuditoriaRepo{}
	svc := newEmpleadoService(repo, &MockSessionCache{}, audit)

	got, tok, _, err := svc.Login(context.Background(), "rosa@darlet.pe", "secreta123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != e.ID || tok == "" {
		t.Errorf("login debe devolver empleado y token")
	}
	if len(audit.Entradas) != 1 || audit.Entradas[0].Accion != service.AccionLogin {
		t.Errorf("se esperaba auditoría LOGIN")
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := empleadoActivo()
	cache := &MockSessionCache{}
	repo := &MockEmpleadoRepo{GetByEmailFunc: func(ctx context.Context, email string) (*models.Empleado, error) {
		if email == e.Email {
			return e, nil
		}
		return nil, nil
	}}
	svc := newEmpleadoService(repo, cache, &MockAuditoriaRepo{})

	if _, _, _, err := svc.Login(context.Background(), "rosa@darlet.pe", "equivocada"); !errors.Is(err, service.ErrCredencialesInvalidas) {
		t.Errorf("password mala: err = %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "nadie@darlet.pe", "secreta123"); !errors.Is(err, service.ErrCredencialesInvalidas) {
		t.Errorf("email inexistente: err = %v", err)
	}
	if len(cache.RateLimits) != 2 {
		t.Errorf("cada intento fallido debe marcar el rate limit, hay %d", len(cache.RateLimits))
	}
}

func TestLogin_CuentaInactiva(t *testing.T) {
	e := empleadoActivo()
	e.Estado = models.EmpleadoInactivo
	repo := &MockEmpleadoRepo{GetByEmailFunc: func(ctx context.Context, email string) (*models.Empleado, error) {
		return e, nil
	}}
	svc := newEmpleadoService(repo, &MockSessionCache{}, &MockAuditoriaRepo{})

	if _, _, _, err := svc.Login(context.Background(), e.Email, "secreta123"); !errors.Is(err, service.ErrCredencialesInvalidas) {
		t.Errorf("cuenta inactiva no distingue el motivo: err = %v", err)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	svc := newEmpleadoService(&MockEmpleadoRepo{}, &MockSessionCache{Limited: true}, &MockAuditoriaRepo{})

	if _, _, _, err := svc.Login(context.Background(), "rosa@darlet.pe", "secreta123"); !errors.Is(err, service.ErrRateLimited) {
		t.Errorf("err = %v, esperado ErrRateLimited", err)
	}
}

// El middleware consulta la lista negra por la huella del token; Logout debe
// guardar esa misma clave o la sesión cerrada seguiría autenticando.
func TestLogout_VetaLaHuellaDelToken(t *testing.T) {
	cache := &MockSessionCache{}
	svc := newEmpleadoService(&MockEmpleadoRepo{}, cache, &MockAuditoriaRepo{})
	ctx, _ := ctxConActor(models.RolAdmin)

	raw := "header.payload.signature"
	if err := svc.Logout(ctx, raw, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	huella := token.Fingerprint(raw)
	if len(cache.Blacklisted) != 1 || cache.Blacklisted[0] != huella {
		t.Fatalf("clave vetada = %v, esperada la huella %q", cache.Blacklisted, huella)
	}
	if vetado, _ := cache.IsTokenBlacklisted(ctx, huella); !vetado {
		t.Errorf("la consulta por huella debe encontrar el token vetado")
	}
	if vetado, _ := cache.IsTokenBlacklisted(ctx, raw); vetado {
		t.Errorf("el JWT crudo nunca se usa como clave de la lista negra")
	}
}

func TestLogout_TokenVencidoNoSeVeta(t *testing.T) {
	cache := &MockSessionCache{}
	svc := newEmpleadoService(&MockEmpleadoRepo{}, cache, &MockAuditoriaRepo{})
	ctx, _ := ctxConActor(models.RolAdmin)

	if err := svc.Logout(ctx, "otro.token.vencido", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(cache.Blacklisted) != 0 {
		t.Errorf("un token ya vencido expira solo, no entra a la lista negra")
	}
}

func TestCrearEmpleado_Validaciones(t *testing.T) {
	svc := newEmpleadoService(&MockEmpleadoRepo{}, &MockSessionCache{}, &MockAuditoriaRepo{})
	ctx, _ := ctxConActor(models.RolAdmin)

	in := service.CrearEmpleadoInput{Nombre: "Luis", Email: "luis@darlet.pe", Rol: "mozo", Password: "secreta123"}
	if _, err := svc.Crear(ctx, in); !errors.Is(err, service.ErrRolInvalido) {
		t.Errorf("rol inválido: err = %v", err)
	}

	in.Rol = models.RolCocina
	in.Password = "corta"
	if _, err := svc.Crear(ctx, in); !errors.Is(err, service.ErrPasswordDebil) {
		t.Errorf("password corta: err = %v", err)
	}
}

func TestCrearEmpleado_EmailDuplicado(t *testing.T) {
	repo := &MockEmpleadoRepo{ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
		return true, nil
	}}
	svc := newEmpleadoService(repo, &MockSessionCache{}, &MockAuditoriaRepo{})

	ctx, _ := ctxConActor(models.RolAdmin)
	in := service.CrearEmpleadoInput{Nombre: "Luis", Email: "rosa@darlet.pe", Rol: models.RolCocina, Password: "secreta123"}
	if _, err := svc.Crear(ctx, in); !errors.Is(err, service.ErrEmailYaRegistrado) {
		t.Errorf("err = %v, esperado ErrEmailYaRegistrado", err)
	}
}

func TestCrearEmpleado_SoloAdmin(t *testing.T) {
	svc := newEmpleadoService(&MockEmpleadoRepo{}, &MockSessionCache{}, &MockAuditoriaRepo{})
	ctx, _ := ctxConActor(models.RolReservas)

	in := service.CrearEmpleadoInput{Nombre: "Luis", Email: "luis@darlet.pe", Rol: models.RolCocina, Password: "secreta123"}
	if _, err := svc.Crear(ctx, in); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("err = %v, esperado ErrForbidden", err)
	}
}

func TestEliminarEmpleado_NoASiMismo(t *testing.T) {
	svc := newEmpleadoService(&MockEmpleadoRepo{}, &MockSessionCache{}, &MockAuditoriaRepo{})
	ctx, actor := ctxConActor(models.RolAdmin)

	if err := svc.Eliminar(ctx, actor.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("borrarse a sí mismo: err = %v, esperado ErrForbidden", err)
	}
}

func TestPanelesPorRol(t *testing.T) {
	casos := []struct {
		rol    models.Rol
		panel  service.Panel
		quiere bool
	}{
		{models.RolAdmin, service.PanelAuditoria, true},
		{models.RolAdmin, service.PanelCocina, true},
		{models.RolReservas, service.PanelReservas, true},
		{models.RolReservas, service.PanelDelivery, true},
		{models.RolReservas, service.PanelAuditoria, false},
		{models.RolDelivery, service.PanelDelivery, true},
		{models.RolDelivery, service.PanelReservas, false},
		{models.RolCocina, service.PanelCocina, true},
		{models.RolCocina, service.PanelDelivery, false},
		{models.RolCocina, service.PanelReclamaciones, false},
	}
	for _, c := range casos {
		if got := service.CanAccess(c.rol, c.panel); got != c.quiere {
			t.Errorf("CanAccess(%s, %s) = %v, esperado %v", c.rol, c.panel, got, c.quiere)
		}
	}
}
