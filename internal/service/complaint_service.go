package service

import (
	"context"
	"fmt"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func parseMonto(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%w: monto reclamado", ErrCampoObligatorio)
	}
	return &d, nil
}

type RegistrarReclamacionInput struct {
	ClienteNombre    string
	ClienteDNI       string
	ClienteDireccion string
	ClienteTelefono  string
	ClienteEmail     string
	TipoBien         models.TipoBien
	MontoReclamado   *string // decimal en texto, opcional
	DescripcionBien  string
	Tipo             models.TipoReclamacion
	Detalle          string
	PedidoConsumidor string
}

type ReclamacionService struct {
	reclamaciones repository.ReclamacionRepo
	audit         *AuditWriter
	email         EmailSender
	events        EventBus
	log           *zap.Logger
	now           func() time.Time

	// Parámetros del reintento en segundo plano cuando el correo salió pero
	// el cierre del expediente no se pudo persistir.
	retryAttempts int
	retryDelay    time.Duration
}

func NewReclamacionService(repo repository.ReclamacionRepo, audit *AuditWriter, email EmailSender, events EventBus, log *zap.Logger) *ReclamacionService {
	return &ReclamacionService{
		reclamaciones: repo,
		audit:         audit,
		email:         email,
		events:        events,
		log:           log,
		now:           time.Now,
		retryAttempts: 3,
		retryDelay:    5 * time.Second,
	}
}

func validarTipoBien(t models.TipoBien) bool {
	return t == models.BienProducto || t == models.BienServicio
}

func validarTipoReclamacion(t models.TipoReclamacion) bool {
	return t == models.TipoReclamo || t == models.TipoQueja
}

// Registrar es la única escritura pública del sistema: llega del formulario
// del Libro de Reclamaciones sin sesión, por eso la auditoría va con actor
// nulo.
func (s *ReclamacionService) Registrar(ctx context.Context, in RegistrarReclamacionInput) (*models.Reclamacion, error) {
	switch "" {
	case in.ClienteNombre, in.ClienteDNI, in.ClienteDireccion, in.ClienteTelefono,
		in.ClienteEmail, in.DescripcionBien, in.Detalle, in.PedidoConsumidor:
		return nil, ErrCampoObligatorio
	}
	if !validarTipoBien(in.TipoBien) || !validarTipoReclamacion(in.Tipo) {
		return nil, ErrCampoObligatorio
	}
	monto, err := parseMonto(in.MontoReclamado)
	if err != nil {
		return nil, err
	}

	codigo, err := nanorand.Gen(10)
	if err != nil {
		return nil, fmt.Errorf("generar código de reclamación: %w", err)
	}

	r := &models.Reclamacion{
		Codigo:           "REC-" + codigo,
		Fecha:            s.now(),
		ClienteNombre:    in.ClienteNombre,
		ClienteDNI:       in.ClienteDNI,
		ClienteDireccion: in.ClienteDireccion,
		ClienteTelefono:  in.ClienteTelefono,
		ClienteEmail:     in.ClienteEmail,
		TipoBien:         in.TipoBien,
		MontoReclamado:   monto,
		DescripcionBien:  in.DescripcionBien,
		Tipo:             in.Tipo,
		Detalle:          in.Detalle,
		PedidoConsumidor: in.PedidoConsumidor,
		Estado:           models.ReclamacionPendiente,
	}
	if err := s.reclamaciones.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("registrar reclamación: %w", err)
	}

	s.audit.Record(ctx, nil, AccionNuevaReclamacion, "reclamaciones", r.ID.String(), models.JSONB{
		"codigo": r.Codigo,
		"tipo":   string(r.Tipo),
	})
	s.publicar(ctx, AccionNuevaReclamacion, r.ID)
	return r, nil
}

func (s *ReclamacionService) Listar(ctx context.Context, estado *models.EstadoReclamacion) ([]*models.Reclamacion, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelReclamaciones) {
		return nil, ErrForbidden
	}
	return s.reclamaciones.List(ctx, estado)
}

func (s *ReclamacionService) Get(ctx context.Context, id uuid.UUID) (*models.Reclamacion, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelReclamaciones) {
		return nil, ErrForbidden
	}
	r, err := s.reclamaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReclamacionNotFound
	}
	return r, nil
}

// ConsultarPorCodigo permite al reclamante verificar su hoja sin sesión.
func (s *ReclamacionService) ConsultarPorCodigo(ctx context.Context, codigo string) (*models.Reclamacion, error) {
	if codigo == "" {
		return nil, ErrCampoObligatorio
	}
	r, err := s.reclamaciones.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReclamacionNotFound
	}
	return r, nil
}

// CambiarEstado mueve el expediente entre pendiente y en_proceso. Cerrar
// (resuelto) sólo sucede vía Responder; un expediente resuelto es inmutable.
func (s *ReclamacionService) CambiarEstado(ctx context.Context, id uuid.UUID, a models.EstadoReclamacion) (*models.Reclamacion, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolAdmin {
		return nil, ErrForbidden
	}
	if a != models.ReclamacionEnProceso {
		return nil, ErrTransicionInvalida
	}
	r, err := s.reclamaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReclamacionNotFound
	}
	if r.Estado == models.ReclamacionResuelto {
		return nil, ErrReclamacionCerrada
	}

	ok, err := s.reclamaciones.UpdateEstado(ctx, id, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReclamacionCerrada
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionEstadoReclamacion, "reclamaciones", id.String(), models.JSONB{
		"de": string(r.Estado),
		"a":  string(a),
	})
	s.publicar(ctx, AccionEstadoReclamacion, id)
	return s.reclamaciones.GetByID(ctx, id)
}

// Responder cierra el expediente. El orden importa: primero el correo al
// reclamante y recién con el envío confirmado se persiste la respuesta. Si
// el correo sale pero la persistencia falla, un reintento acotado en segundo
// plano termina el cierre; la operación es idempotente porque el UPDATE está
// condicionado a estado <> resuelto.
func (s *ReclamacionService) Responder(ctx context.Context, id uuid.UUID, respuesta string) (*models.Reclamacion, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Rol != models.RolAdmin {
		return nil, ErrForbidden
	}
	if respuesta == "" {
		return nil, ErrRespuestaVacia
	}
	r, err := s.reclamaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReclamacionNotFound
	}
	if r.Estado == models.ReclamacionResuelto {
		return nil, ErrReclamacionCerrada
	}

	asunto := "Respuesta a su hoja de reclamación " + r.Codigo
	cuerpo := fmt.Sprintf(
		"Estimado/a %s,\n\nEn atención a su %s registrada con el código %s, le comunicamos lo siguiente:\n\n%s\n\nRestaurante D'arlet",
		r.ClienteNombre, r.Tipo, r.Codigo, respuesta,
	)
	if err := s.email.Send(ctx, r.ClienteEmail, r.ClienteNombre, asunto, cuerpo, map[string]string{
		"codigo": r.Codigo,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificacionFallida, err)
	}

	ahora := s.now()
	ok, err := s.reclamaciones.Resolver(ctx, id, respuesta, actor.ID, ahora)
	if err != nil {
		s.log.Error("correo enviado pero el cierre no se pudo persistir, reintentando en segundo plano",
			zap.String("reclamacion", id.String()),
			zap.Error(err),
		)
		go s.reintentarCierre(id, respuesta, actor.ID, ahora)
		return nil, fmt.Errorf("responder reclamación: %w", err)
	}
	if !ok {
		return nil, ErrReclamacionCerrada
	}

	actorID := actor.ID
	s.audit.Record(ctx, &actorID, AccionResponderReclamacion, "reclamaciones", id.String(), models.JSONB{
		"codigo": r.Codigo,
		"email":  r.ClienteEmail,
	})
	s.publicar(ctx, AccionResponderReclamacion, id)
	return s.reclamaciones.GetByID(ctx, id)
}

func (s *ReclamacionService) reintentarCierre(id uuid.UUID, respuesta string, por uuid.UUID, at time.Time) {
	for i := 0; i < s.retryAttempts; i++ {
		time.Sleep(s.retryDelay)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		ok, err := s.reclamaciones.Resolver(ctx, id, respuesta, por, at)
		cancel()
		if err == nil {
			if ok {
				s.audit.Record(context.Background(), nil, AccionResponderReclamacion, "reclamaciones", id.String(), models.JSONB{
					"reintento": i + 1,
				})
				s.publicar(context.Background(), AccionResponderReclamacion, id)
			}
			return
		}
		s.log.Warn("reintento de cierre de reclamación fallido",
			zap.String("reclamacion", id.String()),
			zap.Int("intento", i+1),
			zap.Error(err),
		)
	}
	s.log.Error("cierre de reclamación agotó reintentos, requiere intervención manual",
		zap.String("reclamacion", id.String()),
	)
}

func (s *ReclamacionService) publicar(ctx context.Context, accion string, id uuid.UUID) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCambio(ctx, "reclamaciones", accion, id.String()); err != nil {
		s.log.Warn("no se pudo publicar cambio de reclamación", zap.Error(err))
	}
}
