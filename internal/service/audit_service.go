package service

import (
	"context"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"
	"github.com/23121005-sketch/D-arlet/internal/repository"
)

// AuditService expone la bitácora al panel de auditoría, solo lectura y solo
// admin.
type AuditService struct {
	repo repository.AuditoriaRepo
	now  func() time.Time
}

func NewAuditService(repo repository.AuditoriaRepo) *AuditService {
	return &AuditService{repo: repo, now: time.Now}
}

func (s *AuditService) Listar(ctx context.Context, f repository.AuditoriaFilter) ([]*models.Auditoria, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor.Rol, PanelAuditoria) {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, f)
}

func (s *AuditService) Estadisticas(ctx context.Context) (repository.AuditoriaStats, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return repository.AuditoriaStats{}, err
	}
	if !CanAccess(actor.Rol, PanelAuditoria) {
		return repository.AuditoriaStats{}, ErrForbidden
	}
	y, m, d := s.now().Date()
	inicioDia := time.Date(y, m, d, 0, 0, 0, 0, s.now().Location())
	return s.repo.Stats(ctx, inicioDia)
}
