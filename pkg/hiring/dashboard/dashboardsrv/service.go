package dashboardsrv

import (
	"context"

	"github.com/remora-hq/staffdesk/pkg/hiring/candidate"
	"github.com/remora-hq/staffdesk/pkg/hiring/dashboard"
	"github.com/remora-hq/staffdesk/pkg/hiring/position"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/actor"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// DashboardService arma el resumen operativo del back-office
type DashboardService struct {
	candidateRepo candidate.CandidateRepository
	positionRepo  position.PositionRepository
	actorRepo     actor.ActorRepository
}

// NewDashboardService crea una nueva instancia del servicio de dashboard
func NewDashboardService(
	candidateRepo candidate.CandidateRepository,
	positionRepo position.PositionRepository,
	actorRepo actor.ActorRepository,
) *DashboardService {
	return &DashboardService{
		candidateRepo: candidateRepo,
		positionRepo:  positionRepo,
		actorRepo:     actorRepo,
	}
}

// GetSummary retorna los conteos por estado de ambos workflows. Exige
// visibilidad total sobre candidatos y posiciones. Los estados sin filas
// aparecen en cero para que el consumidor no deba conocer el ciclo.
func (s *DashboardService) GetSummary(ctx context.Context, authCtx *kernel.AuthContext) (*dashboard.Summary, error) {
	if !authCtx.Can(rbac.CapViewAllCandidates) || !authCtx.Can(rbac.CapViewAllPositions) {
		return nil, iam.ErrForbidden().
			WithDetail("required_capability", string(rbac.CapViewAllCandidates))
	}

	candidateCounts, err := s.candidateRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	positionCounts, err := s.positionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	actors, err := s.actorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dashboard.Summary{
		Candidates: make(map[candidate.Status]int, len(candidate.AllStatuses)),
		Positions:  make(map[position.Status]int, len(position.AllStatuses)),
		Actors:     actors,
	}
	for _, st := range candidate.AllStatuses {
		summary.Candidates[st] = candidateCounts[st]
	}
	for _, st := range position.AllStatuses {
		summary.Positions[st] = positionCounts[st]
	}

	return summary, nil
}
