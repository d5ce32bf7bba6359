package positionsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/remora-hq/staffdesk/pkg/hiring/position"
	"github.com/remora-hq/staffdesk/pkg/hiring/workflow"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
	"github.com/remora-hq/staffdesk/pkg/logx"
	"github.com/remora-hq/staffdesk/pkg/metrics"
	"github.com/remora-hq/staffdesk/pkg/notify"
	"github.com/remora-hq/staffdesk/pkg/validx"
)

// PositionService aplica el workflow de posiciones: valida la forma de la
// entrada, evalúa la legalidad de la transición contra la tabla, persiste
// y emite la señal de campaña cuando corresponde.
type PositionService struct {
	positionRepo position.PositionRepository
	notifier     notify.CampaignNotifier
}

// NewPositionService crea una nueva instancia del servicio de posiciones
func NewPositionService(positionRepo position.PositionRepository, notifier notify.CampaignNotifier) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		notifier:     notifier,
	}
}

// CreatePosition publica una nueva posición. Los no administradores quedan
// en DRAFT salvo pedido explícito de DRAFT o PENDING_APPROVAL; los estados
// finalizados en la creación exigen autoridad de aprobador y una creación
// directa en CAMPAIGN_SENT dispara la señal de campaña. Sin referencia
// explícita se genera una con el formato POS-<fecha>-<serie>.
func (s *PositionService) CreatePosition(ctx context.Context, authCtx *kernel.AuthContext, req position.CreatePositionRequest) (*position.Position, error) {
	if !authCtx.Can(rbac.CapPostPositions) {
		return nil, iam.ErrForbidden().WithDetail("required_capability", string(rbac.CapPostPositions))
	}

	if verr := validx.Struct(req); verr != nil {
		return nil, verr
	}

	var requested position.Status
	if req.Status != "" {
		parsed, ok := position.ParseStatus(req.Status)
		if !ok {
			return nil, position.ErrInvalidStatus().WithDetail("status", req.Status)
		}
		requested = parsed
	}

	now := time.Now()
	reference := req.Reference
	if reference == "" {
		reference = position.GenerateReference(now)
	}

	newPosition := &position.Position{
		ID:             uuid.NewString(),
		Reference:      reference,
		Title:          req.Title,
		Department:     req.Department,
		Location:       req.Location,
		Description:    req.Description,
		Skills:         req.Skills,
		Roles:          req.Roles,
		Industries:     req.Industries,
		Certifications: req.Certifications,
		Languages:      req.Languages,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Status:         position.InitialStatus(requested, authCtx.IsAdmin(), authCtx.IsGatekeeper || authCtx.IsSuperAdmin()),
		CreatorID:      authCtx.ActorID,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.positionRepo.Save(ctx, *newPosition); err != nil {
		return nil, err
	}

	metrics.TransitionsApplied.WithLabelValues("position", string(newPosition.Status)).Inc()

	// Una creación directa en CAMPAIGN_SENT emite la misma señal que la
	// transición hacia ese estado.
	if newPosition.Status == position.StatusCampaignSent {
		s.fireCampaignNotification(ctx, authCtx, newPosition)
	}

	return newPosition, nil
}

// GetPosition obtiene una posición por ID
func (s *PositionService) GetPosition(ctx context.Context, authCtx *kernel.AuthContext, id string) (*position.Position, error) {
	p, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Sin capability de ver todo, solo registros propios o publicados
	if !authCtx.Can(rbac.CapViewAllPositions) && !p.IsCreator(authCtx.ActorID) &&
		p.Status != position.StatusActive && p.Status != position.StatusCampaignSent {
		return nil, position.ErrPositionNotFound().WithDetail("position_id", id)
	}

	return p, nil
}

// ListPositions lista las posiciones visibles para el actor
func (s *PositionService) ListPositions(ctx context.Context, authCtx *kernel.AuthContext) (*position.PositionListResponse, error) {
	var (
		positions []*position.Position
		err       error
	)

	if authCtx.Can(rbac.CapViewAllPositions) {
		positions, err = s.positionRepo.FindAll(ctx)
	} else {
		positions, err = s.positionRepo.FindVisibleTo(ctx, authCtx.ActorID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]position.Position, 0, len(positions))
	for _, p := range positions {
		items = append(items, *p)
	}

	return &position.PositionListResponse{
		Positions: items,
		Total:     len(items),
	}, nil
}

// UpdatePosition aplica una actualización bajo las reglas de transición.
// Orden de las reglas:
//  1. el registro debe existir;
//  2. el llamador debe ser administrador, gatekeeper o el creador;
//  3. la transición pedida debe ser legal para la clase del llamador.
//
// Si la transición deja la posición en CAMPAIGN_SENT y no venía de
// CAMPAIGN_SENT, se emite la señal de campaña exactamente una vez.
func (s *PositionService) UpdatePosition(ctx context.Context, authCtx *kernel.AuthContext, id string, req position.UpdatePositionRequest) (*position.Position, error) {
	if verr := validx.Struct(req); verr != nil {
		return nil, verr
	}

	p, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	class, ok := workflow.Classify(authCtx, p.CreatorID)
	if !ok {
		return nil, position.ErrNotRecordOwner().WithDetail("position_id", id)
	}

	requested := p.Status
	if req.Status != nil {
		parsed, ok := position.ParseStatus(*req.Status)
		if !ok {
			return nil, position.ErrInvalidStatus().WithDetail("status", *req.Status)
		}
		requested = parsed
	}

	if terr := position.DecideTransition(p.Status, requested, class, authCtx.IsGatekeeper); terr != nil {
		metrics.TransitionsDenied.WithLabelValues("position").Inc()
		return nil, terr
	}

	previous := p.Status
	applyFieldChanges(p, req)
	p.Status = requested
	if req.Version != nil {
		p.Version = *req.Version
	}
	p.UpdatedAt = time.Now()

	if err := s.positionRepo.Save(ctx, *p); err != nil {
		return nil, err
	}

	p.Version++
	metrics.TransitionsApplied.WithLabelValues("position", string(p.Status)).Inc()

	if p.Status == position.StatusCampaignSent && previous != position.StatusCampaignSent {
		s.fireCampaignNotification(ctx, authCtx, p)
	}

	return p, nil
}

// DeletePosition elimina una posición. Los administradores borran en
// cualquier estado; el creador solo mientras no fue aprobada.
func (s *PositionService) DeletePosition(ctx context.Context, authCtx *kernel.AuthContext, id string) error {
	p, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !authCtx.IsAdmin() {
		if !p.IsCreator(authCtx.ActorID) {
			return position.ErrNotRecordOwner().WithDetail("position_id", id)
		}
		if !p.CanBeDeletedByCreator() {
			return position.ErrDeleteLocked().
				WithDetail("position_id", id).
				WithDetail("current_status", string(p.Status))
		}
	}

	return s.positionRepo.Delete(ctx, id)
}

// ArchiveStaleCampaigns archiva las campañas cuya última modificación
// supera el tiempo de permanencia. Idempotente: una segunda pasada sobre
// los mismos datos archiva cero filas.
func (s *PositionService) ArchiveStaleCampaigns(ctx context.Context, dwell time.Duration) (int, error) {
	cutoff := time.Now().Add(-dwell)

	archived, err := s.positionRepo.ArchiveStaleCampaigns(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if archived > 0 {
		metrics.PositionsArchived.Add(float64(archived))
		logx.Infof("Archival sweep archived %d stale campaigns (cutoff %s)", archived, cutoff.Format(time.RFC3339))
	}

	return archived, nil
}

// fireCampaignNotification emite la señal de campaña. Un fallo del sink
// no revierte la transición ya persistida: solo se registra.
func (s *PositionService) fireCampaignNotification(ctx context.Context, authCtx *kernel.AuthContext, p *position.Position) {
	event := notify.CampaignEvent{
		PositionID: p.ID,
		Reference:  p.Reference,
		Title:      p.Title,
		SentBy:     authCtx.Email,
		SentAt:     time.Now(),
	}

	if err := s.notifier.CampaignSent(ctx, event); err != nil {
		logx.WithFields(logx.Fields{
			"position_id": p.ID,
			"reference":   p.Reference,
		}).Errorf("Failed to send campaign notification: %v", err)
		return
	}

	metrics.CampaignNotifications.Inc()
}

func applyFieldChanges(p *position.Position, req position.UpdatePositionRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Department != nil {
		p.Department = *req.Department
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Skills != nil {
		p.Skills = req.Skills
	}
	if req.Roles != nil {
		p.Roles = req.Roles
	}
	if req.Industries != nil {
		p.Industries = req.Industries
	}
	if req.Certifications != nil {
		p.Certifications = req.Certifications
	}
	if req.Languages != nil {
		p.Languages = req.Languages
	}
	if req.SalaryMin != nil {
		p.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		p.SalaryMax = req.SalaryMax
	}
}
