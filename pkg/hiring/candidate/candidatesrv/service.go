package candidatesrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate"
	"github.com/remora-hq/staffdesk/pkg/hiring/workflow"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
	"github.com/remora-hq/staffdesk/pkg/metrics"
	"github.com/remora-hq/staffdesk/pkg/validx"
)

// CandidateService aplica el workflow de candidatos: valida la forma de la
// entrada, evalúa la legalidad de la transición contra la tabla y persiste.
type CandidateService struct {
	candidateRepo candidate.CandidateRepository
}

// NewCandidateService crea una nueva instancia del servicio de candidatos
func NewCandidateService(candidateRepo candidate.CandidateRepository) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
	}
}

// CreateCandidate propone un nuevo candidato. Los no administradores
// quedan en DRAFT salvo pedido explícito de DRAFT o PENDING_APPROVAL.
func (s *CandidateService) CreateCandidate(ctx context.Context, authCtx *kernel.AuthContext, req candidate.CreateCandidateRequest) (*candidate.Candidate, error) {
	if !authCtx.Can(rbac.CapProposeCandidates) {
		return nil, iam.ErrForbidden().WithDetail("required_capability", string(rbac.CapProposeCandidates))
	}

	if verr := validx.Struct(req); verr != nil {
		return nil, verr
	}

	var requested candidate.Status
	if req.Status != "" {
		parsed, ok := candidate.ParseStatus(req.Status)
		if !ok {
			return nil, candidate.ErrInvalidStatus().WithDetail("status", req.Status)
		}
		requested = parsed
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Headline:       req.Headline,
		Skills:         req.Skills,
		Roles:          req.Roles,
		Industries:     req.Industries,
		Certifications: req.Certifications,
		Languages:      req.Languages,
		Notes:          req.Notes,
		Status:         candidate.InitialStatus(requested, authCtx.IsAdmin()),
		CreatorID:      authCtx.ActorID,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.candidateRepo.Save(ctx, *newCandidate); err != nil {
		return nil, err
	}

	metrics.TransitionsApplied.WithLabelValues("candidate", string(newCandidate.Status)).Inc()
	return newCandidate, nil
}

// GetCandidate obtiene un candidato por ID
func (s *CandidateService) GetCandidate(ctx context.Context, authCtx *kernel.AuthContext, id string) (*candidate.Candidate, error) {
	c, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Sin capability de ver todo, solo registros propios o activos
	if !authCtx.Can(rbac.CapViewAllCandidates) && !c.IsCreator(authCtx.ActorID) && c.Status != candidate.StatusActive {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}

	return c, nil
}

// ListCandidates lista los candidatos visibles para el actor
func (s *CandidateService) ListCandidates(ctx context.Context, authCtx *kernel.AuthContext) (*candidate.CandidateListResponse, error) {
	var (
		candidates []*candidate.Candidate
		err        error
	)

	if authCtx.Can(rbac.CapViewAllCandidates) {
		candidates, err = s.candidateRepo.FindAll(ctx)
	} else {
		candidates, err = s.candidateRepo.FindVisibleTo(ctx, authCtx.ActorID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]candidate.Candidate, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, *c)
	}

	return &candidate.CandidateListResponse{
		Candidates: items,
		Total:      len(items),
	}, nil
}

// UpdateCandidate aplica una actualización bajo las reglas de transición.
// Orden de las reglas:
//  1. el registro debe existir;
//  2. el llamador debe ser administrador, gatekeeper o el creador;
//  3. la transición pedida debe ser legal para la clase del llamador.
func (s *CandidateService) UpdateCandidate(ctx context.Context, authCtx *kernel.AuthContext, id string, req candidate.UpdateCandidateRequest) (*candidate.Candidate, error) {
	if verr := validx.Struct(req); verr != nil {
		return nil, verr
	}

	c, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	class, ok := workflow.Classify(authCtx, c.CreatorID)
	if !ok {
		return nil, candidate.ErrNotRecordOwner().WithDetail("candidate_id", id)
	}

	requested := c.Status
	if req.Status != nil {
		parsed, ok := candidate.ParseStatus(*req.Status)
		if !ok {
			return nil, candidate.ErrInvalidStatus().WithDetail("status", *req.Status)
		}
		requested = parsed
	}

	if terr := candidate.DecideTransition(c.Status, requested, class); terr != nil {
		metrics.TransitionsDenied.WithLabelValues("candidate").Inc()
		return nil, terr
	}

	applyFieldChanges(c, req)
	c.Status = requested
	if req.Version != nil {
		c.Version = *req.Version
	}
	c.UpdatedAt = time.Now()

	if err := s.candidateRepo.Save(ctx, *c); err != nil {
		return nil, err
	}

	c.Version++
	metrics.TransitionsApplied.WithLabelValues("candidate", string(c.Status)).Inc()
	return c, nil
}

// DeleteCandidate elimina un candidato. Restringido a administradores,
// sin importar quién lo creó.
func (s *CandidateService) DeleteCandidate(ctx context.Context, authCtx *kernel.AuthContext, id string) error {
	if !authCtx.IsAdmin() {
		return candidate.ErrDeleteAdminOnly().WithDetail("candidate_id", id)
	}

	if _, err := s.candidateRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.candidateRepo.Delete(ctx, id)
}

func applyFieldChanges(c *candidate.Candidate, req candidate.UpdateCandidateRequest) {
	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Headline != nil {
		c.Headline = *req.Headline
	}
	if req.Skills != nil {
		c.Skills = req.Skills
	}
	if req.Roles != nil {
		c.Roles = req.Roles
	}
	if req.Industries != nil {
		c.Industries = req.Industries
	}
	if req.Certifications != nil {
		c.Certifications = req.Certifications
	}
	if req.Languages != nil {
		c.Languages = req.Languages
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
}
