package actorsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/actor"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
	"github.com/remora-hq/staffdesk/pkg/validx"
)

// ActorService proporciona operaciones de negocio para actores
type ActorService struct {
	actorRepo   actor.ActorRepository
	passwordSvc actor.PasswordService
}

// NewActorService crea una nueva instancia del servicio de actores
func NewActorService(
	actorRepo actor.ActorRepository,
	passwordSvc actor.PasswordService,
) *ActorService {
	return &ActorService{
		actorRepo:   actorRepo,
		passwordSvc: passwordSvc,
	}
}

// CreateActor crea un nuevo actor. Solo el rol administrativo máximo
// administra usuarios.
func (s *ActorService) CreateActor(ctx context.Context, authCtx *kernel.AuthContext, req actor.CreateActorRequest) (*actor.Actor, error) {
	if !authCtx.Can(rbac.CapManageUsers) {
		return nil, iam.ErrForbidden().WithDetail("required_capability", string(rbac.CapManageUsers))
	}

	if verr := validx.Struct(req); verr != nil {
		return nil, verr
	}

	role, ok := rbac.ParseRole(req.Role)
	if !ok {
		return nil, actor.ErrInvalidRole().WithDetail("role", req.Role)
	}

	exists, err := s.actorRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check email existence", errx.TypeInternal)
	}
	if exists {
		return nil, actor.ErrActorAlreadyExists().WithDetail("email", req.Email)
	}

	hash, err := s.passwordSvc.HashPassword(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	newActor := &actor.Actor{
		ID:           kernel.NewActorID(uuid.NewString()),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
		IsGatekeeper: req.IsGatekeeper,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.actorRepo.Save(ctx, *newActor); err != nil {
		return nil, err
	}

	return newActor, nil
}

// GetActorByID obtiene un actor por ID
func (s *ActorService) GetActorByID(ctx context.Context, id kernel.ActorID) (*actor.Actor, error) {
	a, err := s.actorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActors obtiene todos los actores
func (s *ActorService) ListActors(ctx context.Context, authCtx *kernel.AuthContext) (*actor.ActorListResponse, error) {
	if !authCtx.Can(rbac.CapManageUsers) {
		return nil, iam.ErrForbidden().WithDetail("required_capability", string(rbac.CapManageUsers))
	}

	actors, err := s.actorRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]actor.ActorDTO, 0, len(actors))
	for _, a := range actors {
		dtos = append(dtos, a.ToDTO())
	}

	return &actor.ActorListResponse{
		Actors: dtos,
		Total:  len(dtos),
	}, nil
}

// UpdateProfile actualiza el perfil del propio actor
func (s *ActorService) UpdateProfile(ctx context.Context, authCtx *kernel.AuthContext, req actor.UpdateProfileRequest) (*actor.Actor, error) {
	if verr := validx.Struct(req); verr != nil {
		return nil, verr
	}

	a, err := s.actorRepo.FindByID(ctx, authCtx.ActorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.UpdateProfile(*req.Name)
	}

	if err := s.actorRepo.Save(ctx, *a); err != nil {
		return nil, err
	}

	return a, nil
}

// ChangeRole cambia el rol o el flag de gatekeeper de un actor.
// Solo SUPER_ADMIN (capability manage users) puede hacerlo.
func (s *ActorService) ChangeRole(ctx context.Context, authCtx *kernel.AuthContext, id kernel.ActorID, req actor.ChangeRoleRequest) (*actor.Actor, error) {
	if !authCtx.Can(rbac.CapManageUsers) {
		return nil, iam.ErrForbidden().WithDetail("required_capability", string(rbac.CapManageUsers))
	}

	a, err := s.actorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role, ok := rbac.ParseRole(*req.Role)
		if !ok {
			return nil, actor.ErrInvalidRole().WithDetail("role", *req.Role)
		}
		if err := a.ChangeRole(role); err != nil {
			return nil, err
		}
	}

	if req.IsGatekeeper != nil {
		a.SetGatekeeper(*req.IsGatekeeper)
	}

	if err := s.actorRepo.Save(ctx, *a); err != nil {
		return nil, err
	}

	return a, nil
}

// DeactivateActor desactiva la cuenta de un actor
func (s *ActorService) DeactivateActor(ctx context.Context, authCtx *kernel.AuthContext, id kernel.ActorID) error {
	if !authCtx.Can(rbac.CapManageUsers) {
		return iam.ErrForbidden().WithDetail("required_capability", string(rbac.CapManageUsers))
	}

	a, err := s.actorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	a.Deactivate()
	return s.actorRepo.Save(ctx, *a)
}

// Authenticate verifica las credenciales y retorna el actor
func (s *ActorService) Authenticate(ctx context.Context, email, password string) (*actor.Actor, error) {
	a, err := s.actorRepo.FindByEmail(ctx, email)
	if err != nil {
		// No revelar si el email existe
		return nil, iam.ErrInvalidCredentials()
	}

	if !a.IsActive() {
		return nil, actor.ErrActorInactive()
	}

	if !s.passwordSvc.VerifyPassword(a.PasswordHash, password) {
		return nil, iam.ErrInvalidCredentials()
	}

	a.UpdateLastLogin()
	if err := s.actorRepo.Save(ctx, *a); err != nil {
		return nil, errx.Wrap(err, "failed to record login", errx.TypeInternal)
	}

	return a, nil
}
