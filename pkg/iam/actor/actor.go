package actor

import (
	"net/http"
	"time"

	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// ============================================================================
// Actor Entity
// ============================================================================

// Actor es la entidad que representa a un usuario autenticado del
// back-office. El rol y el flag de gatekeeper determinan juntos qué
// transiciones puede aplicar sobre candidatos y posiciones.
type Actor struct {
	ID           kernel.ActorID `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	Name         string         `db:"name" json:"name"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         rbac.Role      `db:"role" json:"role"`
	IsGatekeeper bool           `db:"is_gatekeeper" json:"is_gatekeeper"`
	Active       bool           `db:"active" json:"active"`
	LastLoginAt  *time.Time     `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive verifica si el actor puede iniciar sesión
func (a *Actor) IsActive() bool {
	return a.Active
}

// Can consulta la tabla de permisos para el rol del actor
func (a *Actor) Can(cap rbac.Capability) bool {
	return rbac.HasPermission(a.Role, cap)
}

// ChangeRole asigna un rol del conjunto cerrado
func (a *Actor) ChangeRole(role rbac.Role) error {
	if !rbac.IsKnownRole(role) {
		return ErrInvalidRole().WithDetail("role", string(role))
	}
	a.Role = role
	a.UpdatedAt = time.Now()
	return nil
}

// SetGatekeeper activa o desactiva la autoridad de aprobación
func (a *Actor) SetGatekeeper(enabled bool) {
	a.IsGatekeeper = enabled
	a.UpdatedAt = time.Now()
}

// Deactivate desactiva al actor; no destruye la cuenta
func (a *Actor) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
}

// UpdateLastLogin actualiza la fecha del último login
func (a *Actor) UpdateLastLogin() {
	now := time.Now()
	a.LastLoginAt = &now
	a.UpdatedAt = now
}

// UpdateProfile actualiza la información del perfil
func (a *Actor) UpdateProfile(name string) {
	if name != "" {
		a.Name = name
	}
	a.UpdatedAt = time.Now()
}

// AuthContext construye el contexto de autenticación del actor
func (a *Actor) AuthContext() *kernel.AuthContext {
	return &kernel.AuthContext{
		ActorID:      a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         a.Role,
		IsGatekeeper: a.IsGatekeeper,
	}
}

// ============================================================================
// Service DTOs
// ============================================================================

// CreateActorRequest representa la petición para crear un actor
type CreateActorRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required,min=2"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required"`
	IsGatekeeper bool   `json:"is_gatekeeper"`
}

// UpdateProfileRequest representa la petición para actualizar el perfil
type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2"`
}

// ChangeRoleRequest representa la petición administrativa de cambio de rol
type ChangeRoleRequest struct {
	Role         *string `json:"role,omitempty"`
	IsGatekeeper *bool   `json:"is_gatekeeper,omitempty"`
}

// SignInRequest representa la petición de inicio de sesión
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse es la respuesta del inicio de sesión
type SignInResponse struct {
	AccessToken string   `json:"access_token"`
	Actor       ActorDTO `json:"actor"`
}

// ActorDTO contiene la información pública de un actor
type ActorDTO struct {
	ID           kernel.ActorID    `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Role         rbac.Role         `json:"role"`
	IsGatekeeper bool              `json:"is_gatekeeper"`
	Active       bool              `json:"active"`
	Capabilities []rbac.Capability `json:"capabilities"`
}

// ToDTO convierte la entidad Actor a ActorDTO
func (a *Actor) ToDTO() ActorDTO {
	return ActorDTO{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         a.Role,
		IsGatekeeper: a.IsGatekeeper,
		Active:       a.Active,
		Capabilities: rbac.CapabilitiesFor(a.Role),
	}
}

// ActorListResponse para listas de actores
type ActorListResponse struct {
	Actors []ActorDTO `json:"actors"`
	Total  int        `json:"total"`
}

// ============================================================================
// Error Registry - Errores específicos de Actor
// ============================================================================

var ErrRegistry = errx.NewRegistry("ACTOR")

var (
	CodeActorNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Actor not found")
	CodeActorAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "An actor with this email already exists")
	CodeActorInactive      = ErrRegistry.Register("INACTIVE", errx.TypeBusiness, http.StatusForbidden, "Actor account is deactivated")
	CodeInvalidRole        = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Unknown role")
)

func ErrActorNotFound() *errx.Error {
	return ErrRegistry.New(CodeActorNotFound)
}

func ErrActorAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeActorAlreadyExists)
}

func ErrActorInactive() *errx.Error {
	return ErrRegistry.New(CodeActorInactive)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}
