package kernel

import (
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
)

// ============================================================================
// Shared Identifiers
// ============================================================================

// ActorID identifica a un usuario del back-office
type ActorID string

// NewActorID crea un ActorID a partir de un string
func NewActorID(id string) ActorID {
	return ActorID(id)
}

// String retorna la representación en string
func (id ActorID) String() string {
	return string(id)
}

// IsEmpty indica si el ID está vacío
func (id ActorID) IsEmpty() bool {
	return id == ""
}

// ============================================================================
// Auth Context
// ============================================================================

// AuthContext es la identidad resuelta de la petición actual. Se construye
// en el middleware de autenticación y se pasa explícitamente a cada
// operación de workflow; nunca vive en estado global.
type AuthContext struct {
	ActorID      ActorID   `json:"actor_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         rbac.Role `json:"role"`
	IsGatekeeper bool      `json:"is_gatekeeper"`
}

// IsValid verifica que el contexto tenga una identidad utilizable
func (ac *AuthContext) IsValid() bool {
	return ac != nil && !ac.ActorID.IsEmpty() && rbac.IsKnownRole(ac.Role)
}

// Can verifica una capability contra la tabla de permisos
func (ac *AuthContext) Can(cap rbac.Capability) bool {
	return rbac.HasPermission(ac.Role, cap)
}

// IsAdmin indica si el rol es administrativo (ADMIN o SUPER_ADMIN)
func (ac *AuthContext) IsAdmin() bool {
	return ac.Role == rbac.RoleAdmin || ac.Role == rbac.RoleSuperAdmin
}

// IsSuperAdmin indica si el rol es el administrativo máximo
func (ac *AuthContext) IsSuperAdmin() bool {
	return ac.Role == rbac.RoleSuperAdmin
}

// CanApprove indica si el actor tiene autoridad de aprobación sobre
// registros en PENDING_APPROVAL (gatekeeper o administrador)
func (ac *AuthContext) CanApprove() bool {
	return ac.IsGatekeeper || ac.IsAdmin()
}
