package rbac

// ============================================================================
// ROLES - Closed enumeration of back-office roles
// ============================================================================

// Role es el rol base de un actor. Conjunto cerrado: agregar un rol exige
// completar su fila en la tabla de permisos.
type Role string

const (
	RoleUser       Role = "USER"
	RoleRecruiter  Role = "RECRUITER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// AllRoles lista todos los roles reconocidos
var AllRoles = []Role{
	RoleUser,
	RoleRecruiter,
	RoleAdmin,
	RoleSuperAdmin,
}

// RoleDescriptions provides human-readable descriptions
var RoleDescriptions = map[Role]string{
	RoleUser:       "Regular back-office user: proposes candidates and drafts positions",
	RoleRecruiter:  "Recruiter: full candidate pipeline plus position drafting",
	RoleAdmin:      "Administrator: manages all records except finalized positions",
	RoleSuperAdmin: "Top administrator: manages users and finalized positions",
}

// IsKnownRole verifica que el rol pertenezca al conjunto cerrado
func IsKnownRole(r Role) bool {
	_, ok := permissionTable[r]
	return ok
}

// ============================================================================
// CAPABILITIES - Closed enumeration of named permissions
// ============================================================================

// Capability es un permiso nominal consultado por el guard
type Capability string

const (
	CapViewPositions      Capability = "positions:view"
	CapPostPositions      Capability = "positions:post"
	CapViewAllPositions   Capability = "positions:view_all"
	CapValidatePositions  Capability = "positions:validate"
	CapApprovePositions   Capability = "positions:approve"
	CapProposeCandidates  Capability = "candidates:propose"
	CapViewAllCandidates  Capability = "candidates:view_all"
	CapValidateCandidates Capability = "candidates:validate"
	CapManageUsers        Capability = "users:manage"
)

// AllCapabilities lista todas las capabilities del sistema
var AllCapabilities = []Capability{
	CapViewPositions,
	CapPostPositions,
	CapViewAllPositions,
	CapValidatePositions,
	CapApprovePositions,
	CapProposeCandidates,
	CapViewAllCandidates,
	CapValidateCandidates,
	CapManageUsers,
}

// CapabilityDescriptions provides human-readable descriptions
var CapabilityDescriptions = map[Capability]string{
	CapViewPositions:      "View published positions",
	CapPostPositions:      "Create and edit positions",
	CapViewAllPositions:   "View positions in every status",
	CapValidatePositions:  "Validate position submissions",
	CapApprovePositions:   "Approve positions for campaign",
	CapProposeCandidates:  "Propose candidates for placement",
	CapViewAllCandidates:  "View candidates in every status",
	CapValidateCandidates: "Validate candidate submissions",
	CapManageUsers:        "Manage users, roles and gatekeeper flags",
}

// ============================================================================
// Permission Table
// ============================================================================

// permissionTable mapea cada rol a sus capabilities. Tabla estática y
// exhaustiva: cada rol del conjunto cerrado tiene su fila completa.
// Solo SUPER_ADMIN administra usuarios y roles.
var permissionTable = map[Role]map[Capability]bool{
	RoleUser: {
		CapViewPositions:      true,
		CapPostPositions:      true,
		CapViewAllPositions:   false,
		CapValidatePositions:  false,
		CapApprovePositions:   false,
		CapProposeCandidates:  true,
		CapViewAllCandidates:  false,
		CapValidateCandidates: false,
		CapManageUsers:        false,
	},
	RoleRecruiter: {
		CapViewPositions:      true,
		CapPostPositions:      true,
		CapViewAllPositions:   true,
		CapValidatePositions:  false,
		CapApprovePositions:   false,
		CapProposeCandidates:  true,
		CapViewAllCandidates:  true,
		CapValidateCandidates: false,
		CapManageUsers:        false,
	},
	RoleAdmin: {
		CapViewPositions:      true,
		CapPostPositions:      true,
		CapViewAllPositions:   true,
		CapValidatePositions:  true,
		CapApprovePositions:   true,
		CapProposeCandidates:  true,
		CapViewAllCandidates:  true,
		CapValidateCandidates: true,
		CapManageUsers:        false,
	},
	RoleSuperAdmin: {
		CapViewPositions:      true,
		CapPostPositions:      true,
		CapViewAllPositions:   true,
		CapValidatePositions:  true,
		CapApprovePositions:   true,
		CapProposeCandidates:  true,
		CapViewAllCandidates:  true,
		CapValidateCandidates: true,
		CapManageUsers:        true,
	},
}

// HasPermission consulta la tabla. Cualquier rol no reconocido retorna
// false: el default es cerrado.
func HasPermission(role Role, cap Capability) bool {
	caps, ok := permissionTable[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// CapabilitiesFor retorna las capabilities habilitadas para un rol
func CapabilitiesFor(role Role) []Capability {
	caps, ok := permissionTable[role]
	if !ok {
		return []Capability{}
	}
	enabled := make([]Capability, 0, len(caps))
	for _, c := range AllCapabilities {
		if caps[c] {
			enabled = append(enabled, c)
		}
	}
	return enabled
}

// ParseRole valida y convierte un string a Role
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if IsKnownRole(r) {
		return r, true
	}
	return "", false
}
