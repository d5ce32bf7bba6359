// Package workflow clasifica al llamador de una operación de workflow.
// Las tablas de transición de candidatos y posiciones se indexan por
// esta clase en lugar de ramificar sobre rol y ownership en línea.
package workflow

import (
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// RoleClass es la clase efectiva del llamador frente a un registro
// concreto: el rol base más la relación de ownership y el flag de
// gatekeeper colapsan en una de estas cuatro clases.
type RoleClass string

const (
	// ClassCreator: creador del registro sin rol administrativo ni gatekeeper
	ClassCreator RoleClass = "CREATOR"
	// ClassGatekeeper: autoridad de aprobación sin rol administrativo
	ClassGatekeeper RoleClass = "GATEKEEPER"
	// ClassAdmin: rol ADMIN
	ClassAdmin RoleClass = "ADMIN"
	// ClassSuperAdmin: rol administrativo máximo
	ClassSuperAdmin RoleClass = "SUPER_ADMIN"
)

// Classify determina la clase del llamador frente al creador del registro.
// Retorna false si el llamador no tiene ninguna relación válida con el
// registro (ni admin, ni gatekeeper, ni creador).
func Classify(authCtx *kernel.AuthContext, creatorID kernel.ActorID) (RoleClass, bool) {
	switch {
	case authCtx.IsSuperAdmin():
		return ClassSuperAdmin, true
	case authCtx.IsAdmin():
		return ClassAdmin, true
	case authCtx.IsGatekeeper:
		return ClassGatekeeper, true
	case authCtx.ActorID == creatorID:
		return ClassCreator, true
	default:
		return "", false
	}
}

// IsAdministrative indica si la clase corresponde a un rol administrativo
func (rc RoleClass) IsAdministrative() bool {
	return rc == ClassAdmin || rc == ClassSuperAdmin
}
