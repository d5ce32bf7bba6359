package candidate

import (
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/hiring/workflow"
)

// ============================================================================
// Transition Table
// ============================================================================

// allowedTransitions es la tabla explícita de legalidad de transiciones:
// clase del llamador -> estado actual -> estados destino permitidos.
// Un estado actual ausente significa que la clase no puede editar el
// registro en ese estado.
var allowedTransitions = map[workflow.RoleClass]map[Status][]Status{
	// El creador sin privilegios solo edita borradores y solo puede
	// dejarlos en borrador o enviarlos a aprobación.
	workflow.ClassCreator: {
		StatusDraft: {StatusDraft, StatusPendingApproval},
	},
	// El gatekeeper también mueve registros pendientes hacia adelante,
	// pero nunca los desactiva.
	workflow.ClassGatekeeper: {
		StatusDraft:           {StatusDraft, StatusPendingApproval, StatusActive},
		StatusPendingApproval: {StatusDraft, StatusPendingApproval, StatusActive},
	},
	// Los administradores operan sobre cualquier estado.
	workflow.ClassAdmin: {
		StatusDraft:           {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
		StatusPendingApproval: {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
		StatusActive:          {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
		StatusInactive:        {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
	},
	workflow.ClassSuperAdmin: {
		StatusDraft:           {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
		StatusPendingApproval: {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
		StatusActive:          {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
		StatusInactive:        {StatusDraft, StatusPendingApproval, StatusActive, StatusInactive},
	},
}

// DecideTransition evalúa la legalidad de una transición para la clase
// dada. Retorna nil si la transición es legal, o el error de negocio con
// el mensaje de la regla que la rechaza. El orden de las reglas importa:
//
//  1. Nadie fuera de los roles administrativos desactiva candidatos.
//  2. Una clase sin fila para el estado actual no puede editar el
//     registro en ese estado.
//  3. Una fila sin el estado destino rechaza la transición.
func DecideTransition(from, to Status, class workflow.RoleClass) *errx.Error {
	if to == StatusInactive && !class.IsAdministrative() {
		return ErrInactiveAdminOnly().
			WithDetail("requested_status", string(to))
	}

	rows, ok := allowedTransitions[class]
	if !ok {
		return ErrInvalidTransition().
			WithDetail("caller_class", string(class))
	}

	targets, ok := rows[from]
	if !ok {
		return ErrEditLocked().
			WithDetail("current_status", string(from))
	}

	for _, t := range targets {
		if t == to {
			return nil
		}
	}

	return ErrInvalidTransition().
		WithDetail("current_status", string(from)).
		WithDetail("requested_status", string(to))
}

// InitialStatus determina el estado inicial de un candidato nuevo.
// Los administradores almacenan el estado pedido (ACTIVE por defecto);
// el resto queda en DRAFT salvo que pida explícitamente DRAFT o
// PENDING_APPROVAL. Cualquier otro pedido se degrada en silencio.
func InitialStatus(requested Status, isAdmin bool) Status {
	if isAdmin {
		if requested == "" {
			return StatusActive
		}
		return requested
	}

	switch requested {
	case StatusDraft, StatusPendingApproval:
		return requested
	default:
		return StatusDraft
	}
}
