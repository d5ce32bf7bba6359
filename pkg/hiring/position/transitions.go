package position

import (
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/hiring/workflow"
)

// ============================================================================
// Transition Table
// ============================================================================

// allowedTransitions es la tabla explícita de legalidad de transiciones:
// clase del llamador -> estado actual -> estados destino permitidos.
// Los estados finalizados (CAMPAIGN_SENT, ARCHIVED) solo aparecen como
// origen en la fila del rol administrativo máximo.
var allowedTransitions = map[workflow.RoleClass]map[Status][]Status{
	// El creador sin privilegios solo edita borradores y solo puede
	// dejarlos en borrador o enviarlos a aprobación.
	workflow.ClassCreator: {
		StatusDraft: {StatusDraft, StatusPendingApproval},
	},
	// El gatekeeper además aprueba posiciones pendientes: las activa o
	// dispara directamente la campaña.
	workflow.ClassGatekeeper: {
		StatusDraft:           {StatusDraft, StatusPendingApproval},
		StatusPendingApproval: {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent},
	},
	// Los administradores editan cualquier estado no finalizado. Los
	// destinos finalizados pasan además por el chequeo de aprobador.
	workflow.ClassAdmin: {
		StatusDraft:           {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
		StatusPendingApproval: {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
		StatusActive:          {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
	},
	workflow.ClassSuperAdmin: {
		StatusDraft:           {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
		StatusPendingApproval: {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
		StatusActive:          {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
		StatusCampaignSent:    {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
		StatusArchived:        {StatusDraft, StatusPendingApproval, StatusActive, StatusCampaignSent, StatusArchived},
	},
}

// DecideTransition evalúa la legalidad de una transición para la clase
// dada. Retorna nil si la transición es legal, o el error de negocio con
// el mensaje de la regla que la rechaza. El orden de las reglas importa:
//
//  1. Un registro finalizado solo lo edita el rol administrativo máximo.
//  2. Una clase sin fila para el estado actual no puede editar el
//     registro en ese estado.
//  3. Una fila sin el estado destino rechaza la transición.
//  4. Los destinos finalizados exigen la marca de gatekeeper o el rol
//     administrativo máximo, sin importar la fila.
func DecideTransition(from, to Status, class workflow.RoleClass, isGatekeeper bool) *errx.Error {
	if from.IsFinal() && class != workflow.ClassSuperAdmin {
		return ErrFinalized().
			WithDetail("current_status", string(from))
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

	allowed := false
	for _, t := range targets {
		if t == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidTransition().
			WithDetail("current_status", string(from)).
			WithDetail("requested_status", string(to))
	}

	if to.IsFinal() && !isGatekeeper && class != workflow.ClassSuperAdmin {
		return ErrApproverOnly().
			WithDetail("requested_status", string(to))
	}

	return nil
}

// InitialStatus determina el estado inicial de una posición nueva. Los
// administradores almacenan el estado pedido (ACTIVE por defecto); el
// resto queda en DRAFT salvo que pida explícitamente DRAFT o
// PENDING_APPROVAL. Cualquier otro pedido se degrada en silencio.
// Publicar directamente en un estado finalizado exige la misma autoridad
// de aprobación que la transición equivalente: canFinalize refleja la
// marca de gatekeeper o el rol administrativo máximo.
func InitialStatus(requested Status, isAdmin, canFinalize bool) Status {
	if isAdmin {
		switch requested {
		case "":
			return StatusActive
		case StatusCampaignSent, StatusArchived:
			if canFinalize {
				return requested
			}
			return StatusActive
		default:
			return requested
		}
	}

	switch requested {
	case StatusDraft, StatusPendingApproval:
		return requested
	default:
		return StatusDraft
	}
}
