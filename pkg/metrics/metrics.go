package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================================
// Workflow Metrics
// ============================================================================

var (
	// TransitionsApplied cuenta transiciones de estado aplicadas por entidad
	TransitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffdesk",
		Subsystem: "workflow",
		Name:      "transitions_applied_total",
		Help:      "Status transitions applied, by entity and target status.",
	}, []string{"entity", "to_status"})

	// TransitionsDenied cuenta transiciones rechazadas por las reglas
	TransitionsDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffdesk",
		Subsystem: "workflow",
		Name:      "transitions_denied_total",
		Help:      "Status transitions denied by workflow rules, by entity.",
	}, []string{"entity"})

	// GuardRejections cuenta rechazos del guard por motivo
	GuardRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffdesk",
		Subsystem: "guard",
		Name:      "rejections_total",
		Help:      "Guard rejections, by reason (unauthorized, forbidden, rate_limited).",
	}, []string{"reason"})

	// PositionsArchived cuenta posiciones archivadas por el barrido
	PositionsArchived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "staffdesk",
		Subsystem: "archival",
		Name:      "positions_archived_total",
		Help:      "Positions moved to ARCHIVED by the archival sweep.",
	})

	// CampaignNotifications cuenta señales de campaña emitidas
	CampaignNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "staffdesk",
		Subsystem: "notify",
		Name:      "campaign_notifications_total",
		Help:      "Campaign notifications fired on CAMPAIGN_SENT transitions.",
	})
)
