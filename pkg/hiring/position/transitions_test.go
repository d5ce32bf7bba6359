package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remora-hq/staffdesk/pkg/hiring/workflow"
)

func TestDecideTransitionCreator(t *testing.T) {
	assert.Nil(t, DecideTransition(StatusDraft, StatusDraft, workflow.ClassCreator, false))
	assert.Nil(t, DecideTransition(StatusDraft, StatusPendingApproval, workflow.ClassCreator, false))

	// El creador no activa ni edita fuera del borrador
	err := DecideTransition(StatusDraft, StatusActive, workflow.ClassCreator, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidTransition, err.Code)

	err = DecideTransition(StatusPendingApproval, StatusDraft, workflow.ClassCreator, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeEditLocked, err.Code)
}

func TestDecideTransitionGatekeeperApproves(t *testing.T) {
	// El gatekeeper aprueba pendientes: activa o dispara la campaña
	assert.Nil(t, DecideTransition(StatusPendingApproval, StatusActive, workflow.ClassGatekeeper, true))
	assert.Nil(t, DecideTransition(StatusPendingApproval, StatusCampaignSent, workflow.ClassGatekeeper, true))
	assert.Nil(t, DecideTransition(StatusPendingApproval, StatusDraft, workflow.ClassGatekeeper, true))

	// Pero desde el borrador no salta etapas
	err := DecideTransition(StatusDraft, StatusActive, workflow.ClassGatekeeper, true)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidTransition, err.Code)

	// Y no edita posiciones ya activas
	err = DecideTransition(StatusActive, StatusCampaignSent, workflow.ClassGatekeeper, true)
	require.NotNil(t, err)
	assert.Equal(t, CodeEditLocked, err.Code)
}

func TestDecideTransitionFinalizedLock(t *testing.T) {
	// Un registro finalizado solo lo toca el rol administrativo máximo
	for _, from := range []Status{StatusCampaignSent, StatusArchived} {
		for _, class := range []workflow.RoleClass{workflow.ClassCreator, workflow.ClassGatekeeper, workflow.ClassAdmin} {
			err := DecideTransition(from, StatusDraft, class, true)
			require.NotNil(t, err, "class %s from %s", class, from)
			assert.Equal(t, CodeFinalized, err.Code, "class %s from %s", class, from)
		}

		assert.Nil(t, DecideTransition(from, StatusDraft, workflow.ClassSuperAdmin, false), "from %s", from)
	}
}

func TestDecideTransitionCampaignNeedsApprover(t *testing.T) {
	// Un admin sin marca de gatekeeper no finaliza posiciones
	err := DecideTransition(StatusActive, StatusCampaignSent, workflow.ClassAdmin, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeApproverOnly, err.Code)

	err = DecideTransition(StatusActive, StatusArchived, workflow.ClassAdmin, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeApproverOnly, err.Code)

	// Con la marca sí
	assert.Nil(t, DecideTransition(StatusActive, StatusCampaignSent, workflow.ClassAdmin, true))
	assert.Nil(t, DecideTransition(StatusActive, StatusArchived, workflow.ClassAdmin, true))

	// El rol administrativo máximo no necesita la marca
	assert.Nil(t, DecideTransition(StatusActive, StatusCampaignSent, workflow.ClassSuperAdmin, false))
}

func TestDecideTransitionAdminNonFinalTargets(t *testing.T) {
	for _, from := range []Status{StatusDraft, StatusPendingApproval, StatusActive} {
		for _, to := range []Status{StatusDraft, StatusPendingApproval, StatusActive} {
			assert.Nil(t, DecideTransition(from, to, workflow.ClassAdmin, false), "from %s to %s", from, to)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusActive, InitialStatus("", true, false))
	assert.Equal(t, StatusPendingApproval, InitialStatus(StatusPendingApproval, true, false))

	// Un administrador sin autoridad de aprobador no publica finalizado
	assert.Equal(t, StatusActive, InitialStatus(StatusCampaignSent, true, false))
	assert.Equal(t, StatusActive, InitialStatus(StatusArchived, true, false))

	// Con autoridad de aprobador el estado finalizado pedido se respeta
	assert.Equal(t, StatusCampaignSent, InitialStatus(StatusCampaignSent, true, true))
	assert.Equal(t, StatusArchived, InitialStatus(StatusArchived, true, true))

	assert.Equal(t, StatusDraft, InitialStatus("", false, false))
	assert.Equal(t, StatusDraft, InitialStatus(StatusActive, false, false))
	assert.Equal(t, StatusDraft, InitialStatus(StatusCampaignSent, false, true))
	assert.Equal(t, StatusPendingApproval, InitialStatus(StatusPendingApproval, false, false))
}

func TestGenerateReference(t *testing.T) {
	now := mustParseTime(t, "2026-09-01T10:00:00Z")

	ref := GenerateReference(now)
	assert.Regexp(t, `^POS-20260901-\d{3}$`, ref)
}
