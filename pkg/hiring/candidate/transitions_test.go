package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remora-hq/staffdesk/pkg/hiring/workflow"
)

func TestDecideTransitionCreator(t *testing.T) {
	// Dentro del borrador el creador itera libremente
	assert.Nil(t, DecideTransition(StatusDraft, StatusDraft, workflow.ClassCreator))
	assert.Nil(t, DecideTransition(StatusDraft, StatusPendingApproval, workflow.ClassCreator))

	// Pero no activa ni toca registros que salieron del borrador
	err := DecideTransition(StatusDraft, StatusActive, workflow.ClassCreator)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidTransition, err.Code)

	err = DecideTransition(StatusPendingApproval, StatusDraft, workflow.ClassCreator)
	require.NotNil(t, err)
	assert.Equal(t, CodeEditLocked, err.Code)

	err = DecideTransition(StatusActive, StatusDraft, workflow.ClassCreator)
	require.NotNil(t, err)
	assert.Equal(t, CodeEditLocked, err.Code)
}

func TestDecideTransitionGatekeeper(t *testing.T) {
	// El gatekeeper activa desde borrador o pendiente
	assert.Nil(t, DecideTransition(StatusPendingApproval, StatusActive, workflow.ClassGatekeeper))
	assert.Nil(t, DecideTransition(StatusDraft, StatusActive, workflow.ClassGatekeeper))
	assert.Nil(t, DecideTransition(StatusPendingApproval, StatusDraft, workflow.ClassGatekeeper))

	// Pero no edita registros activos ni inactivos
	err := DecideTransition(StatusActive, StatusInactive, workflow.ClassGatekeeper)
	require.NotNil(t, err)
	assert.Equal(t, CodeInactiveAdminOnly, err.Code)

	err = DecideTransition(StatusActive, StatusDraft, workflow.ClassGatekeeper)
	require.NotNil(t, err)
	assert.Equal(t, CodeEditLocked, err.Code)
}

func TestDecideTransitionInactiveIsAdminOnly(t *testing.T) {
	// La regla de desactivación gana sobre las demás: el mensaje es el
	// específico aunque la clase tampoco tenga fila para el estado actual
	for _, class := range []workflow.RoleClass{workflow.ClassCreator, workflow.ClassGatekeeper} {
		for _, from := range AllStatuses {
			err := DecideTransition(from, StatusInactive, class)
			require.NotNil(t, err, "class %s from %s", class, from)
			assert.Equal(t, CodeInactiveAdminOnly, err.Code, "class %s from %s", class, from)
		}
	}

	assert.Nil(t, DecideTransition(StatusActive, StatusInactive, workflow.ClassAdmin))
	assert.Nil(t, DecideTransition(StatusActive, StatusInactive, workflow.ClassSuperAdmin))
}

func TestDecideTransitionAdminIsUnrestricted(t *testing.T) {
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			assert.Nil(t, DecideTransition(from, to, workflow.ClassAdmin), "from %s to %s", from, to)
			assert.Nil(t, DecideTransition(from, to, workflow.ClassSuperAdmin), "from %s to %s", from, to)
		}
	}
}

func TestDecideTransitionUnknownClass(t *testing.T) {
	err := DecideTransition(StatusDraft, StatusDraft, workflow.RoleClass("VISITOR"))
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidTransition, err.Code)
}

func TestInitialStatus(t *testing.T) {
	// Los administradores almacenan lo pedido, ACTIVE por defecto
	assert.Equal(t, StatusActive, InitialStatus("", true))
	assert.Equal(t, StatusInactive, InitialStatus(StatusInactive, true))
	assert.Equal(t, StatusDraft, InitialStatus(StatusDraft, true))

	// El resto queda en DRAFT salvo pedido explícito de DRAFT o PENDING
	assert.Equal(t, StatusDraft, InitialStatus("", false))
	assert.Equal(t, StatusDraft, InitialStatus(StatusActive, false))
	assert.Equal(t, StatusDraft, InitialStatus(StatusInactive, false))
	assert.Equal(t, StatusPendingApproval, InitialStatus(StatusPendingApproval, false))
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("ACTIVE")
	require.True(t, ok)
	assert.Equal(t, StatusActive, st)

	_, ok = ParseStatus("active")
	assert.False(t, ok)

	_, ok = ParseStatus("PUBLISHED")
	assert.False(t, ok)
}
