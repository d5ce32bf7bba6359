package position

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remora-hq/staffdesk/pkg/kernel"
)

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestStatusIsFinal(t *testing.T) {
	assert.True(t, StatusCampaignSent.IsFinal())
	assert.True(t, StatusArchived.IsFinal())
	assert.False(t, StatusDraft.IsFinal())
	assert.False(t, StatusPendingApproval.IsFinal())
	assert.False(t, StatusActive.IsFinal())
}

func TestCanBeDeletedByCreator(t *testing.T) {
	p := &Position{CreatorID: kernel.NewActorID("actor-1")}

	for _, tt := range []struct {
		status Status
		want   bool
	}{
		{StatusDraft, true},
		{StatusPendingApproval, true},
		{StatusActive, false},
		{StatusCampaignSent, false},
		{StatusArchived, false},
	} {
		p.Status = tt.status
		assert.Equal(t, tt.want, p.CanBeDeletedByCreator(), "status %s", tt.status)
	}
}
