package positionsrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/hiring/position"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
	"github.com/remora-hq/staffdesk/pkg/notify"
	"github.com/remora-hq/staffdesk/pkg/ptrx"
)

// ============================================================================
// In-Memory Fakes
// ============================================================================

type fakePositionRepo struct {
	records map[string]position.Position
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{records: make(map[string]position.Position)}
}

func (r *fakePositionRepo) FindByID(_ context.Context, id string) (*position.Position, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, position.ErrPositionNotFound().WithDetail("position_id", id)
	}
	return &p, nil
}

func (r *fakePositionRepo) FindAll(_ context.Context) ([]*position.Position, error) {
	out := make([]*position.Position, 0, len(r.records))
	for id := range r.records {
		p := r.records[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *fakePositionRepo) FindVisibleTo(_ context.Context, actorID kernel.ActorID) ([]*position.Position, error) {
	out := make([]*position.Position, 0, len(r.records))
	for id := range r.records {
		p := r.records[id]
		if p.CreatorID == actorID || p.Status == position.StatusActive || p.Status == position.StatusCampaignSent {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *fakePositionRepo) Save(_ context.Context, p position.Position) error {
	if existing, ok := r.records[p.ID]; ok {
		if existing.Version != p.Version {
			return position.ErrVersionConflict().WithDetail("position_id", p.ID)
		}
		p.Version++
	}
	r.records[p.ID] = p
	return nil
}

func (r *fakePositionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return position.ErrPositionNotFound().WithDetail("position_id", id)
	}
	delete(r.records, id)
	return nil
}

func (r *fakePositionRepo) ArchiveStaleCampaigns(_ context.Context, cutoff time.Time) (int, error) {
	archived := 0
	for id, p := range r.records {
		if p.Status == position.StatusCampaignSent && p.UpdatedAt.Before(cutoff) {
			p.Status = position.StatusArchived
			p.Version++
			p.UpdatedAt = time.Now()
			r.records[id] = p
			archived++
		}
	}
	return archived, nil
}

func (r *fakePositionRepo) CountByStatus(_ context.Context) (map[position.Status]int, error) {
	counts := make(map[position.Status]int)
	for _, p := range r.records {
		counts[p.Status]++
	}
	return counts, nil
}

type fakeNotifier struct {
	events []notify.CampaignEvent
}

func (n *fakeNotifier) CampaignSent(_ context.Context, event notify.CampaignEvent) error {
	n.events = append(n.events, event)
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func authCtx(id string, role rbac.Role, gatekeeper bool) *kernel.AuthContext {
	return &kernel.AuthContext{
		ActorID:      kernel.NewActorID(id),
		Email:        id + "@example.com",
		Name:         id,
		Role:         role,
		IsGatekeeper: gatekeeper,
	}
}

func seedPosition(repo *fakePositionRepo, id, creator string, status position.Status) {
	repo.records[id] = position.Position{
		ID:        id,
		Reference: "POS-20260901-042",
		Title:     "Backend Engineer",
		Status:    status,
		CreatorID: kernel.NewActorID(creator),
		Version:   1,
		UpdatedAt: time.Now(),
	}
}

func newService() (*PositionService, *fakePositionRepo, *fakeNotifier) {
	repo := newFakePositionRepo()
	notifier := &fakeNotifier{}
	return NewPositionService(repo, notifier), repo, notifier
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	e, ok := errx.AsError(err)
	require.True(t, ok, "expected *errx.Error, got %T", err)
	assert.Equal(t, code, e.Code)
}

// ============================================================================
// Create
// ============================================================================

func TestCreatePositionGeneratesReference(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.CreatePosition(context.Background(), authCtx("actor-1", rbac.RoleUser, false),
		position.CreatePositionRequest{Title: "Backend Engineer"})
	require.NoError(t, err)
	assert.Regexp(t, `^POS-\d{8}-\d{3}$`, created.Reference)
	assert.Equal(t, position.StatusDraft, created.Status)
	assert.Equal(t, 1, created.Version)
}

func TestCreatePositionKeepsExplicitReference(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.CreatePosition(context.Background(), authCtx("actor-1", rbac.RoleAdmin, false),
		position.CreatePositionRequest{Title: "Backend Engineer", Reference: "POS-20260815-007"})
	require.NoError(t, err)
	assert.Equal(t, "POS-20260815-007", created.Reference)
	assert.Equal(t, position.StatusActive, created.Status)
}

func TestCreatePositionSuperAdminStartsCampaign(t *testing.T) {
	svc, _, notifier := newService()

	created, err := svc.CreatePosition(context.Background(), authCtx("actor-1", rbac.RoleSuperAdmin, false),
		position.CreatePositionRequest{Title: "Backend Engineer", Status: string(position.StatusCampaignSent)})
	require.NoError(t, err)
	assert.Equal(t, position.StatusCampaignSent, created.Status)

	// La creación directa en CAMPAIGN_SENT emite exactamente una señal
	require.Len(t, notifier.events, 1)
	assert.Equal(t, created.ID, notifier.events[0].PositionID)
}

func TestCreatePositionPlainAdminCannotStartFinalized(t *testing.T) {
	svc, _, notifier := newService()

	// Un ADMIN sin marca de gatekeeper se degrada a ACTIVE
	created, err := svc.CreatePosition(context.Background(), authCtx("actor-1", rbac.RoleAdmin, false),
		position.CreatePositionRequest{Title: "Backend Engineer", Status: string(position.StatusCampaignSent)})
	require.NoError(t, err)
	assert.Equal(t, position.StatusActive, created.Status)
	assert.Empty(t, notifier.events)
}

func TestCreatePositionGatekeeperAdminStartsArchived(t *testing.T) {
	svc, _, notifier := newService()

	created, err := svc.CreatePosition(context.Background(), authCtx("actor-1", rbac.RoleAdmin, true),
		position.CreatePositionRequest{Title: "Backend Engineer", Status: string(position.StatusArchived)})
	require.NoError(t, err)
	assert.Equal(t, position.StatusArchived, created.Status)

	// Solo CAMPAIGN_SENT dispara la señal de campaña
	assert.Empty(t, notifier.events)
}

// ============================================================================
// Campaign Notification
// ============================================================================

func TestUpdatePositionFiresCampaignNotificationOnce(t *testing.T) {
	svc, repo, notifier := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusActive)

	gatekeeper := authCtx("actor-2", rbac.RoleRecruiter, true)
	updated, err := svc.UpdatePosition(context.Background(), gatekeeper, "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusCampaignSent))})

	// El gatekeeper no edita posiciones ya activas
	requireErrCode(t, err, position.CodeEditLocked)
	assert.Empty(t, notifier.events)

	// El super admin sí finaliza desde cualquier estado
	superAdmin := authCtx("actor-3", rbac.RoleSuperAdmin, false)
	updated, err = svc.UpdatePosition(context.Background(), superAdmin, "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusCampaignSent))})
	require.NoError(t, err)
	assert.Equal(t, position.StatusCampaignSent, updated.Status)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "pos-1", notifier.events[0].PositionID)
	assert.Equal(t, superAdmin.Email, notifier.events[0].SentBy)

	// Repetir CAMPAIGN_SENT -> CAMPAIGN_SENT no vuelve a notificar
	_, err = svc.UpdatePosition(context.Background(), superAdmin, "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusCampaignSent))})
	require.NoError(t, err)
	assert.Len(t, notifier.events, 1)
}

func TestUpdatePositionGatekeeperApprovalFiresNotification(t *testing.T) {
	svc, repo, notifier := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusPendingApproval)

	gatekeeper := authCtx("actor-2", rbac.RoleRecruiter, true)
	updated, err := svc.UpdatePosition(context.Background(), gatekeeper, "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusCampaignSent))})
	require.NoError(t, err)
	assert.Equal(t, position.StatusCampaignSent, updated.Status)
	assert.Len(t, notifier.events, 1)
}

func TestUpdatePositionPlainTransitionDoesNotNotify(t *testing.T) {
	svc, repo, notifier := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusPendingApproval)

	gatekeeper := authCtx("actor-2", rbac.RoleRecruiter, true)
	_, err := svc.UpdatePosition(context.Background(), gatekeeper, "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusActive))})
	require.NoError(t, err)
	assert.Empty(t, notifier.events)
}

// ============================================================================
// Finalized Locking
// ============================================================================

func TestUpdatePositionFinalizedLockedForAdmins(t *testing.T) {
	svc, repo, _ := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusCampaignSent)

	_, err := svc.UpdatePosition(context.Background(), authCtx("actor-2", rbac.RoleAdmin, false), "pos-1",
		position.UpdatePositionRequest{Title: ptrx.String("Senior Backend Engineer")})
	requireErrCode(t, err, position.CodeFinalized)

	// El rol administrativo máximo reabre registros finalizados
	updated, err := svc.UpdatePosition(context.Background(), authCtx("actor-3", rbac.RoleSuperAdmin, false), "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusActive))})
	require.NoError(t, err)
	assert.Equal(t, position.StatusActive, updated.Status)
}

func TestUpdatePositionAdminWithoutGatekeeperCannotFinalize(t *testing.T) {
	svc, repo, notifier := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusActive)

	_, err := svc.UpdatePosition(context.Background(), authCtx("actor-2", rbac.RoleAdmin, false), "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusCampaignSent))})
	requireErrCode(t, err, position.CodeApproverOnly)
	assert.Empty(t, notifier.events)

	// Con la marca de gatekeeper el mismo admin finaliza
	_, err = svc.UpdatePosition(context.Background(), authCtx("actor-2", rbac.RoleAdmin, true), "pos-1",
		position.UpdatePositionRequest{Status: ptrx.String(string(position.StatusCampaignSent))})
	require.NoError(t, err)
	assert.Len(t, notifier.events, 1)
}

// ============================================================================
// Delete
// ============================================================================

func TestDeletePositionCreatorRules(t *testing.T) {
	svc, repo, _ := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusDraft)
	seedPosition(repo, "pos-2", "actor-1", position.StatusActive)

	creator := authCtx("actor-1", rbac.RoleUser, false)

	// Borrador y pendiente se borran; activa ya no
	require.NoError(t, svc.DeletePosition(context.Background(), creator, "pos-1"))

	err := svc.DeletePosition(context.Background(), creator, "pos-2")
	requireErrCode(t, err, position.CodeDeleteLocked)

	// Un extraño ni siquiera pasa el chequeo de ownership
	err = svc.DeletePosition(context.Background(), authCtx("actor-9", rbac.RoleUser, false), "pos-2")
	requireErrCode(t, err, position.CodeNotRecordOwner)

	// Un administrador borra en cualquier estado
	require.NoError(t, svc.DeletePosition(context.Background(), authCtx("actor-2", rbac.RoleAdmin, false), "pos-2"))
	assert.Empty(t, repo.records)
}

// ============================================================================
// Visibility
// ============================================================================

func TestGetPositionVisibility(t *testing.T) {
	svc, repo, _ := newService()
	seedPosition(repo, "pos-1", "actor-1", position.StatusDraft)
	seedPosition(repo, "pos-2", "actor-1", position.StatusCampaignSent)

	stranger := authCtx("actor-2", rbac.RoleUser, false)

	_, err := svc.GetPosition(context.Background(), stranger, "pos-1")
	requireErrCode(t, err, position.CodePositionNotFound)

	// Las posiciones publicadas son visibles para cualquiera
	_, err = svc.GetPosition(context.Background(), stranger, "pos-2")
	assert.NoError(t, err)
}

// ============================================================================
// Archival Sweep
// ============================================================================

func TestArchiveStaleCampaignsIsIdempotent(t *testing.T) {
	svc, repo, _ := newService()

	stale := position.Position{
		ID:        "pos-old",
		Reference: "POS-20260801-001",
		Title:     "Backend Engineer",
		Status:    position.StatusCampaignSent,
		CreatorID: kernel.NewActorID("actor-1"),
		Version:   1,
		UpdatedAt: time.Now().Add(-20 * 24 * time.Hour),
	}
	fresh := stale
	fresh.ID = "pos-new"
	fresh.UpdatedAt = time.Now().Add(-2 * 24 * time.Hour)
	repo.records[stale.ID] = stale
	repo.records[fresh.ID] = fresh

	dwell := 14 * 24 * time.Hour

	archived, err := svc.ArchiveStaleCampaigns(context.Background(), dwell)
	require.NoError(t, err)
	assert.Equal(t, 1, archived)
	assert.Equal(t, position.StatusArchived, repo.records["pos-old"].Status)
	assert.Equal(t, position.StatusCampaignSent, repo.records["pos-new"].Status)

	// La segunda pasada no encuentra nada que archivar
	archived, err = svc.ArchiveStaleCampaigns(context.Background(), dwell)
	require.NoError(t, err)
	assert.Zero(t, archived)
}
