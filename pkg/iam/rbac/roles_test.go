package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionTableIsExhaustive(t *testing.T) {
	for _, role := range AllRoles {
		row, ok := permissionTable[role]
		require.True(t, ok, "role %s has no permission row", role)

		for _, cap := range AllCapabilities {
			_, ok := row[cap]
			assert.True(t, ok, "role %s has no entry for capability %s", role, cap)
		}
	}
}

func TestHasPermissionFailsClosed(t *testing.T) {
	assert.False(t, HasPermission(Role("INTERN"), CapViewPositions))
	assert.False(t, HasPermission("", CapViewPositions))
	assert.False(t, HasPermission(RoleUser, Capability("candidates:purge")))
}

func TestOnlySuperAdminManagesUsers(t *testing.T) {
	for _, role := range AllRoles {
		got := HasPermission(role, CapManageUsers)
		assert.Equal(t, role == RoleSuperAdmin, got, "role %s", role)
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleUser, CapPostPositions, true},
		{RoleUser, CapProposeCandidates, true},
		{RoleUser, CapViewAllCandidates, false},
		{RoleUser, CapApprovePositions, false},
		{RoleRecruiter, CapViewAllCandidates, true},
		{RoleRecruiter, CapViewAllPositions, true},
		{RoleRecruiter, CapValidateCandidates, false},
		{RoleAdmin, CapValidatePositions, true},
		{RoleAdmin, CapApprovePositions, true},
		{RoleAdmin, CapManageUsers, false},
		{RoleSuperAdmin, CapManageUsers, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPermission(tt.role, tt.cap), "%s / %s", tt.role, tt.cap)
	}
}

func TestCapabilitiesFor(t *testing.T) {
	caps := CapabilitiesFor(RoleUser)
	assert.ElementsMatch(t, []Capability{CapViewPositions, CapPostPositions, CapProposeCandidates}, caps)

	assert.Empty(t, CapabilitiesFor(Role("INTERN")))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("RECRUITER")
	require.True(t, ok)
	assert.Equal(t, RoleRecruiter, r)

	_, ok = ParseRole("recruiter")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}
