package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

func testJWTService(ttl time.Duration) *JWTService {
	return NewJWTServiceFromConfig(&config.JWTConfig{
		SecretKey:      "0123456789abcdef0123456789abcdef",
		AccessTokenTTL: ttl,
		Issuer:         "staffdesk",
		Audience:       []string{"staffdesk-api"},
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	original := &kernel.AuthContext{
		ActorID:      kernel.NewActorID("actor-1"),
		Email:        "ana@example.com",
		Name:         "Ana",
		Role:         rbac.RoleRecruiter,
		IsGatekeeper: true,
	}

	token, err := svc.GenerateAccessToken(original)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, original.ActorID, decoded.ActorID)
	assert.Equal(t, original.Email, decoded.Email)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Role, decoded.Role)
	assert.True(t, decoded.IsGatekeeper)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, err := svc.ValidateAccessToken("not-a-token")
	requireInvalidToken(t, err)
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := testJWTService(time.Hour)
	verifier := NewJWTServiceFromConfig(&config.JWTConfig{
		SecretKey:      "ffffffffffffffffffffffffffffffff",
		AccessTokenTTL: time.Hour,
		Issuer:         "staffdesk",
		Audience:       []string{"staffdesk-api"},
	})

	token, err := issuer.GenerateAccessToken(&kernel.AuthContext{
		ActorID: kernel.NewActorID("actor-1"),
		Role:    rbac.RoleUser,
	})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	requireInvalidToken(t, err)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, err := svc.GenerateAccessToken(&kernel.AuthContext{
		ActorID: kernel.NewActorID("actor-1"),
		Role:    rbac.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	requireInvalidToken(t, err)
}

func requireInvalidToken(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, iam.ErrInvalidToken())
}
