package authinfra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordServiceRoundTrip(t *testing.T) {
	svc := NewBcryptPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("hunter2-staffdesk")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, svc.VerifyPassword(hash, "hunter2-staffdesk"))
	assert.False(t, svc.VerifyPassword(hash, "wrong-password"))
}

func TestBcryptPasswordServiceClampsCost(t *testing.T) {
	for _, cost := range []int{0, -3, bcrypt.MaxCost + 1} {
		svc := NewBcryptPasswordService(cost)

		hash, err := svc.HashPassword("hunter2-staffdesk")
		require.NoError(t, err)

		actual, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, actual)
	}
}
