package validx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,min=2"`
	Headline string `validate:"max=10"`
}

func TestStructPassesValidInput(t *testing.T) {
	err := Struct(sampleRequest{Email: "ana@example.com", Name: "Ana"})
	assert.Nil(t, err)
}

func TestStructReportsFieldErrors(t *testing.T) {
	err := Struct(sampleRequest{Email: "nope", Name: "A", Headline: "way too long for the tag"})
	require.NotNil(t, err)
	assert.Equal(t, CodeValidationFailed, err.Code)

	fields, ok := err.Details["fields"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", fields["Email"])
	assert.Equal(t, "must be at least 2", fields["Name"])
	assert.Equal(t, "must be at most 10", fields["Headline"])
}

func TestStructRequiredField(t *testing.T) {
	err := Struct(sampleRequest{Name: "Ana"})
	require.NotNil(t, err)

	fields := err.Details["fields"].(map[string]string)
	assert.Equal(t, "is required", fields["Email"])
}
