package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPrefixesCodes(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.Equal(t, "WIDGET_NOT_FOUND", code)

	err := reg.New(code)
	assert.Equal(t, "WIDGET_NOT_FOUND", err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "Widget not found", err.Message)
}

func TestRegistryUnregisteredCode(t *testing.T) {
	reg := NewRegistry("WIDGET")

	err := reg.New("WIDGET_MISSING")
	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestNewReturnsFreshInstances(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	a := reg.New(code).WithDetail("widget_id", "w-1")
	b := reg.New(code)

	assert.NotNil(t, a.Details)
	assert.Nil(t, b.Details, "details must not leak between instances")
}

func TestWithDetailAndMessage(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	err := reg.New(code).
		WithDetail("widget_id", "w-1").
		WithMessage("Widget w-1 not found")

	assert.Equal(t, "w-1", err.Details["widget_id"])
	assert.Equal(t, "Widget w-1 not found", err.Message)
	assert.Equal(t, "WIDGET_NOT_FOUND", err.Code)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "failed to load widget", TypeInternal)

	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorsIsComparesByCode(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	a := reg.New(code).WithDetail("widget_id", "w-1")
	b := reg.New(code)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, errors.New("other")))
}

func TestAsError(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	e, ok := AsError(reg.New(code))
	require.True(t, ok)
	assert.Equal(t, "WIDGET_NOT_FOUND", e.Code)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestStatusForType(t *testing.T) {
	tests := []struct {
		t    Type
		want int
	}{
		{TypeValidation, http.StatusBadRequest},
		{TypeAuthentication, http.StatusUnauthorized},
		{TypeAuthorization, http.StatusForbidden},
		{TypeNotFound, http.StatusNotFound},
		{TypeConflict, http.StatusConflict},
		{TypeRateLimit, http.StatusTooManyRequests},
		{TypeBusiness, http.StatusInternalServerError},
		{TypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForType(tt.t), string(tt.t))
	}
}
