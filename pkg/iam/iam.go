package iam

import (
	"net/http"

	"github.com/remora-hq/staffdesk/pkg/errx"
)

// ============================================================================
// Error Registry - Errores transversales de IAM
// ============================================================================

var ErrRegistry = errx.NewRegistry("IAM")

var (
	CodeUnauthorized       = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthentication, http.StatusUnauthorized, "Authentication required")
	CodeForbidden          = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeTooManyRequests    = ErrRegistry.Register("TOO_MANY_REQUESTS", errx.TypeRateLimit, http.StatusTooManyRequests, "Rate limit exceeded, retry later")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
)

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrTooManyRequests() *errx.Error {
	return ErrRegistry.New(CodeTooManyRequests)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}
