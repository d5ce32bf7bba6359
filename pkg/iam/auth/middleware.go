package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
	"github.com/remora-hq/staffdesk/pkg/metrics"
)

// GuardMiddleware es el guard de acciones autenticadas: resuelve la
// identidad del actor, consulta el rate limiter y verifica capabilities.
// No tiene efectos secundarios más allá de incrementar el contador.
type GuardMiddleware struct {
	tokenService TokenService
	rateLimiter  RateLimiter
	rateLimit    config.RateLimitConfig
	cookieName   string
}

// NewGuardMiddleware crea el middleware del guard
func NewGuardMiddleware(
	tokenService TokenService,
	rateLimiter RateLimiter,
	rateLimit config.RateLimitConfig,
	cookieName string,
) *GuardMiddleware {
	return &GuardMiddleware{
		tokenService: tokenService,
		rateLimiter:  rateLimiter,
		rateLimit:    rateLimit,
		cookieName:   cookieName,
	}
}

// Authenticate resuelve la sesión del llamador y deja el AuthContext en locals
func (gm *GuardMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c, gm.cookieName)
		if token == "" {
			metrics.GuardRejections.WithLabelValues("unauthorized").Inc()
			return iam.ErrUnauthorized()
		}

		authContext, err := gm.tokenService.ValidateAccessToken(token)
		if err != nil {
			metrics.GuardRejections.WithLabelValues("unauthorized").Inc()
			return err
		}

		if !authContext.IsValid() {
			metrics.GuardRejections.WithLabelValues("unauthorized").Inc()
			return iam.ErrUnauthorized()
		}

		c.Locals("auth", authContext)
		return c.Next()
	}
}

// RateLimit consulta el colaborador de rate limiting por actor.
// Si el contador no es alcanzable la petición pasa (fail-open).
func (gm *GuardMiddleware) RateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gm.rateLimit.Enabled || gm.rateLimiter == nil {
			return c.Next()
		}

		authContext, ok := GetAuthContext(c)
		if !ok {
			return iam.ErrUnauthorized()
		}

		if !gm.rateLimiter.Allow(c.Context(), authContext.ActorID.String(), gm.rateLimit.MaxRequests, gm.rateLimit.Window) {
			metrics.GuardRejections.WithLabelValues("rate_limited").Inc()
			return iam.ErrTooManyRequests().
				WithDetail("limit", gm.rateLimit.MaxRequests).
				WithDetail("window", gm.rateLimit.Window.String())
		}

		return c.Next()
	}
}

// RequireCapability verifica una capability contra la tabla de permisos
func (gm *GuardMiddleware) RequireCapability(cap rbac.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			metrics.GuardRejections.WithLabelValues("unauthorized").Inc()
			return iam.ErrUnauthorized()
		}

		if !authContext.Can(cap) {
			metrics.GuardRejections.WithLabelValues("forbidden").Inc()
			return iam.ErrForbidden().WithDetail("required_capability", string(cap))
		}

		return c.Next()
	}
}

// Helper functions
func extractToken(c *fiber.Ctx, cookieName string) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}
	}

	return c.Cookies(cookieName)
}

// GetAuthContext helper to extract auth context from Fiber
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals("auth").(*kernel.AuthContext)
	return authContext, ok && authContext.IsValid()
}
