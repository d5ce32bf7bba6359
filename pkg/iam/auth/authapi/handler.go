package authapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/actor"
	"github.com/remora-hq/staffdesk/pkg/iam/actor/actorsrv"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
	"github.com/remora-hq/staffdesk/pkg/validx"
)

type AuthHandlers struct {
	actorService *actorsrv.ActorService
	tokenService auth.TokenService
	cookieCfg    config.CookieConfig
	tokenTTL     time.Duration
}

func NewAuthHandlers(
	actorService *actorsrv.ActorService,
	tokenService auth.TokenService,
	cookieCfg config.CookieConfig,
	tokenTTL time.Duration,
) *AuthHandlers {
	return &AuthHandlers{
		actorService: actorService,
		tokenService: tokenService,
		cookieCfg:    cookieCfg,
		tokenTTL:     tokenTTL,
	}
}

func (h *AuthHandlers) RegisterRoutes(app *fiber.App, guard *auth.GuardMiddleware) {
	grp := app.Group("/auth")

	grp.Post("/sign-in", h.SignIn)
	grp.Post("/sign-out", h.SignOut)
	grp.Get("/me", guard.Authenticate(), h.Me)
}

func (h *AuthHandlers) SignIn(c *fiber.Ctx) error {
	var req actor.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if verr := validx.Struct(req); verr != nil {
		return verr
	}

	a, err := h.actorService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.tokenService.GenerateAccessToken(a.AuthContext())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieCfg.AccessTokenName,
		Value:    token,
		Domain:   h.cookieCfg.Domain,
		Path:     h.cookieCfg.Path,
		Secure:   h.cookieCfg.Secure,
		HTTPOnly: h.cookieCfg.HTTPOnly,
		SameSite: h.cookieCfg.SameSite,
		Expires:  time.Now().Add(h.tokenTTL),
	})

	return c.JSON(actor.SignInResponse{
		AccessToken: token,
		Actor:       a.ToDTO(),
	})
}

func (h *AuthHandlers) SignOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieCfg.AccessTokenName,
		Value:    "",
		Path:     h.cookieCfg.Path,
		HTTPOnly: h.cookieCfg.HTTPOnly,
		Expires:  time.Now().Add(-time.Hour),
	})

	return c.JSON(fiber.Map{"message": "Signed out"})
}

func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	a, err := h.actorService.GetActorByID(c.Context(), authContext.ActorID)
	if err != nil {
		return err
	}

	return c.JSON(a.ToDTO())
}
