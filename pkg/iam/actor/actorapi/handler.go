package actorapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/actor"
	"github.com/remora-hq/staffdesk/pkg/iam/actor/actorsrv"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

type ActorHandlers struct {
	service *actorsrv.ActorService
}

func NewActorHandlers(service *actorsrv.ActorService) *ActorHandlers {
	return &ActorHandlers{service: service}
}

func (h *ActorHandlers) RegisterRoutes(router fiber.Router, guard *auth.GuardMiddleware) {
	actors := router.Group("/actors", guard.Authenticate(), guard.RateLimit())

	actors.Put("/me", h.UpdateProfile)

	// Administración de usuarios: solo SUPER_ADMIN
	actors.Post("/", guard.RequireCapability(rbac.CapManageUsers), h.CreateActor)
	actors.Get("/", guard.RequireCapability(rbac.CapManageUsers), h.ListActors)
	actors.Get("/:id", guard.RequireCapability(rbac.CapManageUsers), h.GetActor)
	actors.Put("/:id/role", guard.RequireCapability(rbac.CapManageUsers), h.ChangeRole)
	actors.Post("/:id/deactivate", guard.RequireCapability(rbac.CapManageUsers), h.DeactivateActor)
}

func (h *ActorHandlers) CreateActor(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req actor.CreateActorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.service.CreateActor(c.Context(), authContext, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created.ToDTO())
}

func (h *ActorHandlers) ListActors(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	response, err := h.service.ListActors(c.Context(), authContext)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *ActorHandlers) GetActor(c *fiber.Ctx) error {
	a, err := h.service.GetActorByID(c.Context(), kernel.NewActorID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(a.ToDTO())
}

func (h *ActorHandlers) UpdateProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req actor.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.UpdateProfile(c.Context(), authContext, req)
	if err != nil {
		return err
	}

	return c.JSON(updated.ToDTO())
}

func (h *ActorHandlers) ChangeRole(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req actor.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.ChangeRole(c.Context(), authContext, kernel.NewActorID(c.Params("id")), req)
	if err != nil {
		return err
	}

	return c.JSON(updated.ToDTO())
}

func (h *ActorHandlers) DeactivateActor(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	if err := h.service.DeactivateActor(c.Context(), authContext, kernel.NewActorID(c.Params("id"))); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Actor deactivated"})
}
