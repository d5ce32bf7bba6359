package positionapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/hiring/position"
	"github.com/remora-hq/staffdesk/pkg/hiring/position/positionsrv"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
)

type PositionHandlers struct {
	service  *positionsrv.PositionService
	archival config.ArchivalConfig
}

func NewPositionHandlers(service *positionsrv.PositionService, archival config.ArchivalConfig) *PositionHandlers {
	return &PositionHandlers{service: service, archival: archival}
}

func (h *PositionHandlers) RegisterRoutes(router fiber.Router, guard *auth.GuardMiddleware) {
	positions := router.Group("/positions", guard.Authenticate())

	positions.Get("/", h.ListPositions)
	positions.Get("/:id", h.GetPosition)

	// Las mutaciones pasan por el rate limiter
	positions.Post("/", guard.RateLimit(), guard.RequireCapability(rbac.CapPostPositions), h.CreatePosition)
	positions.Put("/:id", guard.RateLimit(), h.UpdatePosition)
	positions.Delete("/:id", guard.RateLimit(), h.DeletePosition)

	// Disparo manual del barrido, reservado al rol administrativo máximo
	positions.Post("/archive-sweep", guard.RateLimit(), guard.RequireCapability(rbac.CapManageUsers), h.ArchiveSweep)
}

func (h *PositionHandlers) CreatePosition(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req position.CreatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.service.CreatePosition(c.Context(), authContext, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PositionHandlers) ListPositions(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	response, err := h.service.ListPositions(c.Context(), authContext)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *PositionHandlers) GetPosition(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	found, err := h.service.GetPosition(c.Context(), authContext, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *PositionHandlers) UpdatePosition(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req position.UpdatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.UpdatePosition(c.Context(), authContext, c.Params("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *PositionHandlers) DeletePosition(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	if err := h.service.DeletePosition(c.Context(), authContext, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Position deleted"})
}

func (h *PositionHandlers) ArchiveSweep(c *fiber.Ctx) error {
	if _, ok := auth.GetAuthContext(c); !ok {
		return iam.ErrUnauthorized()
	}

	archived, err := h.service.ArchiveStaleCampaigns(c.Context(), h.archival.DwellTime)
	if err != nil {
		return err
	}

	return c.JSON(position.SweepResponse{Archived: archived})
}
