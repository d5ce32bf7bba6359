package candidateapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate/candidatesrv"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
)

type CandidateHandlers struct {
	service *candidatesrv.CandidateService
}

func NewCandidateHandlers(service *candidatesrv.CandidateService) *CandidateHandlers {
	return &CandidateHandlers{service: service}
}

func (h *CandidateHandlers) RegisterRoutes(router fiber.Router, guard *auth.GuardMiddleware) {
	candidates := router.Group("/candidates", guard.Authenticate())

	candidates.Get("/", h.ListCandidates)
	candidates.Get("/:id", h.GetCandidate)

	// Las mutaciones pasan por el rate limiter
	candidates.Post("/", guard.RateLimit(), guard.RequireCapability(rbac.CapProposeCandidates), h.CreateCandidate)
	candidates.Put("/:id", guard.RateLimit(), h.UpdateCandidate)
	candidates.Delete("/:id", guard.RateLimit(), h.DeleteCandidate)
}

func (h *CandidateHandlers) CreateCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.service.CreateCandidate(c.Context(), authContext, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CandidateHandlers) ListCandidates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	response, err := h.service.ListCandidates(c.Context(), authContext)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *CandidateHandlers) GetCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	found, err := h.service.GetCandidate(c.Context(), authContext, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *CandidateHandlers) UpdateCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req candidate.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.UpdateCandidate(c.Context(), authContext, c.Params("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *CandidateHandlers) DeleteCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	if err := h.service.DeleteCandidate(c.Context(), authContext, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Candidate deleted"})
}
