package dashboardapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/remora-hq/staffdesk/pkg/hiring/dashboard/dashboardsrv"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
)

type DashboardHandlers struct {
	service *dashboardsrv.DashboardService
}

func NewDashboardHandlers(service *dashboardsrv.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{service: service}
}

func (h *DashboardHandlers) RegisterRoutes(router fiber.Router, guard *auth.GuardMiddleware) {
	router.Get("/dashboard", guard.Authenticate(), h.GetSummary)
}

func (h *DashboardHandlers) GetSummary(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	summary, err := h.service.GetSummary(c.Context(), authContext)
	if err != nil {
		return err
	}

	return c.JSON(summary)
}
