package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetOwnerStats returns counts of the caller's owned resources
func (h *DashboardHandler) GetOwnerStats(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stats, err := h.service.GetOwnerStats(c.UserContext(), caller)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}
