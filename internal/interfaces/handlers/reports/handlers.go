package reports

import (
	"strconv"

	reportsvc "brickfolio-backend/internal/application/reports"
	"brickfolio-backend/internal/pkg/response"
	"brickfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *reportsvc.Service
}

// GET /api/v1/reports/annual?year=2024[&investment_id=...]
func (h *Handlers) Annual(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || !validation.IsValidYear(year) {
		return response.Error(c, "year is required", fiber.StatusBadRequest, nil)
	}
	var investmentID *uuid.UUID
	if s := c.Query("investment_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
		}
		investmentID = &id
	}
	summary, err := h.Service.Annual(c.Context(), year, investmentID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Annual report generated successfully", summary, nil)
}
