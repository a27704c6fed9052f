package rentals

import (
	"strconv"

	rentsvc "brickfolio-backend/internal/application/rentals"
	"brickfolio-backend/internal/pkg/response"
	"brickfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *rentsvc.Service
}

// POST /api/v1/rental-payments/generate — 201 with the whole generated batch.
// Precondition failures come back as 4xx with the service message verbatim.
func (h *Handlers) Generate(c *fiber.Ctx) error {
	var body struct {
		InvestmentID string `json:"investment_id"`
		Year         int    `json:"year"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "investment_id and year are required", fiber.StatusBadRequest, nil)
	}
	investmentID, err := uuid.Parse(body.InvestmentID)
	if err != nil {
		return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidYear(body.Year) {
		return response.Error(c, "year is out of range", fiber.StatusBadRequest, nil)
	}

	payments, err := h.Service.Generate(c.Context(), investmentID, body.Year)
	if err != nil {
		switch err {
		case rentsvc.ErrDuplicateGeneration:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case rentsvc.ErrMissingStandard, rentsvc.ErrNoApplicableStandard, rentsvc.ErrIncompleteStandard:
			return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Rental payments generated successfully", payments,
		fiber.Map{"count": len(payments)})
}

// GET /api/v1/rental-payments?investment_id&year&month&status
func (h *Handlers) List(c *fiber.Ctx) error {
	filter, msg := parseListFilter(c)
	if msg != "" {
		return response.Error(c, msg, fiber.StatusBadRequest, nil)
	}
	payments, err := h.Service.List(c.Context(), filter)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Rental payments fetched successfully", payments, nil)
}

func parseListFilter(c *fiber.Ctx) (rentsvc.ListFilter, string) {
	var f rentsvc.ListFilter
	if s := c.Query("investment_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, "Invalid investment_id format"
		}
		f.InvestmentID = &id
	}
	if s := c.Query("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil || !validation.IsValidYear(year) {
			return f, "year is out of range"
		}
		f.Year = &year
	}
	if s := c.Query("month"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil || !validation.IsValidMonth(month) {
			return f, "month must be between 1 and 12"
		}
		f.Month = &month
	}
	if s := c.Query("status"); s != "" {
		f.Status = &s
	}
	return f, ""
}

type updateRequest struct {
	Status        *string `json:"status"`
	Amount        *int64  `json:"amount"`
	PayerName     *string `json:"payer_name"`
	PaymentDate   *string `json:"payment_date"`
	PaymentMethod *string `json:"payment_method"`
	Note          *string `json:"note"`
}

// PATCH /api/v1/rental-payments/:payment_id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("payment_id"))
	if err != nil {
		return response.Error(c, "Invalid payment_id format", fiber.StatusBadRequest, nil)
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in := rentsvc.UpdateInput{
		Status:        req.Status,
		Amount:        req.Amount,
		PayerName:     req.PayerName,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		d, ok := validation.ParseDate(*req.PaymentDate)
		if !ok {
			return response.Error(c, "payment_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
		}
		in.PaymentDate = &d
	}
	payment, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		switch err {
		case rentsvc.ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case rentsvc.ErrPaymentNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Rental payment updated successfully", payment, nil)
}

// DELETE /api/v1/rental-payments/:payment_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("payment_id"))
	if err != nil {
		return response.Error(c, "Invalid payment_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == rentsvc.ErrPaymentNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Rental payment deleted successfully", nil, nil)
}

// POST /api/v1/rental-payments/clear — bulk delete by scope, returns the count.
func (h *Handlers) Clear(c *fiber.Ctx) error {
	var body struct {
		InvestmentID *string `json:"investment_id"`
		Year         int     `json:"year"`
		Month        *int    `json:"month"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "year is required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidYear(body.Year) {
		return response.Error(c, "year is out of range", fiber.StatusBadRequest, nil)
	}
	scope := rentsvc.ClearScope{Year: body.Year}
	if body.InvestmentID != nil && *body.InvestmentID != "" {
		id, err := uuid.Parse(*body.InvestmentID)
		if err != nil {
			return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
		}
		scope.InvestmentID = &id
	}
	if body.Month != nil {
		if !validation.IsValidMonth(*body.Month) {
			return response.Error(c, "month must be between 1 and 12", fiber.StatusBadRequest, nil)
		}
		scope.Month = body.Month
	}
	deleted, err := h.Service.Clear(c.Context(), scope)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Rental payments cleared successfully", fiber.Map{"deleted": deleted}, nil)
}
