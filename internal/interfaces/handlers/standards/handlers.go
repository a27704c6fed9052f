package standards

import (
	stdsvc "brickfolio-backend/internal/application/standards"
	"brickfolio-backend/internal/pkg/response"
	"brickfolio-backend/internal/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type Handlers struct {
	Service *stdsvc.Service
}

func mapStandardError(c *fiber.Ctx, err error) error {
	switch err {
	case stdsvc.ErrInvestmentRequired, stdsvc.ErrInvalidInterval, stdsvc.ErrRentNotPositive,
		stdsvc.ErrInvalidProfitType, stdsvc.ErrValueNotPositive, stdsvc.ErrInvalidClampBounds:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case stdsvc.ErrStandardNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

// --- rental standards ---

type rentalStandardRequest struct {
	InvestmentID string  `json:"investment_id" validate:"required,uuid4"`
	MonthlyRent  int64   `json:"monthly_rent" validate:"required,gt=0"`
	StartDate    string  `json:"start_date" validate:"required"`
	EndDate      *string `json:"end_date"`
	RenterName   string  `json:"renter_name"`
	RenterTaxID  *string `json:"renter_tax_id"`
	Note         *string `json:"note"`
}

func (r *rentalStandardRequest) toInput() (stdsvc.RentalStandardInput, string) {
	var in stdsvc.RentalStandardInput
	id, err := uuid.Parse(r.InvestmentID)
	if err != nil {
		return in, "Invalid investment_id format"
	}
	start, ok := validation.ParseDate(r.StartDate)
	if !ok {
		return in, "start_date must be YYYY-MM-DD"
	}
	in = stdsvc.RentalStandardInput{
		InvestmentID: id,
		MonthlyRent:  r.MonthlyRent,
		StartDate:    start,
		RenterName:   r.RenterName,
		RenterTaxID:  r.RenterTaxID,
		Note:         r.Note,
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, ok := validation.ParseDate(*r.EndDate)
		if !ok {
			return in, "end_date must be YYYY-MM-DD"
		}
		in.EndDate = &end
	}
	return in, ""
}

// GET /api/v1/rental-standards?investment_id=...
func (h *Handlers) ListRental(c *fiber.Ctx) error {
	investmentID, err := uuid.Parse(c.Query("investment_id"))
	if err != nil {
		return response.Error(c, "investment_id is required", fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.ListRentalStandards(c.Context(), investmentID)
	if err != nil {
		return mapStandardError(c, err)
	}
	return response.Success(c, "Rental standards fetched successfully", out, nil)
}

// POST /api/v1/rental-standards
func (h *Handlers) CreateRental(c *fiber.Ctx) error {
	var req rentalStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, fiber.StatusBadRequest, nil)
	}
	std, err := h.Service.CreateRentalStandard(c.Context(), in)
	if err != nil {
		return mapStandardError(c, err)
	}
	return response.SuccessCreated(c, "Rental standard created successfully", std, nil)
}

// PUT /api/v1/rental-standards/:standard_id
func (h *Handlers) UpdateRental(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("standard_id"))
	if err != nil {
		return response.Error(c, "Invalid standard_id format", fiber.StatusBadRequest, nil)
	}
	var req rentalStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, fiber.StatusBadRequest, nil)
	}
	std, err := h.Service.UpdateRentalStandard(c.Context(), id, in)
	if err != nil {
		return mapStandardError(c, err)
	}
	return response.Success(c, "Rental standard updated successfully", std, nil)
}

// DELETE /api/v1/rental-standards/:standard_id
func (h *Handlers) DeleteRental(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("standard_id"))
	if err != nil {
		return response.Error(c, "Invalid standard_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteRentalStandard(c.Context(), id); err != nil {
		return mapStandardError(c, err)
	}
	return response.Success(c, "Rental standard deleted successfully", nil, nil)
}

// --- profit-sharing standards ---

type profitStandardRequest struct {
	InvestmentID string  `json:"investment_id" validate:"required,uuid4"`
	Type         string  `json:"type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT OTHER"`
	Value        string  `json:"value" validate:"required"`
	MinAmount    *int64  `json:"min_amount"`
	MaxAmount    *int64  `json:"max_amount"`
	StartDate    string  `json:"start_date" validate:"required"`
	EndDate      *string `json:"end_date"`
	Note         *string `json:"note"`
}

func (r *profitStandardRequest) toInput() (stdsvc.ProfitStandardInput, string) {
	var in stdsvc.ProfitStandardInput
	id, err := uuid.Parse(r.InvestmentID)
	if err != nil {
		return in, "Invalid investment_id format"
	}
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return in, "value must be a decimal number"
	}
	start, ok := validation.ParseDate(r.StartDate)
	if !ok {
		return in, "start_date must be YYYY-MM-DD"
	}
	in = stdsvc.ProfitStandardInput{
		InvestmentID: id,
		Type:         r.Type,
		Value:        value,
		MinAmount:    r.MinAmount,
		MaxAmount:    r.MaxAmount,
		StartDate:    start,
		Note:         r.Note,
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, ok := validation.ParseDate(*r.EndDate)
		if !ok {
			return in, "end_date must be YYYY-MM-DD"
		}
		in.EndDate = &end
	}
	return in, ""
}

// GET /api/v1/profit-standards?investment_id=...
func (h *Handlers) ListProfit(c *fiber.Ctx) error {
	investmentID, err := uuid.Parse(c.Query("investment_id"))
	if err != nil {
		return response.Error(c, "investment_id is required", fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.ListProfitStandards(c.Context(), investmentID)
	if err != nil {
		return mapStandardError(c, err)
	}
	return response.Success(c, "Profit standards fetched successfully", out, nil)
}

// POST /api/v1/profit-standards
func (h *Handlers) CreateProfit(c *fiber.Ctx) error {
	var req profitStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, fiber.StatusBadRequest, nil)
	}
	std, err := h.Service.CreateProfitStandard(c.Context(), in)
	if err != nil {
		return mapStandardError(c, err)
	}
	return response.SuccessCreated(c, "Profit standard created successfully", std, nil)
}

// PUT /api/v1/profit-standards/:standard_id
func (h *Handlers) UpdateProfit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("standard_id"))
	if err != nil {
		return response.Error(c, "Invalid standard_id format", fiber.StatusBadRequest, nil)
	}
	var req profitStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, fiber.StatusBadRequest, nil)
	}
	std, err := h.Service.UpdateProfitStandard(c.Context(), id, in)
	if err != nil {
		return mapStandardError(c, err)
	}
	return response.Success(c, "Profit standard updated successfully", std, nil)
}

// DELETE /api/v1/profit-standards/:standard_id
func (h *Handlers) DeleteProfit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("standard_id"))
	if err != nil {
		return response.Error(c, "Invalid standard_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteProfitStandard(c.Context(), id); err != nil {
		return mapStandardError(c, err)
	}
	return response.Success(c, "Profit standard deleted successfully", nil, nil)
}
