package investments

import (
	invsvc "brickfolio-backend/internal/application/investments"
	"brickfolio-backend/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type Handlers struct {
	Service *invsvc.Service
}

type investmentRequest struct {
	Name   string  `json:"name" validate:"required"`
	Type   string  `json:"type"`
	UserID *string `json:"user_id" validate:"omitempty,uuid4"`
	Status string  `json:"status" validate:"omitempty,oneof=active closed"`
	Note   *string `json:"note"`
}

func (r *investmentRequest) toInput() (invsvc.CreateInput, error) {
	in := invsvc.CreateInput{
		Name:   r.Name,
		Type:   r.Type,
		Status: r.Status,
		Note:   r.Note,
	}
	if r.UserID != nil && *r.UserID != "" {
		id, err := uuid.Parse(*r.UserID)
		if err != nil {
			return in, err
		}
		in.UserID = &id
	}
	return in, nil
}

// POST /api/v1/investments
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req investmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return response.Error(c, "Invalid user_id format", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch err {
		case invsvc.ErrNameRequired, invsvc.ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case invsvc.ErrMemberNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Investment created successfully", inv, nil)
}

// GET /api/v1/investments
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Investments fetched successfully", out, nil)
}

// GET /api/v1/investments/:investment_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("investment_id"))
	if err != nil {
		return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == invsvc.ErrNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Investment fetched successfully", inv, nil)
}

// PUT /api/v1/investments/:investment_id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("investment_id"))
	if err != nil {
		return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
	}
	var req investmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return response.Error(c, "Invalid user_id format", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		switch err {
		case invsvc.ErrNameRequired, invsvc.ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case invsvc.ErrNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Investment updated successfully", inv, nil)
}

// DELETE /api/v1/investments/:investment_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("investment_id"))
	if err != nil {
		return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == invsvc.ErrNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Investment deleted successfully", nil, nil)
}

// PATCH /api/v1/investments/:investment_id/assign-member
func (h *Handlers) AssignMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("investment_id"))
	if err != nil {
		return response.Error(c, "Invalid investment_id format", fiber.StatusBadRequest, nil)
	}
	var body struct {
		MemberID string `json:"member_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.MemberID == "" {
		return response.Error(c, "member_id is required", fiber.StatusBadRequest, nil)
	}
	memberID, err := uuid.Parse(body.MemberID)
	if err != nil {
		return response.Error(c, "Invalid member_id format", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.AssignMember(c.Context(), id, memberID)
	if err != nil {
		switch err {
		case invsvc.ErrNotFound, invsvc.ErrMemberNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Member assigned successfully", inv, nil)
}
