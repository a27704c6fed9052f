package members

import (
	memsvc "brickfolio-backend/internal/application/members"
	"brickfolio-backend/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type Handlers struct {
	Service *memsvc.Service
}

type createRequest struct {
	Fullname string  `json:"fullname" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"omitempty,oneof=viewer manager admin superadmin"`
	TaxID    *string `json:"tax_id"`
}

// POST /api/v1/members
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	member, err := h.Service.Create(c.Context(), memsvc.CreateInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		TaxID:    req.TaxID,
	})
	if err != nil {
		switch err {
		case memsvc.ErrInvalidFullname, memsvc.ErrInvalidEmail, memsvc.ErrInvalidPassword, memsvc.ErrInvalidRole:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case memsvc.ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Member created successfully", member, nil)
}

// GET /api/v1/members
func (h *Handlers) List(c *fiber.Ctx) error {
	members, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Members fetched successfully", members, nil)
}

// GET /api/v1/members/:member_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("member_id"))
	if err != nil {
		return response.Error(c, "Invalid member_id format", fiber.StatusBadRequest, nil)
	}
	member, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == memsvc.ErrNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Member fetched successfully", member, nil)
}

type updateRequest struct {
	Fullname *string `json:"fullname"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=viewer manager admin superadmin"`
	TaxID    *string `json:"tax_id"`
}

// PUT /api/v1/members/:member_id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("member_id"))
	if err != nil {
		return response.Error(c, "Invalid member_id format", fiber.StatusBadRequest, nil)
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := validate.Struct(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, err.Error())
	}
	member, err := h.Service.Update(c.Context(), id, memsvc.UpdateInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		TaxID:    req.TaxID,
	})
	if err != nil {
		switch err {
		case memsvc.ErrInvalidFullname, memsvc.ErrInvalidEmail, memsvc.ErrInvalidPassword, memsvc.ErrInvalidRole:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case memsvc.ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case memsvc.ErrNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Member updated successfully", member, nil)
}

// DELETE /api/v1/members/:member_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("member_id"))
	if err != nil {
		return response.Error(c, "Invalid member_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == memsvc.ErrNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Member deleted successfully", nil, nil)
}
