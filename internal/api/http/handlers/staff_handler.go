package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/retail-kit/backoffice-console/internal/api/dto"
	"github.com/retail-kit/backoffice-console/internal/staff"
)

// StaffHandler exposes staff administration endpoints. Authorization is
// enforced by the service itself; the route guard in front of these routes
// only handles navigation.
type StaffHandler struct {
	service *staff.Service
}

// NewStaffHandler constructs handler.
func NewStaffHandler(service *staff.Service) *StaffHandler {
	return &StaffHandler{service: service}
}

// List handles GET /api/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	if err := h.service.Refresh(c.UserContext()); err != nil {
		return err
	}
	state := h.service.State()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"accounts": state.Accounts,
		"roles":    state.Roles,
	}})
}

// Create handles POST /api/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.service.CreateStaff(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": account})
}

// AssignRole handles POST /api/staff/:id/roles.
func (h *StaffHandler) AssignRole(c *fiber.Ctx) error {
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.AssignRole(c.UserContext(), c.Params("id"), req.RoleID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "role_assigned"}})
}

// ResetPassword handles POST /api/staff/:id/password.
func (h *StaffHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResetPassword(c.UserContext(), c.Params("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}

// Disable handles POST /api/staff/:id/disable.
func (h *StaffHandler) Disable(c *fiber.Ctx) error {
	var req dto.DisableAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.DisableAccount(c.UserContext(), c.Params("id"), req.Confirmed); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "account_disabled"}})
}
