package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/retail-kit/backoffice-console/internal/domain"
	"github.com/retail-kit/backoffice-console/internal/rbac"
	"github.com/retail-kit/backoffice-console/internal/session"
)

// navEntry is one gated navigation item in the console shell.
type navEntry struct {
	label string
	route string
	gate  rbac.Gate
}

// AppHandler serves the console shell. Page bodies stay minimal: the
// console's job here is navigation and gating, not rendering the admin
// modules themselves.
type AppHandler struct {
	sessions *session.Store
	nav      []navEntry
}

// NewAppHandler constructs handler.
func NewAppHandler(sessions *session.Store) *AppHandler {
	return &AppHandler{
		sessions: sessions,
		nav: []navEntry{
			{label: "Orders", route: "/app/orders", gate: rbac.NewGate("nav-orders",
				rbac.Requirement{Permission: rbac.OrdersRead})},
			{label: "Products", route: "/app/products", gate: rbac.NewGate("nav-products",
				rbac.Requirement{Permission: rbac.ProductsRead})},
			{label: "Marketing", route: "/app/marketing", gate: rbac.NewGate("nav-marketing",
				rbac.Requirement{AnyOf: []rbac.Permission{rbac.MarketingRead, rbac.MarketingUpdate}})},
			{label: "Finance", route: "/app/finance", gate: rbac.NewGate("nav-finance",
				rbac.Requirement{Permission: rbac.FinanceRead})},
			{label: "Staff", route: "/app/staff", gate: rbac.NewGate("nav-staff",
				rbac.Requirement{Role: domain.RoleAdmin, Permission: rbac.StaffRead})},
		},
	}
}

// LoginPage handles GET /login.
func (h *AppHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"page": "login",
		"next": c.Query("next"),
	}})
}

// Home handles GET /app: the shell with its gated navigation. Denied
// entries are dropped without trace.
func (h *AppHandler) Home(c *fiber.Ctx) error {
	sess := h.sessions.Session()

	visible := make([]fiber.Map, 0, len(h.nav))
	for _, entry := range h.nav {
		if entry.gate.Allowed(sess) {
			visible = append(visible, fiber.Map{"label": entry.label, "route": entry.route})
		}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"page": "home",
		"nav":  visible,
	}})
}

// StaffPage handles GET /app/staff (allow-listed to admins by the guard).
func (h *AppHandler) StaffPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"page": "staff"}})
}
