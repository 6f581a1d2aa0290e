package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/retail-kit/backoffice-console/internal/api/dto"
	"github.com/retail-kit/backoffice-console/internal/domain"
	"github.com/retail-kit/backoffice-console/internal/session"
)

const updateWaitTimeout = 25 * time.Second

// SessionHandler exposes the session lifecycle to the UI shell.
type SessionHandler struct {
	sessions *session.Store
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login handles POST /login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	ok := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	snapshot := h.sessions.Session()
	if !ok {
		// inline error for the login form
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"data": dto.NewSessionResponse(snapshot),
		})
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(snapshot)})
}

// Logout handles POST /logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(h.sessions.Session())})
}

// Current handles GET /session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(h.sessions.Session())})
}

// Recheck handles POST /session/recheck: reconcile against the upstream on
// demand.
func (h *SessionHandler) Recheck(c *fiber.Ctx) error {
	h.sessions.CheckAuth(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(h.sessions.Session())})
}

// Updates handles GET /session/updates: long-poll that settles on the next
// effective session change or after a timeout, whichever comes first. UI
// regions use it to stay in sync with the broadcaster.
func (h *SessionHandler) Updates(c *fiber.Ctx) error {
	changes := make(chan domain.Session, 1)
	unsubscribe := h.sessions.Subscribe(func(sess domain.Session) {
		select {
		case changes <- sess:
		default:
		}
	})
	defer unsubscribe()

	select {
	case sess := <-changes:
		return c.JSON(fiber.Map{"data": dto.NewSessionResponse(sess), "changed": true})
	case <-time.After(updateWaitTimeout):
		return c.JSON(fiber.Map{"data": dto.NewSessionResponse(h.sessions.Session()), "changed": false})
	case <-c.UserContext().Done():
		return nil
	}
}
