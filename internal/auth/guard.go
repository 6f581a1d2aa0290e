package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/retail-kit/backoffice-console/internal/domain"
	"github.com/retail-kit/backoffice-console/internal/observability"
	"github.com/retail-kit/backoffice-console/internal/session"
	apperrors "github.com/retail-kit/backoffice-console/pkg/util"
)

// Console navigation anchors.
const (
	LoginRoute = "/login"
	HomeRoute  = "/app"
)

// DecisionKind enumerates the guard's states.
type DecisionKind int

const (
	// DecisionChecking: session verification in flight; render neutral,
	// never redirect.
	DecisionChecking DecisionKind = iota
	// DecisionAllow: render the protected content.
	DecisionAllow
	// DecisionRedirectLogin: unauthenticated; go to login, capturing the
	// attempted destination.
	DecisionRedirectLogin
	// DecisionRedirectHome: authenticated but role not allow-listed; go to
	// the default landing route.
	DecisionRedirectHome
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Resolve applies the guard state machine to a session snapshot. The guard
// holds no state of its own; it reads the session fresh on every call.
func Resolve(sess domain.Session, attempted string, allowed ...domain.Role) Decision {
	if sess.IsLoading {
		return Decision{Kind: DecisionChecking}
	}
	if !sess.IsAuthenticated {
		location := LoginRoute
		if attempted != "" && attempted != LoginRoute {
			location += "?next=" + url.QueryEscape(attempted)
		}
		return Decision{Kind: DecisionRedirectLogin, Location: location}
	}
	if len(allowed) > 0 && !roleAllowed(sess, allowed) {
		return Decision{Kind: DecisionRedirectHome, Location: HomeRoute}
	}
	return Decision{Kind: DecisionAllow}
}

func roleAllowed(sess domain.Session, allowed []domain.Role) bool {
	for _, role := range allowed {
		if sess.HasRole(role) {
			return true
		}
	}
	return false
}

// Guard enforces the decision at navigation granularity.
type Guard struct {
	sessions *session.Store
	metrics  *observability.Metrics
}

// NewGuard constructs the route guard.
func NewGuard(sessions *session.Store, metrics *observability.Metrics) *Guard {
	return &Guard{sessions: sessions, metrics: metrics}
}

// Protect guards a route, optionally allow-listing roles. Browser
// navigation gets 302 redirects; API requests get the equivalent JSON
// refusal. Denials stay silent about what exists behind the route.
func (g *Guard) Protect(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Resolve(g.sessions.Session(), c.OriginalURL(), allowed...)

		switch decision.Kind {
		case DecisionChecking:
			if wantsJSON(c) {
				return c.JSON(fiber.Map{"status": "checking"})
			}
			return c.SendString("Checking session…")

		case DecisionRedirectLogin:
			g.metrics.RecordAuthEvent("guard.redirect_login")
			if wantsJSON(c) {
				return apperrors.NewUnauthorized("authentication required")
			}
			return c.Redirect(decision.Location, fiber.StatusFound)

		case DecisionRedirectHome:
			g.metrics.RecordAuthEvent("guard.redirect_home")
			if wantsJSON(c) {
				return apperrors.NewForbidden("insufficient role")
			}
			return c.Redirect(decision.Location, fiber.StatusFound)
		}

		return c.Next()
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
