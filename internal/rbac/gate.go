package rbac

import "github.com/retail-kit/backoffice-console/internal/domain"

// Gate is a capability-conditioned render decision used by handlers to show
// or drop a UI fragment. Gates are advisory: the upstream re-checks every
// authorized action, and a denied gate renders the fallback silently rather
// than reporting why.
type Gate struct {
	Name        string
	Requirement Requirement
	Fallback    string
}

// NewGate builds a gate over the given requirement.
func NewGate(name string, req Requirement) Gate {
	return Gate{Name: name, Requirement: req}
}

// WithFallback sets the fragment rendered when the gate denies.
func (g Gate) WithFallback(fallback string) Gate {
	g.Fallback = fallback
	return g
}

// Allowed evaluates the gate against the session.
func (g Gate) Allowed(sess domain.Session) bool {
	return Evaluate(sess, g.Requirement)
}

// Render returns content when allowed, otherwise the fallback (default
// empty: denied fragments disappear without trace).
func (g Gate) Render(sess domain.Session, content string) string {
	if g.Allowed(sess) {
		return content
	}
	return g.Fallback
}
