package rbac

import "github.com/retail-kit/backoffice-console/internal/domain"

// Requirement describes a render-time authorization condition. The three
// fields are independent and AND-combined; a zero Requirement allows.
type Requirement struct {
	Role       domain.Role
	Permission Permission
	AnyOf      []Permission
}

// Empty reports whether no condition was declared.
func (r Requirement) Empty() bool {
	return r.Role == "" && r.Permission == "" && len(r.AnyOf) == 0
}

// Evaluate answers whether the session satisfies every declared condition.
// Pure; safe to call from any consumer. All conditions fail while the
// session is unauthenticated.
func Evaluate(sess domain.Session, req Requirement) bool {
	if req.Empty() {
		return true
	}
	if req.Role != "" && !sess.HasRole(req.Role) {
		return false
	}
	if req.Permission != "" && !sess.HasPermission(string(req.Permission)) {
		return false
	}
	if len(req.AnyOf) > 0 {
		any := false
		for _, p := range req.AnyOf {
			if sess.HasPermission(string(p)) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}
