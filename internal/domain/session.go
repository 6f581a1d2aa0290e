package domain

// Role enumerates back-office operator roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// Valid reports whether the role is one of the enumerated classes.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleViewer:
		return true
	}
	return false
}

// UserProfile is the operator identity delivered by the upstream platform.
// Permissions arrive fully resolved; the console never derives them from the
// role itself.
type UserProfile struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

// Session is the authoritative authorization state for the running console.
// The credential backing an authenticated session is held by the session
// store and never appears in snapshots handed to consumers.
type Session struct {
	User            *UserProfile
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Clone returns a defensive copy, including the permission slice.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		user := *s.User
		user.Permissions = append([]string(nil), s.User.Permissions...)
		out.User = &user
	}
	return out
}

// HasPermission reports membership of key in the resolved permission set.
// Always false for an unauthenticated session.
func (s Session) HasPermission(key string) bool {
	if !s.IsAuthenticated || s.User == nil {
		return false
	}
	for _, p := range s.User.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

// HasRole reports whether the session's primary role equals role.
func (s Session) HasRole(role Role) bool {
	return s.IsAuthenticated && s.User != nil && s.User.Role == role
}
