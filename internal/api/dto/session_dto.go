package dto

import "github.com/retail-kit/backoffice-console/internal/domain"

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the operator profile exposed to the UI. The credential never
// appears here.
type UserView struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// SessionResponse mirrors the session snapshot for UI consumers.
type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	Loading       bool      `json:"loading"`
	Error         string    `json:"error,omitempty"`
	User          *UserView `json:"user,omitempty"`
}

// NewSessionResponse converts a snapshot.
func NewSessionResponse(sess domain.Session) SessionResponse {
	resp := SessionResponse{
		Authenticated: sess.IsAuthenticated,
		Loading:       sess.IsLoading,
		Error:         sess.Error,
	}
	if sess.User != nil {
		resp.User = &UserView{
			ID:          sess.User.ID,
			Email:       sess.User.Email,
			Name:        sess.User.Name,
			Role:        string(sess.User.Role),
			Permissions: append([]string(nil), sess.User.Permissions...),
		}
	}
	return resp
}
