package upstream

import (
	"context"
	"net/http"

	"github.com/retail-kit/backoffice-console/internal/domain"
)

// CreateStaffRequest is the payload for creating a back-office account.
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListStaff returns all back-office accounts.
func (c *Client) ListStaff(ctx context.Context, token string) ([]domain.StaffAccount, error) {
	var accounts []domain.StaffAccount
	if err := c.do(ctx, http.MethodGet, "/staff/accounts", token, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListRoles returns the assignable roles.
func (c *Client) ListRoles(ctx context.Context, token string) ([]domain.RoleRef, error) {
	var roles []domain.RoleRef
	if err := c.do(ctx, http.MethodGet, "/staff/roles", token, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateStaff creates a new account.
func (c *Client) CreateStaff(ctx context.Context, token string, req CreateStaffRequest) (*domain.StaffAccount, error) {
	var account domain.StaffAccount
	if err := c.do(ctx, http.MethodPost, "/staff/accounts", token, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// AssignRole attaches a role to an account. The upstream owns the resulting
// role set; callers reload instead of mutating locally.
func (c *Client) AssignRole(ctx context.Context, token, staffID, roleID string) error {
	body := map[string]string{"role_id": roleID}
	return c.do(ctx, http.MethodPost, "/staff/accounts/"+staffID+"/roles", token, body, nil)
}

// ResetPassword sets a new password for an account.
func (c *Client) ResetPassword(ctx context.Context, token, staffID, newPassword string) error {
	body := map[string]string{"new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/staff/accounts/"+staffID+"/password", token, body, nil)
}

// DisableAccount suspends login for an account without deleting it.
func (c *Client) DisableAccount(ctx context.Context, token, staffID string) error {
	return c.do(ctx, http.MethodPost, "/staff/accounts/"+staffID+"/disable", token, nil, nil)
}
