package dto

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AssignRoleRequest payload.
type AssignRoleRequest struct {
	RoleID string `json:"role_id"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// DisableAccountRequest payload. Confirmed carries the operator's explicit
// confirmation; the service refuses without it.
type DisableAccountRequest struct {
	Confirmed bool `json:"confirmed"`
}
