package domain

import "time"

// StaffAccount models a back-office account as reported by the upstream
// staff administration surface. Roles is the full assigned set; disabling an
// account suspends login without deleting the record or its role history.
type StaffAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []RoleRef `json:"roles"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleRef identifies an assignable role on the upstream side.
type RoleRef struct {
	ID   string `json:"id"`
	Name Role   `json:"name"`
}

// HasRoleID reports whether the account already carries the given role.
func (a StaffAccount) HasRoleID(roleID string) bool {
	for _, r := range a.Roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}
