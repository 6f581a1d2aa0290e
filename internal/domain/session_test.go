package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleViewer.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("superuser").Valid())
}

func TestSessionCloneIsIndependent(t *testing.T) {
	original := Session{
		IsAuthenticated: true,
		User: &UserProfile{
			ID:          "1",
			Role:        RoleAdmin,
			Permissions: []string{"orders:read"},
		},
	}

	clone := original.Clone()
	require.NotNil(t, clone.User)
	require.NotSame(t, original.User, clone.User)

	clone.User.Permissions[0] = "tampered"
	clone.User.Name = "tampered"

	assert.Equal(t, "orders:read", original.User.Permissions[0])
	assert.Empty(t, original.User.Name)
}

func TestSessionCloneNilUser(t *testing.T) {
	clone := Session{IsLoading: true}.Clone()
	assert.Nil(t, clone.User)
	assert.True(t, clone.IsLoading)
}

func TestHasPermissionRequiresAuthentication(t *testing.T) {
	withGrants := Session{
		User: &UserProfile{ID: "1", Permissions: []string{"orders:read"}},
	}
	assert.False(t, withGrants.HasPermission("orders:read"))

	withGrants.IsAuthenticated = true
	assert.True(t, withGrants.HasPermission("orders:read"))
	assert.False(t, withGrants.HasPermission("orders:update"))

	assert.False(t, Session{IsAuthenticated: true}.HasPermission("orders:read"))
}

func TestHasRole(t *testing.T) {
	sess := Session{
		IsAuthenticated: true,
		User:            &UserProfile{ID: "1", Role: RoleManager},
	}
	assert.True(t, sess.HasRole(RoleManager))
	assert.False(t, sess.HasRole(RoleAdmin))

	sess.IsAuthenticated = false
	assert.False(t, sess.HasRole(RoleManager))
}
