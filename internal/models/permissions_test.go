package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		resource string
		action   string
		want     bool
	}{
		{"super admin deletes users", RoleSuperAdmin, "users", "delete", true},
		{"admin cannot delete users", RoleAdmin, "users", "delete", false},
		{"admin reads users", RoleAdmin, "users", "read", true},
		{"editor creates news", RoleEditor, "news", "create", true},
		{"editor cannot read contacts", RoleEditor, "contacts", "read", false},
		{"student cannot create news", RoleStudent, "news", "create", false},
		{"editor deletes media", RoleEditor, "media", "delete", true},
		{"unknown pair denied", RoleSuperAdmin, "news", "explode", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Can(tc.role, tc.resource, tc.action))
		})
	}
}

func TestAllowedRoles(t *testing.T) {
	roles, ok := AllowedRoles("users", "delete")
	assert.True(t, ok)
	assert.Equal(t, []Role{RoleSuperAdmin}, roles)

	_, ok = AllowedRoles("users", "teleport")
	assert.False(t, ok)
}

func TestDenialMessageKey(t *testing.T) {
	assert.Equal(t, "forbidden.users.delete", DenialMessageKey("users", "delete"))
	assert.Equal(t, "forbidden.admin_only", DenialMessageKey("users", "read"))
	assert.Equal(t, "forbidden.admin_only", DenialMessageKey("contacts", "update"))
	assert.Equal(t, "forbidden.content_roles", DenialMessageKey("news", "create"))
	assert.Equal(t, "forbidden.content_roles", DenialMessageKey("media", "delete"))
	assert.Equal(t, "forbidden.generic", DenialMessageKey("reports", "read"))
}

func TestValidRole(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole(Role("owner")))
}
