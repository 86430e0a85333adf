package models

// Permission table: (resource, action) -> roles allowed to perform it.
// Resolved by a plain lookup; must be applied after identity resolution.

type Permission struct {
	Resource string
	Action   string
}

var adminRoles = []Role{RoleSuperAdmin, RoleAdmin}
var contentRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor}

var permissionTable = map[Permission][]Role{
	{"users", "read"}:      adminRoles,
	{"users", "delete"}:    {RoleSuperAdmin},
	{"news", "create"}:     contentRoles,
	{"news", "update"}:     contentRoles,
	{"news", "delete"}:     contentRoles,
	{"news", "publish"}:    contentRoles,
	{"faqs", "create"}:     contentRoles,
	{"faqs", "update"}:     contentRoles,
	{"faqs", "delete"}:     contentRoles,
	{"contacts", "read"}:   adminRoles,
	{"contacts", "update"}: adminRoles,
	{"contacts", "delete"}: adminRoles,
	{"media", "delete"}:    contentRoles,
}

// AllowedRoles returns the role set for a (resource, action) pair. The second
// return value is false when the pair is not configured.
func AllowedRoles(resource, action string) ([]Role, bool) {
	roles, ok := permissionTable[Permission{Resource: resource, Action: action}]
	return roles, ok
}

// Can reports whether the role may perform the action on the resource.
func Can(role Role, resource, action string) bool {
	roles, ok := AllowedRoles(resource, action)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// DenialMessageKey picks the i18n key explaining why a (resource, action)
// pair was refused. Deleting users is reserved for the highest role and gets
// its own message.
func DenialMessageKey(resource, action string) string {
	switch {
	case resource == "users" && action == "delete":
		return "forbidden.users.delete"
	case resource == "users" || resource == "contacts":
		return "forbidden.admin_only"
	case resource == "news" || resource == "faqs" || resource == "media":
		return "forbidden.content_roles"
	default:
		return "forbidden.generic"
	}
}
