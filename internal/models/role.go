package models

// Role is the capability tier stored on a user document.
// Anything other than "admin" (including a missing field) is RoleNone.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
)

const roleAdmin = "admin"

func ParseRole(v any) Role {
	if s, ok := v.(string); ok && s == roleAdmin {
		return RoleAdmin
	}
	return RoleNone
}

func (r Role) String() string {
	if r == RoleAdmin {
		return roleAdmin
	}
	return ""
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }
