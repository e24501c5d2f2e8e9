package domain

import "time"

type Role string

const (
	RoleUser            Role = "user"
	RoleAdmin           Role = "admin"
	RoleDonor           Role = "donor"
	RoleServiceProvider Role = "service_provider"
	RoleVolunteer       Role = "volunteer"
	RoleOrganization    Role = "organization"
)

// ValidRole reports whether r is one of the platform roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDonor, RoleServiceProvider, RoleVolunteer, RoleOrganization:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Verified     bool      `json:"verified"`
	Roles        []Role    `json:"roles"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// AddRole appends r if the user does not already carry it.
func (u *User) AddRole(r Role) {
	if !u.HasRole(r) {
		u.Roles = append(u.Roles, r)
	}
}

// RemoveRole drops r from the role set. The set is never emptied;
// removing the last role returns false and leaves the user unchanged.
func (u *User) RemoveRole(r Role) bool {
	if len(u.Roles) <= 1 {
		return false
	}
	for i, have := range u.Roles {
		if have == r {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return true
		}
	}
	return false
}

// RoleStrings returns the role set as plain strings for token claims.
func (u *User) RoleStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}
