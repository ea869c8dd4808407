package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// Principal is the request-scoped identity resolved from a bearer token.
// It is created by the authentication gate, passed explicitly through the
// call chain, and discarded at the end of the request.
type Principal struct {
	SubjectID string
	Email     string
	Roles     []string
}

// Owned is implemented by resources that carry an owning user reference.
// Ownership checks are written once against this interface instead of being
// duplicated per resource type.
type Owned interface {
	OwnedBy() string
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// CanModify reports whether the principal may mutate the resource:
// admins always may, everyone else only when they own it.
func (p Principal) CanModify(res Owned) bool {
	return p.IsAdmin() || res.OwnedBy() == p.SubjectID
}
