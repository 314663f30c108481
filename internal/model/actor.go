package model

import "github.com/google/uuid"

// Role enumerates actor roles supplied by the external identity provider.
type Role string

const (
	// RoleAdmin manages zones and files regardless of location.
	RoleAdmin Role = "admin"
	// RoleUser is subject to geofence checks.
	RoleUser Role = "user"
)

// Actor is the identity attached to each request. The value is trusted as
// handed over by the identity boundary; no authentication happens here.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// IsAdmin reports whether the actor carries the elevated role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
