package model

// DecisionReason explains an access decision outcome.
type DecisionReason string

const (
	// ReasonAdminOverride allows admins regardless of location.
	ReasonAdminOverride DecisionReason = "admin_override"
	// ReasonInZone allows an actor inside the file's safe zone.
	ReasonInZone DecisionReason = "in_zone"
	// ReasonOutsideZone denies an actor outside the file's safe zone.
	ReasonOutsideZone DecisionReason = "outside_zone"
	// ReasonZoneNotFound denies access when the assigned zone no longer resolves.
	ReasonZoneNotFound DecisionReason = "zone_not_found"
)

// Decision is the outcome of an access evaluation. A denial is a normal
// result, not an error; the reason lets callers distinguish wrong location
// from a deleted zone.
type Decision struct {
	Allowed bool           `json:"allowed"`
	Reason  DecisionReason `json:"reason"`
}
