/*
authz.go - Who may validate a request in its current state

RULES:
  - Nobody validates their own request, regardless of role.
  - PendingUnitChief: validator must be a unit chief of the requester's
    own unit.
  - PendingTeamChief: validator must be a team chief.
  - Any other status: nobody.

SEE ALSO:
  - lifecycle.go: Decide gates on CanValidate before acting
*/
package engine

// AuthorizationPolicy decides whether a validator may act on a request.
type AuthorizationPolicy struct{}

// CanValidate reports whether the validator has standing to decide the
// request at its current level. The owner snapshot supplies the
// requester's unit for the level-1 unit match.
func (AuthorizationPolicy) CanValidate(req *LeaveRequest, owner Actor, validator Actor) bool {
	if validator.ID == req.OwnerID {
		return false
	}

	switch req.Status {
	case StatusPendingUnitChief:
		return validator.Role == RoleUnitChief &&
			validator.UnitID != "" &&
			validator.UnitID == owner.UnitID
	case StatusPendingTeamChief:
		return validator.Role == RoleTeamChief
	default:
		return false
	}
}
