/*
escalation.go - Which approval levels a request must pass

PURPOSE:
  Determines the ordered sequence of approval levels for a requester,
  based on their role and organizational placement. The hierarchy is
  capped at two levels: unit chief (level 1), then team chief (level 2).

RULES (evaluated in order):
  1. Team chief requesters auto-approve - the top authority has nobody
     above them to ask.
  2. Unit chiefs, and requesters with no organizational unit (or whose
     unit is deactivated), go straight to the team chief (level 2).
  3. Plain employees go to their unit chief (level 1) when the unit has
     at least one other active unit chief; otherwise straight to the
     team chief.

  NextLevel is fixed: level 1 escalates to level 2, level 2 is final.

SEE ALSO:
  - authz.go:     Who may act at a given level
  - lifecycle.go: Submit/Decide call FirstLevel/NextLevel
*/
package engine

import (
	"context"
)

// =============================================================================
// ORG QUERY - Collaborator interface supplied by the host
// =============================================================================

// OrgQuery answers organizational questions the resolver cannot answer
// from the requester snapshot alone.
type OrgQuery interface {
	// HasActiveUnitChief reports whether the unit has at least one active
	// unit chief other than excludingUserID.
	HasActiveUnitChief(ctx context.Context, unitID string, excludingUserID string) (bool, error)
}

// OrgQueryFunc adapts a function to the OrgQuery interface.
type OrgQueryFunc func(ctx context.Context, unitID string, excludingUserID string) (bool, error)

func (f OrgQueryFunc) HasActiveUnitChief(ctx context.Context, unitID string, excludingUserID string) (bool, error) {
	return f(ctx, unitID, excludingUserID)
}

// =============================================================================
// ESCALATION RESOLVER
// =============================================================================

type EscalationResolver struct {
	Org OrgQuery
}

// FirstLevel returns the status a request enters on submission.
// StatusApproved means no validation is required at all.
func (er *EscalationResolver) FirstLevel(ctx context.Context, requester Actor) (Status, error) {
	switch {
	case requester.Role == RoleTeamChief:
		return StatusApproved, nil

	case requester.Role == RoleUnitChief, requester.UnitID == "", !requester.UnitActive:
		return StatusPendingTeamChief, nil

	default:
		hasChief, err := er.Org.HasActiveUnitChief(ctx, requester.UnitID, requester.ID)
		if err != nil {
			return "", err
		}
		if hasChief {
			return StatusPendingUnitChief, nil
		}
		return StatusPendingTeamChief, nil
	}
}

// NextLevel returns the status that follows an approval at the current
// pending status. Level 1 always escalates to level 2; level 2 is final.
func (er *EscalationResolver) NextLevel(current Status) (Status, error) {
	switch current {
	case StatusPendingUnitChief:
		return StatusPendingTeamChief, nil
	case StatusPendingTeamChief:
		return StatusApproved, nil
	default:
		return "", &InvalidStateError{Op: "escalate", Status: current}
	}
}
