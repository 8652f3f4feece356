/*
lifecycle.go - The request state machine

PURPOSE:
  Owns every Status change a leave request goes through:

    Draft ──Submit──▶ PendingUnitChief ──approve──▶ PendingTeamChief
      │                      │                            │
      │                   reject                    approve/reject
      │                      ▼                            ▼
      └──(team chief)──▶ Approved                 Approved / Rejected

  Submit validates the request (dates, duration, conflicts) and asks the
  escalation resolver for the first pending level. Decide gates on the
  authorization policy, appends exactly one ValidationRecord, and either
  terminates (Rejected) or escalates toward Approved. Cancel is the
  administrative exit; the engine only defines it and treats Cancelled
  as terminal everywhere.

PURITY:
  Every operation reads a fully-loaded snapshot, validates, and mutates
  the in-memory request as one logical unit. No I/O happens here; the
  host persists the outcome and serializes concurrent operations on the
  same request identity.

ERROR CONTRACT:
  InvalidStateError  - operation not legal from the current status
  UnauthorizedError  - validator without standing, or own request
  ValidationError    - bad dates, zero working days, overlap, missing
                       rejection comment

SEE ALSO:
  - escalation.go: FirstLevel/NextLevel
  - duration.go:   DurationDays computation during Submit
  - conflict.go:   Overlap check during Submit
  - authz.go:      CanValidate gate inside Decide
*/
package engine

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// LIFECYCLE - Submit / Decide / Cancel
// =============================================================================

type Lifecycle struct {
	Escalation *EscalationResolver
	Duration   *DurationCalculator
	Conflicts  ConflictDetector
	Authz      AuthorizationPolicy

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewLifecycle wires the engine over a working calendar and org query.
func NewLifecycle(calendar *WorkingCalendar, org OrgQuery) *Lifecycle {
	return &Lifecycle{
		Escalation: &EscalationResolver{Org: org},
		Duration:   NewDurationCalculator(calendar),
	}
}

func (l *Lifecycle) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// =============================================================================
// SUBMIT - Draft -> first pending level (or immediate approval)
// =============================================================================

// Submit moves a draft into the approval workflow. It computes
// DurationDays, rejects overlaps with the requester's existing requests,
// and assigns the first pending status. A team chief's own request
// approves immediately, with no validation record.
//
// existing is the requester's other requests, as loaded by the host;
// pass nil to skip the overlap check.
func (l *Lifecycle) Submit(ctx context.Context, req *LeaveRequest, requester Actor, existing []*LeaveRequest) error {
	if req.Status != StatusDraft {
		return &InvalidStateError{Op: "submit", Status: req.Status}
	}
	if requester.ID != req.OwnerID {
		return &UnauthorizedError{
			ValidatorID: requester.ID,
			RequestID:   req.ID,
			Status:      req.Status,
			Reason:      "only the owner submits a request",
		}
	}

	duration, err := l.Duration.Compute(req.StartDate, req.EndDate, req.StartPortion, req.EndPortion)
	if err != nil {
		return err
	}
	if !duration.IsPositive() {
		return &ValidationError{
			Code:    "zero_working_days",
			Message: fmt.Sprintf("range %s to %s contains no working days", req.StartDate, req.EndDate),
		}
	}

	if conflicts := l.Conflicts.FindOverlaps(req, existing, req.ID); len(conflicts) > 0 {
		return &ValidationError{
			Code:    "overlapping_request",
			Message: fmt.Sprintf("request overlaps %d existing request(s), first: %s to %s", len(conflicts), conflicts[0].StartDate, conflicts[0].EndDate),
		}
	}

	first, err := l.Escalation.FirstLevel(ctx, requester)
	if err != nil {
		return fmt.Errorf("failed to resolve first approval level: %w", err)
	}

	now := l.now()
	req.DurationDays = duration
	req.Status = first
	req.UpdatedAt = now
	if first == StatusApproved {
		req.FinalizedAt = &now
	}
	return nil
}

// =============================================================================
// DECIDE - One validator decision at the current pending level
// =============================================================================

// Decide records a validator's decision on a pending request. It appends
// exactly one ValidationRecord for the current level, then either
// terminates the request (rejection) or advances it to the next level.
// A rejection requires a non-empty comment, which becomes the request's
// RejectionReason.
//
// owner is the requester's snapshot, used for the level-1 unit match.
func (l *Lifecycle) Decide(ctx context.Context, req *LeaveRequest, owner Actor, validator Actor, approve bool, comment string) (*ValidationRecord, error) {
	if !req.Status.IsPending() {
		return nil, &InvalidStateError{Op: "decide", Status: req.Status}
	}
	if validator.ID == req.OwnerID {
		return nil, &UnauthorizedError{
			ValidatorID: validator.ID,
			RequestID:   req.ID,
			Status:      req.Status,
			Reason:      "own request",
		}
	}
	if !l.Authz.CanValidate(req, owner, validator) {
		return nil, &UnauthorizedError{
			ValidatorID: validator.ID,
			RequestID:   req.ID,
			Status:      req.Status,
			Reason:      "no standing for current level",
		}
	}
	if !approve && comment == "" {
		return nil, &ValidationError{
			Code:    "missing_rejection_comment",
			Message: "a rejection must carry a non-empty comment",
		}
	}

	level := LevelFor(req.Status)
	if req.ValidationAt(level) != nil {
		return nil, &InvalidStateError{Op: "decide", Status: req.Status}
	}

	now := l.now()
	record := ValidationRecord{
		RequestID:   req.ID,
		ValidatorID: validator.ID,
		Approved:    approve,
		Comment:     comment,
		Level:       level,
		DecidedAt:   now,
	}
	req.Validations = append(req.Validations, record)
	req.UpdatedAt = now

	if !approve {
		req.Status = StatusRejected
		req.RejectionReason = comment
		req.FinalizedAt = &now
		return &record, nil
	}

	next, err := l.Escalation.NextLevel(req.Status)
	if err != nil {
		return nil, err
	}
	req.Status = next
	if next == StatusApproved {
		req.FinalizedAt = &now
	}
	return &record, nil
}

// =============================================================================
// CANCEL - Administrative exit
// =============================================================================

// Cancel terminates a non-terminal request. This is an administrative
// action outside the normal approve/reject path; it appends no
// validation record.
func (l *Lifecycle) Cancel(req *LeaveRequest) error {
	if req.Status.IsTerminal() {
		return &InvalidStateError{Op: "cancel", Status: req.Status}
	}
	req.Status = StatusCancelled
	req.UpdatedAt = l.now()
	at := req.UpdatedAt
	req.FinalizedAt = &at
	return nil
}
