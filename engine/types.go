/*
Package engine implements the leave request approval workflow.

PURPOSE:
  This package contains the pure state machine and policies that move a
  leave request from draft to a final disposition through one or two
  validation levels. It owns no I/O: the host application loads the
  request and the actors' organizational placement, invokes the engine,
  and persists whatever the engine returns.

KEY CONCEPTS IN THIS FILE (types.go):
  - LeaveRequest:     The request entity with status, dates, and duration
  - ValidationRecord: An immutable entry recording one validator decision
  - DayPortion:       Full day / morning only / afternoon only
  - Status:           The workflow states, with an explicit transition table
  - Actor:            A flat snapshot of a user's role and unit placement

DESIGN PRINCIPLES:
  1. Purity: every operation is computed from fully-loaded snapshots;
     the engine never reaches through live object graphs
  2. Precision: decimal.Decimal for durations (0.5-day granularity)
  3. Explicitness: the acting user is always a parameter, never ambient
     session state; legal transitions live in one table
  4. Append-only: ValidationRecords are created, never mutated or deleted

USAGE:
  req := &engine.LeaveRequest{
      OwnerID:      "emp-1",
      StartDate:    engine.NewDate(2025, time.March, 10),
      EndDate:      engine.NewDate(2025, time.March, 12),
      StartPortion: engine.FullDay,
      EndPortion:   engine.FullDay,
      Status:       engine.StatusDraft,
  }
  err := lifecycle.Submit(ctx, req, requester, existing)

SEE ALSO:
  - lifecycle.go:  Submit/Decide state machine
  - escalation.go: Which approval levels apply to a requester
  - duration.go:   Business-day duration calculation
  - conflict.go:   Overlap detection against existing requests
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY PORTION - How much of a boundary day is requested
// =============================================================================

type DayPortion string

const (
	FullDay       DayPortion = "full_day"
	MorningOnly   DayPortion = "morning"
	AfternoonOnly DayPortion = "afternoon"
)

// Weight returns the fraction of a working day this portion consumes.
func (p DayPortion) Weight() decimal.Decimal {
	if p == MorningOnly || p == AfternoonOnly {
		return decimal.NewFromFloat(0.5)
	}
	return decimal.NewFromInt(1)
}

func (p DayPortion) Valid() bool {
	switch p {
	case FullDay, MorningOnly, AfternoonOnly:
		return true
	}
	return false
}

// =============================================================================
// STATUS - Workflow states and the transition table
// =============================================================================

type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingUnitChief Status = "pending_unit_chief"
	StatusPendingTeamChief Status = "pending_team_chief"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusCancelled        Status = "cancelled"
)

// transitions is the authoritative table of legal state changes.
// Illegal moves are rejected with InvalidStateError, never a silent
// fallthrough.
var transitions = map[Status][]Status{
	StatusDraft:            {StatusPendingUnitChief, StatusPendingTeamChief, StatusApproved, StatusCancelled},
	StatusPendingUnitChief: {StatusPendingTeamChief, StatusRejected, StatusCancelled},
	StatusPendingTeamChief: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:         {},
	StatusRejected:         {},
	StatusCancelled:        {},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// IsPending reports whether the request is waiting on a validator.
func (s Status) IsPending() bool {
	return s == StatusPendingUnitChief || s == StatusPendingTeamChief
}

// BlocksNewRequests reports whether a request in this status counts
// against overlap checks. Rejected and cancelled requests do not.
func (s Status) BlocksNewRequests() bool {
	return s != StatusRejected && s != StatusCancelled
}

// =============================================================================
// APPROVAL LEVELS AND ROLES
// =============================================================================

// Level is the approval level a validation discharges.
type Level int

const (
	LevelUnitChief Level = 1
	LevelTeamChief Level = 2
)

type Role string

const (
	RoleEmployee  Role = "employee"
	RoleUnitChief Role = "unit_chief"
	RoleTeamChief Role = "team_chief"
)

// ValidationLevel returns the approval level a role discharges when
// validating, or 0 for roles with no validation standing.
func (r Role) ValidationLevel() Level {
	switch r {
	case RoleUnitChief:
		return LevelUnitChief
	case RoleTeamChief:
		return LevelTeamChief
	}
	return 0
}

// PendingStatusFor maps an approval level to the status that waits on it.
func PendingStatusFor(level Level) Status {
	if level == LevelUnitChief {
		return StatusPendingUnitChief
	}
	return StatusPendingTeamChief
}

// LevelFor maps a pending status to the approval level it waits on.
func LevelFor(s Status) Level {
	if s == StatusPendingUnitChief {
		return LevelUnitChief
	}
	return LevelTeamChief
}

// =============================================================================
// ACTOR - Flat snapshot of a user's role and placement
// =============================================================================

// Actor is the requester/validator snapshot supplied by the host.
// UnitID is empty for users with no organizational unit; UnitActive is
// false when the unit is missing or has been deactivated.
type Actor struct {
	ID         string
	Role       Role
	UnitID     string
	UnitActive bool
}

// =============================================================================
// LEAVE REQUEST
// =============================================================================

type LeaveRequest struct {
	ID          string
	OwnerID     string
	LeaveTypeID string

	StartDate    Date
	EndDate      Date
	StartPortion DayPortion
	EndPortion   DayPortion

	// Computed at submission, 0.5-day granularity.
	DurationDays decimal.Decimal

	Status          Status
	Comment         string
	RejectionReason string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time // set at the final disposition

	// Ordered by level, at most one per level. Append-only.
	Validations []ValidationRecord
}

// Editable reports whether the owner may still modify or delete the request.
func (r *LeaveRequest) Editable() bool {
	return r.Status == StatusDraft || r.Status == StatusRejected
}

// ValidationAt returns the validation record for a level, if present.
func (r *LeaveRequest) ValidationAt(level Level) *ValidationRecord {
	for i := range r.Validations {
		if r.Validations[i].Level == level {
			return &r.Validations[i]
		}
	}
	return nil
}

// Overlaps reports whether two date ranges intersect.
// [s1,e1] overlaps [s2,e2] iff NOT (e2 < s1 OR s2 > e1).
func (r *LeaveRequest) Overlaps(other *LeaveRequest) bool {
	return !(other.EndDate.Before(r.StartDate) || other.StartDate.After(r.EndDate))
}

// =============================================================================
// VALIDATION RECORD - One validator decision, immutable once created
// =============================================================================

type ValidationRecord struct {
	RequestID   string
	ValidatorID string
	Approved    bool
	Comment     string
	Level       Level
	DecidedAt   time.Time
}
