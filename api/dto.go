/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's domain
  model from the external contract.

NAMING CONVENTION:
  - *DTO:     Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and in the engine, not in DTOs. DTOs
  are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/leave-engine/engine"
	"github.com/warp/leave-engine/store/sqlite"
)

// =============================================================================
// ORGANIZATION
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	UnitID    string `json:"unit_id,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`
}

func toEmployeeDTO(e sqlite.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      string(e.Role),
		UnitID:    e.UnitID,
		Active:    e.Active,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	UnitID string `json:"unit_id"`
	Active *bool  `json:"active"`
}

// UnitDTO represents an organizational unit.
type UnitDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// CreateUnitRequest is the request to create or update a unit.
type CreateUnitRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

// =============================================================================
// LEAVE TYPES AND HOLIDAYS
// =============================================================================

type LeaveTypeDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExcludesHolidays bool   `json:"excludes_holidays"`
}

type HolidayDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

type CreateHolidayRequest struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// RequestDTO represents a leave request in API responses.
type RequestDTO struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	LeaveTypeID     string          `json:"leave_type_id"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	StartPortion    string          `json:"start_portion"`
	EndPortion      string          `json:"end_portion"`
	DurationDays    string          `json:"duration_days"`
	Status          string          `json:"status"`
	Comment         string          `json:"comment,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	FinalizedAt     string          `json:"finalized_at,omitempty"`
	Validations     []ValidationDTO `json:"validations,omitempty"`
}

// ValidationDTO represents one validator decision.
type ValidationDTO struct {
	ValidatorID string `json:"validator_id"`
	Approved    bool   `json:"approved"`
	Comment     string `json:"comment,omitempty"`
	Level       int    `json:"level"`
	DecidedAt   string `json:"decided_at"`
}

func toRequestDTO(req *engine.LeaveRequest) RequestDTO {
	dto := RequestDTO{
		ID:              req.ID,
		OwnerID:         req.OwnerID,
		LeaveTypeID:     req.LeaveTypeID,
		StartDate:       req.StartDate.String(),
		EndDate:         req.EndDate.String(),
		StartPortion:    string(req.StartPortion),
		EndPortion:      string(req.EndPortion),
		DurationDays:    req.DurationDays.String(),
		Status:          string(req.Status),
		Comment:         req.Comment,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       req.UpdatedAt.Format(time.RFC3339),
	}
	if req.FinalizedAt != nil {
		dto.FinalizedAt = req.FinalizedAt.Format(time.RFC3339)
	}
	for _, v := range req.Validations {
		dto.Validations = append(dto.Validations, ValidationDTO{
			ValidatorID: v.ValidatorID,
			Approved:    v.Approved,
			Comment:     v.Comment,
			Level:       int(v.Level),
			DecidedAt:   v.DecidedAt.Format(time.RFC3339),
		})
	}
	return dto
}

// CreateRequestDTO is the body for creating or editing a draft.
type CreateRequestDTO struct {
	OwnerID      string `json:"owner_id"`
	LeaveTypeID  string `json:"leave_type_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartPortion string `json:"start_portion"`
	EndPortion   string `json:"end_portion"`
	Comment      string `json:"comment"`
}

// SubmitRequestDTO identifies the acting user for a submission.
type SubmitRequestDTO struct {
	ActorID string `json:"actor_id"`
}

// DecideRequestDTO is the body for a validator decision.
type DecideRequestDTO struct {
	ValidatorID string `json:"validator_id"`
	Approve     bool   `json:"approve"`
	Comment     string `json:"comment"`
}

// CancelRequestDTO identifies the administrator cancelling a request.
type CancelRequestDTO struct {
	ActorID string `json:"actor_id"`
}

// PreviewDTO is the response of the duration/conflict preview endpoint.
type PreviewDTO struct {
	DurationDays string       `json:"duration_days"`
	Conflicts    []RequestDTO `json:"conflicts,omitempty"`
}

// ErrorDTO is the uniform error envelope.
type ErrorDTO struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
