/*
handlers.go - HTTP API handlers for the leave workflow host

PURPOSE:
  Exposes the workflow engine via REST. Handlers load fully-hydrated
  snapshots from the store, invoke the pure engine, persist the outcome,
  and fire notification triggers. The engine never sees HTTP or SQL.

ENDPOINTS:
  Organization:
    GET/POST   /api/employees            List / create employees
    GET        /api/employees/{id}       Employee details
    GET        /api/employees/{id}/requests  Request history
    GET/POST   /api/units                List / create units

  Configuration:
    GET/POST   /api/leave-types          Request categories
    GET/POST   /api/holidays             Holiday calendar
    DELETE     /api/holidays/{id}

  Workflow:
    POST       /api/requests             Create draft
    POST       /api/requests/preview     Duration + conflict preview
    GET        /api/requests/pending     Pending queue for a validator
    GET        /api/requests/{id}        Request with decision trail
    PUT        /api/requests/{id}        Edit draft (or rework a rejection)
    DELETE     /api/requests/{id}        Delete draft/rejected (owner only)
    POST       /api/requests/{id}/submit Enter the approval workflow
    POST       /api/requests/{id}/decide Approve or reject at current level
    POST       /api/requests/{id}/cancel Administrative cancellation

ERROR HANDLING:
  Engine error kinds map onto HTTP status codes:
  - 400: ValidationError (dates, portions, overlap, missing comment)
  - 403: UnauthorizedError (no standing, own request)
  - 404: Missing entity
  - 409: InvalidStateError, concurrent modification, non-editable
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware; the acting user is a declared body
  field. Identity and credentials belong to the embedding deployment.

SEE ALSO:
  - dto.go:    Request/response data structures
  - notify.go: Notification triggers fired after state changes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/leave-engine/engine"
	"github.com/warp/leave-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Notifier Notifier

	// Calendar is the weekly workday pattern without holidays; handlers
	// attach the store's holiday calendar per leave type.
	Calendar *engine.WorkingCalendar
}

// NewHandler creates a handler over the given store.
func NewHandler(store *sqlite.Store, calendar *engine.WorkingCalendar, notifier Notifier) *Handler {
	if calendar == nil {
		calendar = engine.NewWorkingCalendar()
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Handler{Store: store, Notifier: notifier, Calendar: calendar}
}

// lifecycleFor builds the engine over the calendar the leave type calls
// for: holiday-aware by default, weekends-only when the type counts
// holidays as consumable days.
func (h *Handler) lifecycleFor(lt *sqlite.LeaveType) *engine.Lifecycle {
	calendar := h.Calendar.WithHolidays(h.Store)
	if lt != nil && !lt.ExcludesHolidays {
		calendar = h.Calendar
	}
	return engine.NewLifecycle(calendar, h.Store)
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates or updates an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	role := engine.Role(req.Role)
	switch role {
	case engine.RoleEmployee, engine.RoleUnitChief, engine.RoleTeamChief:
	default:
		writeError(w, http.StatusBadRequest, "Invalid role (use employee, unit_chief, team_chief)", nil)
		return
	}

	emp := sqlite.Employee{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
		UnitID: req.UnitID,
		Active: req.Active == nil || *req.Active,
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// ListEmployeeRequests returns a user's request history.
func (h *Handler) ListEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListRequestsByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dtos := make([]RequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Store.ListUnits(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list units", err)
		return
	}

	dtos := make([]UnitDTO, len(units))
	for i, u := range units {
		dtos[i] = UnitDTO{ID: u.ID, Name: u.Name, Active: u.Active}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	unit := sqlite.Unit{
		ID:     req.ID,
		Name:   req.Name,
		Active: req.Active == nil || *req.Active,
	}
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}

	if err := h.Store.SaveUnit(r.Context(), unit); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save unit", err)
		return
	}
	writeJSON(w, http.StatusCreated, UnitDTO{ID: unit.ID, Name: unit.Name, Active: unit.Active})
}

// =============================================================================
// LEAVE TYPE HANDLERS
// =============================================================================

func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.ListLeaveTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave types", err)
		return
	}

	dtos := make([]LeaveTypeDTO, len(types))
	for i, lt := range types {
		dtos[i] = LeaveTypeDTO{ID: lt.ID, Name: lt.Name, ExcludesHolidays: lt.ExcludesHolidays}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req LeaveTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	lt := sqlite.LeaveType{ID: req.ID, Name: req.Name, ExcludesHolidays: req.ExcludesHolidays}
	if err := h.Store.SaveLeaveType(r.Context(), lt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave type", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hd := range holidays {
		dtos[i] = HolidayDTO{ID: hd.ID, Date: hd.Date.String(), Name: hd.Name, Recurring: hd.Recurring}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := sqlite.Holiday{
		ID:        uuid.NewString(),
		Date:      date,
		Name:      req.Name,
		Recurring: req.Recurring,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID: holiday.ID, Date: holiday.Date.String(), Name: holiday.Name, Recurring: holiday.Recurring,
	})
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Holiday not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REQUEST HANDLERS - DRAFT MANAGEMENT
// =============================================================================

// CreateRequest creates a new draft.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, ok := h.buildRequest(w, r, &body)
	if !ok {
		return
	}
	req.ID = uuid.NewString()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := h.Store.CreateRequest(r.Context(), req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(req))
}

// GetRequest returns a request with its decision trail.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.Store.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// UpdateRequest edits a draft (or reworks a rejected request back into a
// draft). Anything past those states is immutable.
func (h *Handler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Store.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}

	var body CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.OwnerID != "" && body.OwnerID != existing.OwnerID {
		writeError(w, http.StatusForbidden, "Only the owner edits a request", nil)
		return
	}
	body.OwnerID = existing.OwnerID

	req, ok := h.buildRequest(w, r, &body)
	if !ok {
		return
	}
	req.ID = existing.ID

	if err := h.Store.UpdateDraft(r.Context(), req); err != nil {
		if errors.Is(err, sqlite.ErrNotEditable) {
			writeError(w, http.StatusConflict, "Request is no longer editable", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update request", err)
		return
	}

	updated, err := h.Store.GetRequest(r.Context(), req.ID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload request", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(updated))
}

// DeleteRequest removes a draft or rejected request, owner only.
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("actor_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "actor_id query parameter is required", nil)
		return
	}

	err := h.Store.DeleteRequest(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotEditable) {
			writeError(w, http.StatusConflict, "Request is not deletable by this user", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete request", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewRequest computes duration and conflicts without persisting
// anything, for edit screens.
func (h *Handler) PreviewRequest(w http.ResponseWriter, r *http.Request) {
	var body CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, ok := h.buildRequest(w, r, &body)
	if !ok {
		return
	}

	lt, err := h.Store.GetLeaveType(r.Context(), req.LeaveTypeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave type", err)
		return
	}
	lifecycle := h.lifecycleFor(lt)

	duration, err := lifecycle.Duration.Compute(req.StartDate, req.EndDate, req.StartPortion, req.EndPortion)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	existing, err := h.Store.ListRequestsByOwner(r.Context(), req.OwnerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load existing requests", err)
		return
	}

	preview := PreviewDTO{DurationDays: duration.String()}
	for _, conflict := range lifecycle.Conflicts.FindOverlaps(req, existing, req.ID) {
		preview.Conflicts = append(preview.Conflicts, toRequestDTO(conflict))
	}
	writeJSON(w, http.StatusOK, preview)
}

// buildRequest parses and validates the shared fields of create/update
// bodies. On failure it writes the error response and returns ok=false.
func (h *Handler) buildRequest(w http.ResponseWriter, r *http.Request, body *CreateRequestDTO) (*engine.LeaveRequest, bool) {
	owner, err := h.Store.GetEmployee(r.Context(), body.OwnerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load owner", err)
		return nil, false
	}
	if owner == nil {
		writeError(w, http.StatusNotFound, "Owner not found", nil)
		return nil, false
	}

	start, err := engine.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return nil, false
	}
	end, err := engine.ParseDate(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return nil, false
	}

	startPortion := engine.DayPortion(body.StartPortion)
	endPortion := engine.DayPortion(body.EndPortion)
	if body.StartPortion == "" {
		startPortion = engine.FullDay
	}
	if body.EndPortion == "" {
		endPortion = engine.FullDay
	}
	if !startPortion.Valid() || !endPortion.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid portion (use full_day, morning, afternoon)", nil)
		return nil, false
	}

	return &engine.LeaveRequest{
		OwnerID:      owner.ID,
		LeaveTypeID:  body.LeaveTypeID,
		StartDate:    start,
		EndDate:      end,
		StartPortion: startPortion,
		EndPortion:   endPortion,
		Status:       engine.StatusDraft,
		Comment:      body.Comment,
	}, true
}

// =============================================================================
// REQUEST HANDLERS - WORKFLOW
// =============================================================================

// SubmitRequest moves a draft into the approval workflow.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var body SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, owner, ok := h.loadRequestAndOwner(w, r)
	if !ok {
		return
	}

	lt, err := h.Store.GetLeaveType(r.Context(), req.LeaveTypeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave type", err)
		return
	}

	existing, err := h.Store.ListRequestsByOwner(r.Context(), req.OwnerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load existing requests", err)
		return
	}

	actor := owner.Actor()
	if body.ActorID != "" {
		actor.ID = body.ActorID
	}

	lifecycle := h.lifecycleFor(lt)
	if err := lifecycle.Submit(r.Context(), req, actor, existing); err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.Store.SaveSubmission(r.Context(), req); err != nil {
		writeStoreError(w, err)
		return
	}

	h.notifyAfterTransition(r, req, owner)
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// DecideRequest records one validator decision at the current level.
func (h *Handler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	var body DecideRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.ValidatorID == "" {
		writeError(w, http.StatusBadRequest, "validator_id is required", nil)
		return
	}

	req, owner, ok := h.loadRequestAndOwner(w, r)
	if !ok {
		return
	}

	validator, err := h.Store.GetEmployee(r.Context(), body.ValidatorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load validator", err)
		return
	}
	if validator == nil {
		writeError(w, http.StatusNotFound, "Validator not found", nil)
		return
	}

	lt, err := h.Store.GetLeaveType(r.Context(), req.LeaveTypeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave type", err)
		return
	}

	previous := req.Status
	lifecycle := h.lifecycleFor(lt)
	record, err := lifecycle.Decide(r.Context(), req, owner.Actor(), validator.Actor(), body.Approve, body.Comment)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.Store.SaveDecision(r.Context(), req, previous, record, uuid.NewString()); err != nil {
		writeStoreError(w, err)
		return
	}

	h.notifyAfterTransition(r, req, owner)
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// CancelRequest is the administrative exit: team chiefs only.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	var body CancelRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	actor, err := h.Store.GetEmployee(r.Context(), body.ActorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load actor", err)
		return
	}
	if actor == nil || actor.Role != engine.RoleTeamChief {
		writeError(w, http.StatusForbidden, "Cancellation is an administrative action", nil)
		return
	}

	req, owner, ok := h.loadRequestAndOwner(w, r)
	if !ok {
		return
	}

	previous := req.Status
	lifecycle := h.lifecycleFor(nil)
	if err := lifecycle.Cancel(req); err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.Store.SaveCancellation(r.Context(), req, previous); err != nil {
		writeStoreError(w, err)
		return
	}

	h.Notifier.RequestFinalized(req, owner)
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// ListPendingRequests returns the queue a validator may act on.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	validatorID := r.URL.Query().Get("validator_id")
	if validatorID == "" {
		writeError(w, http.StatusBadRequest, "validator_id query parameter is required", nil)
		return
	}

	validator, err := h.Store.GetEmployee(r.Context(), validatorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load validator", err)
		return
	}
	if validator == nil {
		writeError(w, http.StatusNotFound, "Validator not found", nil)
		return
	}

	level := validator.Role.ValidationLevel()
	if level == 0 {
		writeJSON(w, http.StatusOK, []RequestDTO{})
		return
	}

	pending, err := h.Store.ListPendingByStatus(r.Context(), engine.PendingStatusFor(level))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", err)
		return
	}

	var authz engine.AuthorizationPolicy
	dtos := []RequestDTO{}
	for _, req := range pending {
		owner, err := h.Store.GetEmployee(r.Context(), req.OwnerID)
		if err != nil || owner == nil {
			continue
		}
		if authz.CanValidate(req, owner.Actor(), validator.Actor()) {
			dtos = append(dtos, toRequestDTO(req))
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (h *Handler) loadRequestAndOwner(w http.ResponseWriter, r *http.Request) (*engine.LeaveRequest, *sqlite.Employee, bool) {
	req, err := h.Store.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return nil, nil, false
	}
	if req == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return nil, nil, false
	}

	owner, err := h.Store.GetEmployee(r.Context(), req.OwnerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load owner", err)
		return nil, nil, false
	}
	if owner == nil {
		writeError(w, http.StatusNotFound, "Request owner not found", nil)
		return nil, nil, false
	}
	return req, owner, true
}

// notifyAfterTransition fires the notification triggers: next validators
// on a pending level, the owner on a final disposition.
func (h *Handler) notifyAfterTransition(r *http.Request, req *engine.LeaveRequest, owner *sqlite.Employee) {
	if req.Status.IsPending() {
		validators, err := h.Store.ListValidatorsFor(r.Context(), engine.LevelFor(req.Status), owner.UnitID)
		if err == nil {
			h.Notifier.RequestAwaitingValidation(req, validators)
		}
		return
	}
	if req.Status.IsTerminal() {
		h.Notifier.RequestFinalized(req, owner)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	dto := ErrorDTO{Error: msg}
	if err != nil {
		dto.Details = err.Error()
	}
	writeJSON(w, status, dto)
}

// writeEngineError maps engine error kinds onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	case errors.Is(err, engine.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "Not authorized", err)
	case errors.Is(err, engine.ErrInvalidState):
		writeError(w, http.StatusConflict, "Invalid state for operation", err)
	default:
		writeError(w, http.StatusInternalServerError, "Operation failed", err)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sqlite.ErrStaleRequest):
		writeError(w, http.StatusConflict, "Request changed concurrently, reload and retry", err)
	case errors.Is(err, sqlite.ErrNotEditable):
		writeError(w, http.StatusConflict, "Request is not editable", err)
	default:
		writeError(w, http.StatusInternalServerError, "Persistence failed", err)
	}
}
