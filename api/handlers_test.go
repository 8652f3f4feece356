/*
handlers_test.go - End-to-end tests for the request workflow API

Tests drive the full stack (router, handlers, engine, sqlite) over an
in-memory database seeded with the demo organization:
  - emp-dana   team chief
  - emp-marco  unit chief of unit-eng
  - emp-alice  employee in unit-eng
  - emp-bob    employee in unit-eng
  - emp-yuki   employee in unit-support (no unit chief)
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/store/sqlite"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, seedDemo(context.Background(), store))
	return NewRouter(NewHandler(store, nil, nil))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeRequest(t *testing.T, rec *httptest.ResponseRecorder) RequestDTO {
	t.Helper()
	var dto RequestDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	return dto
}

// createDraft posts a draft for the given owner over a Monday-Wednesday
// span in July 2025 unless dates are overridden.
func createDraft(t *testing.T, h http.Handler, ownerID, leaveType, start, end string) RequestDTO {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/requests", CreateRequestDTO{
		OwnerID:     ownerID,
		LeaveTypeID: leaveType,
		StartDate:   start,
		EndDate:     end,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeRequest(t, rec)
}

func submit(t *testing.T, h http.Handler, id, actorID string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, h, http.MethodPost, "/api/requests/"+id+"/submit", SubmitRequestDTO{ActorID: actorID})
}

func decide(t *testing.T, h http.Handler, id, validatorID string, approve bool, comment string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, h, http.MethodPost, "/api/requests/"+id+"/decide", DecideRequestDTO{
		ValidatorID: validatorID,
		Approve:     approve,
		Comment:     comment,
	})
}

// =============================================================================
// WORKFLOW PATHS
// =============================================================================

func TestWorkflow_EmployeeThroughBothLevels(t *testing.T) {
	h := newTestAPI(t)

	// GIVEN: A draft for a regular employee in a unit with a chief
	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-09")
	assert.Equal(t, "draft", draft.Status)

	// WHEN: The owner submits
	rec := submit(t, h, draft.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	submitted := decodeRequest(t, rec)

	// THEN: The request waits on the unit chief with the computed duration
	assert.Equal(t, "pending_unit_chief", submitted.Status)
	assert.Equal(t, "3", submitted.DurationDays)

	// WHEN: The unit chief approves
	rec = decide(t, h, draft.ID, "emp-marco", true, "fine by me")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "pending_team_chief", decodeRequest(t, rec).Status)

	// AND: The team chief approves
	rec = decide(t, h, draft.ID, "emp-dana", true, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	final := decodeRequest(t, rec)

	// THEN: The request is approved with a two-record trail
	assert.Equal(t, "approved", final.Status)
	assert.NotEmpty(t, final.FinalizedAt)
	require.Len(t, final.Validations, 2)
	assert.Equal(t, "emp-marco", final.Validations[0].ValidatorID)
	assert.Equal(t, 1, final.Validations[0].Level)
	assert.Equal(t, "emp-dana", final.Validations[1].ValidatorID)
	assert.Equal(t, 2, final.Validations[1].Level)
}

func TestWorkflow_UnitWithoutChiefSkipsFirstLevel(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-yuki", "type-paid", "2025-07-07", "2025-07-08")

	rec := submit(t, h, draft.ID, "emp-yuki")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "pending_team_chief", decodeRequest(t, rec).Status)
}

func TestWorkflow_TeamChiefOwnRequestAutoApproves(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-dana", "type-paid", "2025-07-07", "2025-07-08")

	rec := submit(t, h, draft.ID, "emp-dana")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	final := decodeRequest(t, rec)

	assert.Equal(t, "approved", final.Status)
	assert.NotEmpty(t, final.FinalizedAt)
	assert.Empty(t, final.Validations)
}

func TestWorkflow_RejectionNeedsCommentAndAllowsRework(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-09")
	rec := submit(t, h, draft.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code)

	// Rejection without a comment is refused
	rec = decide(t, h, draft.ID, "emp-marco", false, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// Rejection with a comment lands
	rec = decide(t, h, draft.ID, "emp-marco", false, "team is at capacity that week")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rejected := decodeRequest(t, rec)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "team is at capacity that week", rejected.RejectionReason)

	// The owner reworks the rejected request back into a draft
	rec = doJSON(t, h, http.MethodPut, "/api/requests/"+draft.ID, CreateRequestDTO{
		LeaveTypeID: "type-paid",
		StartDate:   "2025-07-14",
		EndDate:     "2025-07-15",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reworked := decodeRequest(t, rec)
	assert.Equal(t, "draft", reworked.Status)
	assert.Empty(t, reworked.RejectionReason)

	// And resubmits
	rec = submit(t, h, draft.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "pending_unit_chief", decodeRequest(t, rec).Status)
}

// =============================================================================
// GUARDS
// =============================================================================

func TestSubmit_RejectsOverlapWithOwnActiveRequest(t *testing.T) {
	h := newTestAPI(t)

	first := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-09")
	rec := submit(t, h, first.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code)

	second := createDraft(t, h, "emp-alice", "type-paid", "2025-07-09", "2025-07-10")
	rec = submit(t, h, second.ID, "emp-alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// The second request stays an editable draft
	rec = doJSON(t, h, http.MethodGet, "/api/requests/"+second.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "draft", decodeRequest(t, rec).Status)
}

func TestSubmit_OnlyOwnerMaySubmit(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")
	rec := submit(t, h, draft.ID, "emp-bob")
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestDecide_RequiresStandingAtCurrentLevel(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")
	rec := submit(t, h, draft.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code)

	// A plain employee has no standing
	rec = decide(t, h, draft.ID, "emp-bob", true, "")
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// The team chief cannot act while the unit level is pending
	rec = decide(t, h, draft.ID, "emp-dana", true, "")
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestDecide_OnDraftConflicts(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")
	rec := decide(t, h, draft.ID, "emp-marco", true, "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestDeleteRequest_OwnerAndStateRules(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")

	// actor_id is mandatory
	rec := doJSON(t, h, http.MethodDelete, "/api/requests/"+draft.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A different user cannot delete the draft
	rec = doJSON(t, h, http.MethodDelete, "/api/requests/"+draft.ID+"?actor_id=emp-bob", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The owner can
	rec = doJSON(t, h, http.MethodDelete, "/api/requests/"+draft.ID+"?actor_id=emp-alice", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Submitted requests are no longer deletable
	active := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")
	rec = submit(t, h, active.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, "/api/requests/"+active.ID+"?actor_id=emp-alice", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancel_IsAdministrative(t *testing.T) {
	h := newTestAPI(t)

	draft := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")
	rec := submit(t, h, draft.ID, "emp-alice")
	require.Equal(t, http.StatusOK, rec.Code)

	// Unit chiefs do not cancel
	rec = doJSON(t, h, http.MethodPost, "/api/requests/"+draft.ID+"/cancel", CancelRequestDTO{ActorID: "emp-marco"})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// The team chief does
	rec = doJSON(t, h, http.MethodPost, "/api/requests/"+draft.ID+"/cancel", CancelRequestDTO{ActorID: "emp-dana"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decodeRequest(t, rec)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotEmpty(t, cancelled.FinalizedAt)

	// Terminal requests cannot be cancelled again
	rec = doJSON(t, h, http.MethodPost, "/api/requests/"+draft.ID+"/cancel", CancelRequestDTO{ActorID: "emp-dana"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

// =============================================================================
// QUEUES AND PREVIEW
// =============================================================================

func TestPendingQueue_FiltersByValidatorStanding(t *testing.T) {
	h := newTestAPI(t)

	aliceReq := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-08")
	require.Equal(t, http.StatusOK, submit(t, h, aliceReq.ID, "emp-alice").Code)

	yukiReq := createDraft(t, h, "emp-yuki", "type-paid", "2025-07-07", "2025-07-08")
	require.Equal(t, http.StatusOK, submit(t, h, yukiReq.ID, "emp-yuki").Code)

	// The unit chief sees only requests from their own unit
	rec := doJSON(t, h, http.MethodGet, "/api/requests/pending?validator_id=emp-marco", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var marcoQueue []RequestDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&marcoQueue))
	require.Len(t, marcoQueue, 1)
	assert.Equal(t, aliceReq.ID, marcoQueue[0].ID)

	// The team chief sees the request that skipped the unit level
	rec = doJSON(t, h, http.MethodGet, "/api/requests/pending?validator_id=emp-dana", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var danaQueue []RequestDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&danaQueue))
	require.Len(t, danaQueue, 1)
	assert.Equal(t, yukiReq.ID, danaQueue[0].ID)

	// Employees have an empty queue
	rec = doJSON(t, h, http.MethodGet, "/api/requests/pending?validator_id=emp-bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bobQueue []RequestDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bobQueue))
	assert.Empty(t, bobQueue)
}

func TestPreview_DurationHonorsLeaveTypeHolidayRule(t *testing.T) {
	h := newTestAPI(t)

	// Company Day (2025-06-13, a Friday) is a seeded one-off holiday.
	preview := func(leaveType string) PreviewDTO {
		rec := doJSON(t, h, http.MethodPost, "/api/requests/preview", CreateRequestDTO{
			OwnerID:     "emp-alice",
			LeaveTypeID: leaveType,
			StartDate:   "2025-06-12",
			EndDate:     "2025-06-13",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var dto PreviewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		return dto
	}

	assert.Equal(t, "1", preview("type-paid").DurationDays)
	assert.Equal(t, "2", preview("type-unpaid").DurationDays)
}

func TestPreview_ReportsConflicts(t *testing.T) {
	h := newTestAPI(t)

	existing := createDraft(t, h, "emp-alice", "type-paid", "2025-07-07", "2025-07-09")
	require.Equal(t, http.StatusOK, submit(t, h, existing.ID, "emp-alice").Code)

	rec := doJSON(t, h, http.MethodPost, "/api/requests/preview", CreateRequestDTO{
		OwnerID:     "emp-alice",
		LeaveTypeID: "type-paid",
		StartDate:   "2025-07-09",
		EndDate:     "2025-07-10",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var dto PreviewDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))

	require.Len(t, dto.Conflicts, 1)
	assert.Equal(t, existing.ID, dto.Conflicts[0].ID)
}
