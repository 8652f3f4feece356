/*
sqlite_test.go - Store tests over an in-memory database

Focus areas:
- Org queries feeding the escalation resolver
- Holiday lookups feeding the working calendar
- Status-guarded writes: concurrent submissions and decisions must
  surface ErrStaleRequest instead of double-advancing a request
- Draft edit and delete guards
*/
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func saveDraft(t *testing.T, store *Store, id, ownerID string) *engine.LeaveRequest {
	t.Helper()
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	req := &engine.LeaveRequest{
		ID:           id,
		OwnerID:      ownerID,
		LeaveTypeID:  "type-paid",
		StartDate:    engine.NewDate(2025, time.March, 10),
		EndDate:      engine.NewDate(2025, time.March, 12),
		StartPortion: engine.FullDay,
		EndPortion:   engine.FullDay,
		DurationDays: decimal.Zero,
		Status:       engine.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.CreateRequest(context.Background(), req))
	return req
}

// =============================================================================
// ORGANIZATION QUERIES
// =============================================================================

func TestHasActiveUnitChief(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUnit(ctx, Unit{ID: "u-1", Name: "Engineering", Active: true}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{
		ID: "uc-1", Name: "Chief", Role: engine.RoleUnitChief, UnitID: "u-1", Active: true,
	}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{
		ID: "uc-2", Name: "Retired Chief", Role: engine.RoleUnitChief, UnitID: "u-2", Active: false,
	}))

	has, err := store.HasActiveUnitChief(ctx, "u-1", "")
	require.NoError(t, err)
	assert.True(t, has)

	// The requester themselves does not count as their own chief
	has, err = store.HasActiveUnitChief(ctx, "u-1", "uc-1")
	require.NoError(t, err)
	assert.False(t, has)

	// Inactive chiefs do not count
	has, err = store.HasActiveUnitChief(ctx, "u-2", "")
	require.NoError(t, err)
	assert.False(t, has)

	// Chiefs of a deactivated unit do not count either
	require.NoError(t, store.SaveUnit(ctx, Unit{ID: "u-3", Name: "Closed", Active: false}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{
		ID: "uc-3", Name: "Stranded Chief", Role: engine.RoleUnitChief, UnitID: "u-3", Active: true,
	}))
	has, err = store.HasActiveUnitChief(ctx, "u-3", "")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetEmployee_JoinsUnitActivity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUnit(ctx, Unit{ID: "u-1", Name: "Engineering", Active: true}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{
		ID: "emp-1", Name: "Alice", Role: engine.RoleEmployee, UnitID: "u-1", Active: true,
	}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{
		ID: "emp-2", Name: "Bob", Role: engine.RoleEmployee, Active: true,
	}))

	placed, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.True(t, placed.UnitActive)
	assert.True(t, placed.Actor().UnitActive)

	unplaced, err := store.GetEmployee(ctx, "emp-2")
	require.NoError(t, err)
	require.NotNil(t, unplaced)
	assert.False(t, unplaced.UnitActive)
}

func TestListValidatorsFor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmployee(ctx, Employee{ID: "tc-1", Role: engine.RoleTeamChief, Active: true}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{ID: "uc-1", Role: engine.RoleUnitChief, UnitID: "u-1", Active: true}))
	require.NoError(t, store.SaveEmployee(ctx, Employee{ID: "uc-9", Role: engine.RoleUnitChief, UnitID: "u-9", Active: true}))

	unitLevel, err := store.ListValidatorsFor(ctx, engine.LevelUnitChief, "u-1")
	require.NoError(t, err)
	require.Len(t, unitLevel, 1)
	assert.Equal(t, "uc-1", unitLevel[0].ID)

	teamLevel, err := store.ListValidatorsFor(ctx, engine.LevelTeamChief, "u-1")
	require.NoError(t, err)
	require.Len(t, teamLevel, 1)
	assert.Equal(t, "tc-1", teamLevel[0].ID)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestIsHoliday_FixedAndRecurring(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveHoliday(ctx, Holiday{
		ID: "h-1", Date: engine.NewDate(2025, time.June, 13), Name: "Company Day",
	}))
	require.NoError(t, store.SaveHoliday(ctx, Holiday{
		ID: "h-2", Date: engine.NewDate(2025, time.December, 25), Name: "Christmas", Recurring: true,
	}))

	assert.True(t, store.IsHoliday(engine.NewDate(2025, time.June, 13)))
	assert.False(t, store.IsHoliday(engine.NewDate(2026, time.June, 13)), "fixed holidays do not recur")

	assert.True(t, store.IsHoliday(engine.NewDate(2025, time.December, 25)))
	assert.True(t, store.IsHoliday(engine.NewDate(2031, time.December, 25)), "recurring holidays apply every year")

	assert.False(t, store.IsHoliday(engine.NewDate(2025, time.June, 12)))
}

// =============================================================================
// STATUS-GUARDED WRITES
// =============================================================================

func TestSaveSubmission_SecondWriterGetsStale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := saveDraft(t, store, "req-1", "emp-1")

	req.Status = engine.StatusPendingUnitChief
	req.DurationDays = decimal.NewFromInt(3)
	require.NoError(t, store.SaveSubmission(ctx, req))

	// A second submission computed from the same draft snapshot
	assert.ErrorIs(t, store.SaveSubmission(ctx, req), ErrStaleRequest)
}

func TestSaveDecision_PersistsRecordAtomically(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := saveDraft(t, store, "req-1", "emp-1")

	req.Status = engine.StatusPendingUnitChief
	require.NoError(t, store.SaveSubmission(ctx, req))

	record := &engine.ValidationRecord{
		RequestID:   req.ID,
		ValidatorID: "uc-1",
		Approved:    true,
		Level:       engine.LevelUnitChief,
		DecidedAt:   time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC),
	}
	req.Status = engine.StatusPendingTeamChief
	require.NoError(t, store.SaveDecision(ctx, req, engine.StatusPendingUnitChief, record, "val-1"))

	loaded, err := store.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, engine.StatusPendingTeamChief, loaded.Status)
	require.Len(t, loaded.Validations, 1)
	assert.Equal(t, "uc-1", loaded.Validations[0].ValidatorID)

	// A racing decision computed from the already-consumed status must
	// fail and leave no second record behind
	err = store.SaveDecision(ctx, req, engine.StatusPendingUnitChief, record, "val-2")
	assert.ErrorIs(t, err, ErrStaleRequest)

	loaded, err = store.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Validations, 1)
}

func TestSaveCancellation_GuardsOnPreviousStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := saveDraft(t, store, "req-1", "emp-1")

	req.Status = engine.StatusCancelled
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	req.FinalizedAt = &now
	require.NoError(t, store.SaveCancellation(ctx, req, engine.StatusDraft))

	loaded, err := store.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCancelled, loaded.Status)
	require.NotNil(t, loaded.FinalizedAt)

	assert.ErrorIs(t, store.SaveCancellation(ctx, req, engine.StatusDraft), ErrStaleRequest)
}

// =============================================================================
// DRAFT EDIT AND DELETE GUARDS
// =============================================================================

func TestUpdateDraft_ReworkClearsRejectionState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := saveDraft(t, store, "req-1", "emp-1")

	// Walk the request into a rejection with one validation record
	req.Status = engine.StatusPendingUnitChief
	require.NoError(t, store.SaveSubmission(ctx, req))
	req.Status = engine.StatusRejected
	req.RejectionReason = "bad timing"
	record := &engine.ValidationRecord{
		RequestID: req.ID, ValidatorID: "uc-1", Level: engine.LevelUnitChief,
		DecidedAt: time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveDecision(ctx, req, engine.StatusPendingUnitChief, record, "val-1"))

	// Rework with new dates
	req.StartDate = engine.NewDate(2025, time.March, 17)
	req.EndDate = engine.NewDate(2025, time.March, 18)
	require.NoError(t, store.UpdateDraft(ctx, req))

	loaded, err := store.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusDraft, loaded.Status)
	assert.Empty(t, loaded.RejectionReason)
	assert.Nil(t, loaded.FinalizedAt)
	assert.Empty(t, loaded.Validations, "rework starts a fresh validation trail")
	assert.Equal(t, "2025-03-17", loaded.StartDate.String())
}

func TestUpdateDraft_PendingRequestIsImmutable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := saveDraft(t, store, "req-1", "emp-1")

	req.Status = engine.StatusPendingUnitChief
	require.NoError(t, store.SaveSubmission(ctx, req))

	assert.ErrorIs(t, store.UpdateDraft(ctx, req), ErrNotEditable)
}

func TestDeleteRequest_OwnerAndStatusGuards(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := saveDraft(t, store, "req-1", "emp-1")

	assert.ErrorIs(t, store.DeleteRequest(ctx, req.ID, "emp-2"), ErrNotEditable)
	require.NoError(t, store.DeleteRequest(ctx, req.ID, "emp-1"))

	loaded, err := store.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Submitted requests survive delete attempts
	active := saveDraft(t, store, "req-2", "emp-1")
	active.Status = engine.StatusPendingTeamChief
	require.NoError(t, store.SaveSubmission(ctx, active))
	assert.ErrorIs(t, store.DeleteRequest(ctx, active.ID, "emp-1"), ErrNotEditable)
}
