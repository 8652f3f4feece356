package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/leave-engine/engine"
)

func rangeReq(id string, status engine.Status, start, end engine.Date) *engine.LeaveRequest {
	return &engine.LeaveRequest{
		ID:           id,
		OwnerID:      "emp-1",
		StartDate:    start,
		EndDate:      end,
		StartPortion: engine.FullDay,
		EndPortion:   engine.FullDay,
		Status:       status,
	}
}

func TestConflict_OverlappingPending_Reported(t *testing.T) {
	// GIVEN: A pending request March 10-12
	// WHEN: Checking a candidate March 12-14
	// THEN: The shared boundary day is a conflict

	var detector engine.ConflictDetector
	existing := []*engine.LeaveRequest{
		rangeReq("req-1", engine.StatusPendingUnitChief, date(2025, time.March, 10), date(2025, time.March, 12)),
	}
	candidate := rangeReq("req-2", engine.StatusDraft, date(2025, time.March, 12), date(2025, time.March, 14))

	conflicts := detector.FindOverlaps(candidate, existing, "")
	assert.Len(t, conflicts, 1)
	assert.Equal(t, "req-1", conflicts[0].ID)
}

func TestConflict_DisjointRanges_NoConflict(t *testing.T) {
	var detector engine.ConflictDetector
	existing := []*engine.LeaveRequest{
		rangeReq("req-1", engine.StatusApproved, date(2025, time.March, 10), date(2025, time.March, 12)),
	}
	candidate := rangeReq("req-2", engine.StatusDraft, date(2025, time.March, 13), date(2025, time.March, 14))

	assert.Empty(t, detector.FindOverlaps(candidate, existing, ""))
}

func TestConflict_RejectedAndCancelled_Ignored(t *testing.T) {
	// Terminally negative requests never block a new booking.

	var detector engine.ConflictDetector
	existing := []*engine.LeaveRequest{
		rangeReq("req-1", engine.StatusRejected, date(2025, time.March, 10), date(2025, time.March, 12)),
		rangeReq("req-2", engine.StatusCancelled, date(2025, time.March, 11), date(2025, time.March, 13)),
	}
	candidate := rangeReq("req-3", engine.StatusDraft, date(2025, time.March, 10), date(2025, time.March, 12))

	assert.Empty(t, detector.FindOverlaps(candidate, existing, ""))
}

func TestConflict_ExcludeID_ForEditInPlace(t *testing.T) {
	// An edit check must not report the request as conflicting with itself.

	var detector engine.ConflictDetector
	existing := []*engine.LeaveRequest{
		rangeReq("req-1", engine.StatusPendingTeamChief, date(2025, time.March, 10), date(2025, time.March, 12)),
	}
	candidate := rangeReq("req-1", engine.StatusDraft, date(2025, time.March, 9), date(2025, time.March, 12))

	assert.Empty(t, detector.FindOverlaps(candidate, existing, "req-1"))
}

func TestConflict_ContainedRange_Reported(t *testing.T) {
	var detector engine.ConflictDetector
	existing := []*engine.LeaveRequest{
		rangeReq("req-1", engine.StatusApproved, date(2025, time.March, 1), date(2025, time.March, 31)),
	}
	candidate := rangeReq("req-2", engine.StatusDraft, date(2025, time.March, 10), date(2025, time.March, 11))

	assert.Len(t, detector.FindOverlaps(candidate, existing, ""), 1)
}
