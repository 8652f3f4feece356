/*
conflict.go - Overlap detection against a requester's other requests

PURPOSE:
  Finds date-range overlaps between a candidate request and the same
  user's existing requests, to guard against double-booking. Rejected
  and cancelled requests never conflict.

The detector is advisory: it reports conflicts but does not block
anything by itself. Submit applies it as a validator; an edit screen can
call it directly with the request's own ID excluded.

SEE ALSO:
  - types.go:     LeaveRequest.Overlaps holds the interval math
  - lifecycle.go: Submit rejects on any reported conflict
*/
package engine

// ConflictDetector reports overlapping requests for the same user.
type ConflictDetector struct{}

// FindOverlaps returns every existing request whose date range overlaps
// the candidate's. Requests in Rejected or Cancelled status are skipped,
// as is the request identified by excludeID (use the candidate's own ID
// for edit-in-place checks; empty string excludes nothing).
func (ConflictDetector) FindOverlaps(candidate *LeaveRequest, existing []*LeaveRequest, excludeID string) []*LeaveRequest {
	var conflicts []*LeaveRequest
	for _, other := range existing {
		if other.ID != "" && (other.ID == excludeID || other.ID == candidate.ID) {
			continue
		}
		if !other.Status.BlocksNewRequests() {
			continue
		}
		if candidate.Overlaps(other) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}
