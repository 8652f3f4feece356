/*
notify.go - Notification triggers emitted by the host after engine calls

PURPOSE:
  The engine itself never sends anything; it returns the new status and
  the host decides who needs to hear about it:
  - After Submit, the validators with standing at the new pending level.
  - After an approval that escalates, the validators at the next level.
  - After a final disposition, the requester.

  Delivery mechanics (SMTP, templates) are entirely outside this
  codebase; implementations of Notifier bridge to whatever transport
  the deployment uses.

SEE ALSO:
  - handlers.go: Calls these triggers after Submit/Decide/Cancel
*/
package api

import (
	"log"

	"github.com/warp/leave-engine/engine"
	"github.com/warp/leave-engine/store/sqlite"
)

// Notifier receives workflow events the host should fan out.
type Notifier interface {
	// RequestAwaitingValidation fires when a request enters a pending
	// level; validators are the employees with standing at that level.
	RequestAwaitingValidation(req *engine.LeaveRequest, validators []sqlite.Employee)

	// RequestFinalized fires when a request reaches a terminal status.
	RequestFinalized(req *engine.LeaveRequest, owner *sqlite.Employee)
}

// LogNotifier writes notification triggers to the server log. It stands
// in for a mail bridge in development and tests.
type LogNotifier struct{}

func (LogNotifier) RequestAwaitingValidation(req *engine.LeaveRequest, validators []sqlite.Employee) {
	for _, v := range validators {
		log.Printf("notify: request %s (%s to %s) awaits validation by %s",
			req.ID, req.StartDate, req.EndDate, v.ID)
	}
}

func (LogNotifier) RequestFinalized(req *engine.LeaveRequest, owner *sqlite.Employee) {
	if owner == nil {
		return
	}
	log.Printf("notify: request %s for %s finalized as %s", req.ID, owner.ID, req.Status)
}
