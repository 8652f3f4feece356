/*
seed.go - Demo organization for development and manual testing

PURPOSE:
  Loads a small organization that exercises every escalation path:
  - A team chief at the top.
  - Engineering with a unit chief and two employees.
  - Support with employees but no unit chief, so their requests skip
    straight to the team chief.
  - Leave types with and without holiday exclusion, plus a few fixed
    and recurring holidays.

  Seeding is idempotent; entities are upserted by fixed IDs.

SEE ALSO:
  - server.go: Mounts POST /api/admin/seed
*/
package api

import (
	"context"
	"net/http"

	"github.com/warp/leave-engine/engine"
	"github.com/warp/leave-engine/store/sqlite"
)

// SeedDemoData loads the demo organization.
func (h *Handler) SeedDemoData(w http.ResponseWriter, r *http.Request) {
	if err := seedDemo(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed demo data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

func seedDemo(ctx context.Context, store *sqlite.Store) error {
	units := []sqlite.Unit{
		{ID: "unit-eng", Name: "Engineering", Active: true},
		{ID: "unit-support", Name: "Support", Active: true},
	}
	for _, u := range units {
		if err := store.SaveUnit(ctx, u); err != nil {
			return err
		}
	}

	employees := []sqlite.Employee{
		{ID: "emp-dana", Name: "Dana Whitmore", Email: "dana@example.com", Role: engine.RoleTeamChief, Active: true},
		{ID: "emp-marco", Name: "Marco Silva", Email: "marco@example.com", Role: engine.RoleUnitChief, UnitID: "unit-eng", Active: true},
		{ID: "emp-alice", Name: "Alice Chen", Email: "alice@example.com", Role: engine.RoleEmployee, UnitID: "unit-eng", Active: true},
		{ID: "emp-bob", Name: "Bob Kovacs", Email: "bob@example.com", Role: engine.RoleEmployee, UnitID: "unit-eng", Active: true},
		{ID: "emp-yuki", Name: "Yuki Tanaka", Email: "yuki@example.com", Role: engine.RoleEmployee, UnitID: "unit-support", Active: true},
	}
	for _, e := range employees {
		if err := store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	types := []sqlite.LeaveType{
		{ID: "type-paid", Name: "Paid Leave", ExcludesHolidays: true},
		{ID: "type-sick", Name: "Sick Leave", ExcludesHolidays: true},
		{ID: "type-unpaid", Name: "Unpaid Leave", ExcludesHolidays: false},
	}
	for _, lt := range types {
		if err := store.SaveLeaveType(ctx, lt); err != nil {
			return err
		}
	}

	holidays := []sqlite.Holiday{
		{ID: "hol-new-year", Date: engine.NewDate(2025, 1, 1), Name: "New Year's Day", Recurring: true},
		{ID: "hol-labor-day", Date: engine.NewDate(2025, 5, 1), Name: "Labor Day", Recurring: true},
		{ID: "hol-christmas", Date: engine.NewDate(2025, 12, 25), Name: "Christmas Day", Recurring: true},
		{ID: "hol-company-day", Date: engine.NewDate(2025, 6, 13), Name: "Company Day", Recurring: false},
	}
	for _, hd := range holidays {
		if err := store.SaveHoliday(ctx, hd); err != nil {
			return err
		}
	}

	return nil
}
