/*
Package factory provides JSON to Go calendar conversion.

PURPOSE:
  Converts JSON calendar definitions into engine.WorkingCalendar
  objects. This enables calendar configuration without code changes -
  HR can define the working week and holiday list in JSON, and the
  factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify the calendar
  - Easy integration with admin UI
  - Version control for calendar definitions

JSON SCHEMA:
  {
    "workdays": ["monday", "tuesday", "wednesday", "thursday", "friday"],
    "holidays": [
      {"date": "2025-12-25", "name": "Christmas Day", "recurring": true},
      {"date": "2025-06-13", "name": "Company Day"}
    ]
  }

KEY FEATURES:
  - Validates weekday names
  - Defaults to Monday-Friday when workdays are omitted
  - Fixed and yearly-recurring holidays

USAGE:
  factory := NewCalendarFactory()
  calendar, err := factory.ParseCalendar(jsonString)
  lifecycle := engine.NewLifecycle(calendar, org)

SEE ALSO:
  - engine/calendar.go: WorkingCalendar and HolidaySet definitions
  - cmd/server/main.go: Loads the calendar file at startup
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/warp/leave-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a working calendar. The
// optional leave_types block lets the same file carry the request
// categories to upsert at startup.
type CalendarJSON struct {
	Workdays   []string        `json:"workdays,omitempty"`
	Holidays   []HolidayJSON   `json:"holidays,omitempty"`
	LeaveTypes []LeaveTypeJSON `json:"leave_types,omitempty"`
}

// HolidayJSON represents one holiday entry.
type HolidayJSON struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name,omitempty"`
	Recurring bool   `json:"recurring,omitempty"`
}

// LeaveTypeJSON represents one request category.
type LeaveTypeJSON struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExcludesHolidays bool   `json:"excludes_holidays,omitempty"`
}

// =============================================================================
// CALENDAR FACTORY
// =============================================================================

// CalendarFactory converts JSON calendars to Go structs.
type CalendarFactory struct{}

// NewCalendarFactory creates a new calendar factory.
func NewCalendarFactory() *CalendarFactory {
	return &CalendarFactory{}
}

// ParseCalendar parses a JSON string into a WorkingCalendar.
func (f *CalendarFactory) ParseCalendar(jsonStr string) (*engine.WorkingCalendar, error) {
	var cj CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse calendar JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// LoadCalendar reads and parses a calendar file.
func (f *CalendarFactory) LoadCalendar(path string) (*engine.WorkingCalendar, error) {
	calendar, _, err := f.LoadConfig(path)
	return calendar, err
}

// LoadConfig reads a config file and returns both the working calendar
// and the declared leave types.
func (f *CalendarFactory) LoadConfig(path string) (*engine.WorkingCalendar, []LeaveTypeJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read calendar file: %w", err)
	}

	var cj CalendarJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return nil, nil, fmt.Errorf("failed to parse calendar JSON: %w", err)
	}
	for _, lt := range cj.LeaveTypes {
		if lt.ID == "" || lt.Name == "" {
			return nil, nil, fmt.Errorf("leave type needs both id and name")
		}
	}

	calendar, err := f.FromJSON(cj)
	if err != nil {
		return nil, nil, err
	}
	return calendar, cj.LeaveTypes, nil
}

// FromJSON converts CalendarJSON to a WorkingCalendar.
func (f *CalendarFactory) FromJSON(cj CalendarJSON) (*engine.WorkingCalendar, error) {
	calendar := engine.NewWorkingCalendar()

	if len(cj.Workdays) > 0 {
		workdays := make(map[time.Weekday]bool)
		for _, name := range cj.Workdays {
			day, err := parseWeekday(name)
			if err != nil {
				return nil, err
			}
			workdays[day] = true
		}
		calendar.Workdays = workdays
	}

	if len(cj.Holidays) > 0 {
		holidays := engine.NewHolidaySet()
		for _, hj := range cj.Holidays {
			date, err := engine.ParseDate(hj.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid holiday date %q: %w", hj.Date, err)
			}
			holidays.Add(date, hj.Recurring)
		}
		calendar = calendar.WithHolidays(holidays)
	}

	return calendar, nil
}

// ToJSON converts a WorkingCalendar back to its JSON representation.
// Holiday entries are not round-tripped; HolidayCalendar is an opaque
// predicate.
func (f *CalendarFactory) ToJSON(calendar *engine.WorkingCalendar) CalendarJSON {
	var cj CalendarJSON
	for day := time.Sunday; day <= time.Saturday; day++ {
		if calendar.Workdays[day] {
			cj.Workdays = append(cj.Workdays, weekdayName(day))
		}
	}
	return cj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseWeekday(s string) (time.Weekday, error) {
	switch s {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("unknown weekday: %s", s)
	}
}

func weekdayName(day time.Weekday) string {
	switch day {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}
