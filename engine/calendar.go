package engine

import (
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date (the engine never needs finer)
// =============================================================================

type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date { return DateOf(time.Now()) }

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// HOLIDAY CALENDAR - Swappable holiday policy
// =============================================================================

// HolidayCalendar answers whether a date is a public holiday.
type HolidayCalendar interface {
	IsHoliday(date Date) bool
}

// NoHolidays is the calendar used when holiday exclusion is disabled.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(Date) bool { return false }

// HolidaySet is a fixed set of holiday dates, with optional yearly
// recurrence by month/day.
type HolidaySet struct {
	fixed     map[string]bool // "2006-01-02"
	recurring map[string]bool // "01-02"
}

func NewHolidaySet() *HolidaySet {
	return &HolidaySet{
		fixed:     make(map[string]bool),
		recurring: make(map[string]bool),
	}
}

func (hs *HolidaySet) Add(date Date, recurring bool) {
	if recurring {
		hs.recurring[date.Time.Format("01-02")] = true
		return
	}
	hs.fixed[date.String()] = true
}

func (hs *HolidaySet) IsHoliday(date Date) bool {
	return hs.fixed[date.String()] || hs.recurring[date.Time.Format("01-02")]
}

// =============================================================================
// WORKING CALENDAR - Weekly pattern + holidays
// =============================================================================

// WorkingCalendar composes a weekly workday pattern with a holiday
// calendar to produce the IsWorkingDay predicate the duration
// calculator consumes. Both parts are swappable policies.
type WorkingCalendar struct {
	Workdays map[time.Weekday]bool
	Holidays HolidayCalendar
}

// NewWorkingCalendar returns a Monday-to-Friday calendar with no holidays.
func NewWorkingCalendar() *WorkingCalendar {
	return &WorkingCalendar{
		Workdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		Holidays: NoHolidays{},
	}
}

// WithHolidays returns a copy of the calendar using the given holiday source.
func (c *WorkingCalendar) WithHolidays(h HolidayCalendar) *WorkingCalendar {
	return &WorkingCalendar{Workdays: c.Workdays, Holidays: h}
}

func (c *WorkingCalendar) IsWorkingDay(date Date) bool {
	if !c.Workdays[date.Weekday()] {
		return false
	}
	if c.Holidays != nil && c.Holidays.IsHoliday(date) {
		return false
	}
	return true
}
