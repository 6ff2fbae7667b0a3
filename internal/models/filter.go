package models

import "time"

// FilterKind is one of the date filter chips on the order list.
type FilterKind string

const (
	FilterAll       FilterKind = "All"
	FilterToday     FilterKind = "Today"
	FilterYesterday FilterKind = "Yesterday"
	FilterLast7     FilterKind = "Last7"
	FilterCustom    FilterKind = "Custom"
)

// FilterSelection is the filter applied to the order list.
// Start and End are YYYY-MM-DD and only used for FilterCustom.
type FilterSelection struct {
	Kind  FilterKind `json:"type" validate:"required,oneof=All Today Yesterday Last7 Custom"`
	Start string     `json:"start,omitempty"`
	End   string     `json:"end,omitempty"`
}

// Label returns the chip text for the selection.
func (f FilterSelection) Label() string {
	if f.Kind == FilterLast7 {
		return "Last 7 Days"
	}
	return string(f.Kind)
}

// CustomRange is a custom date range as typed by the vendor.
type CustomRange struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// isoLayout matches the millisecond precision ISO strings the order API expects.
const isoLayout = "2006-01-02T15:04:05.000Z"

// DateRange is an inclusive interval of creation times.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartISO formats the lower bound in UTC.
func (r DateRange) StartISO() string {
	return r.Start.UTC().Format(isoLayout)
}

// EndISO formats the upper bound in UTC.
func (r DateRange) EndISO() string {
	return r.End.UTC().Format(isoLayout)
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
