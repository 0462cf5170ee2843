package timetable

import "time"

// ParsedDate is a calendar date lifted from the week legend. It carries no
// time component; the Occurrence Expander combines it with a clock time.
type ParsedDate struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
	Day   int `json:"day"`
}

// At returns the date offset by the given number of days, at the given clock
// time, in the given location. Day overflow (e.g. Monday date + 6 days into
// the next month) is normalised by time.Date.
func (d ParsedDate) At(offsetDays, hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day+offsetDays, hour, minute, 0, 0, loc)
}

// WeekKeyMap maps a term week number to its anchor date - the Monday of that
// week as printed in the timetable legend. Built once per document and read
// only afterwards.
type WeekKeyMap map[int]ParsedDate

// Event is one recurring template session as extracted from a single
// timetable cell. Fields the heuristics could not resolve are left empty;
// whether the event survives into the calendar is decided later by
// ExpandOccurrences.
type Event struct {
	Day           string `json:"day,omitempty"`           // Weekday name from the row header (eg. "Monday")
	StartTime     string `json:"startTime,omitempty"`     // 24-hour "HH:MM"
	EndTime       string `json:"endTime,omitempty"`       // 24-hour "HH:MM"
	LengthMinutes int    `json:"lengthMinutes,omitempty"` // Session length, 0 when unknown
	Weeks         string `json:"weeks,omitempty"`         // Raw week-range text (eg. "5-8,10-15")
	FullName      string `json:"fullName"`                // Display name fallback derived from the longest bold element
	CourseCode    string `json:"courseCode"`              // Module code (eg. "CO3519")
	Title         string `json:"title"`                   // Module title (eg. "Artificial Intelligence")
	Type          string `json:"type"`                    // Session type, lower-cased (eg. "lecture")
	TypeStr       string `json:"typeStr,omitempty"`       // Session type line verbatim, including any campus remark
	DataDetails   string `json:"dataDetails,omitempty"`   // Raw tilde-delimited auxiliary attribute
	Group         string `json:"group,omitempty"`
	CRN           string `json:"crn,omitempty"`
	Location      string `json:"location,omitempty"`
}

// CalendarEvent is one concrete dated occurrence of an Event, ready for
// serialisation.
type CalendarEvent struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	UID         string    `json:"uid"`
	Week        int       `json:"week"` // Term week number this occurrence was expanded from
}

// Warning is a non-fatal diagnostic emitted while extracting a single event.
// Warnings never abort processing of other events.
type Warning struct {
	Field   string `json:"field"`   // Which field could not be resolved (eg. "startTime")
	Summary string `json:"summary"` // Best known display name of the affected event
	Detail  string `json:"detail"`
}
