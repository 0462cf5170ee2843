package timetable

import (
	"fmt"
	"time"

	"github.com/uclan-tools/timetable-ics/applog"
)

// Generator runs the whole pipeline: one HTML payload in, one ICS text out.
// The zero value is not usable; use NewGenerator.
//
// A Generator holds no per-request state, so a single instance may serve
// concurrent requests.
type Generator struct {
	Location *time.Location // Institution's local time zone
}

// Result is the outcome of one generation run.
type Result struct {
	ICS         string    `json:"-"`
	Events      int       `json:"events"`      // Extracted template events
	Occurrences int       `json:"occurrences"` // Dated VEVENTs produced
	Warnings    []Warning `json:"warnings,omitempty"`
}

// NewGenerator returns a Generator producing instants in the given location.
// A nil location means the process-local zone.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.Local
	}
	return &Generator{Location: loc}
}

// Generate converts a timetable page into ICS text. reminderMinutes below
// zero is clamped to zero (no alarms); callers that want the default should
// pass DefaultReminderMinutes.
//
// Bad input is reported as ErrEmptyInput or ErrNoEvents; any other error is
// an internal failure. Individual malformed events never fail the run -
// they are dropped and reported through Result.Warnings.
func (g *Generator) Generate(html string, reminderMinutes int) (*Result, error) {
	doc, err := NewDocument(html)
	if err != nil {
		if err == ErrEmptyInput {
			return nil, err
		}
		return nil, fmt.Errorf("could not parse timetable HTML: %w", err)
	}

	weekMap := ParseWeekKey(doc)

	if doc.Find(eventSelector).Length() == 0 {
		return nil, ErrNoEvents
	}

	events, warnings := ExtractEvents(doc)
	for _, w := range warnings {
		applog.Debug("event field unresolved", "field", w.Field, "event", w.Summary, "detail", w.Detail)
	}

	occurrences := ExpandOccurrences(events, weekMap, g.Location)
	cal := BuildCalendar(occurrences, reminderMinutes)

	return &Result{
		ICS:         cal.Serialize(),
		Events:      len(events),
		Occurrences: len(occurrences),
		Warnings:    warnings,
	}, nil
}
