package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLocation is used when no location could be extracted for an event.
const DefaultLocation = "On Campus"

// dayOffsets maps a lower-cased weekday name to its offset from the week's
// anchor Monday.
var dayOffsets = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// dayOffset returns the Monday-based offset for a weekday name. Unresolvable
// names fall back to Monday.
func dayOffset(day string) int {
	if off, ok := dayOffsets[strings.ToLower(strings.TrimSpace(day))]; ok {
		return off
	}
	return 0
}

// ExpandOccurrences turns recurring template events into concrete dated
// occurrences: one per (event, week) pair where the event has a start time
// and the week is present in the legend map. Everything else is silently
// dropped - an incomplete legend or a malformed cell must never abort the
// rest of the calendar.
//
// The end instant is resolved in order: start plus the session length when
// one is known, the event's end time on the same date, or start plus one
// hour.
func ExpandOccurrences(events []Event, weekMap WeekKeyMap, loc *time.Location) []CalendarEvent {
	if loc == nil {
		loc = time.Local
	}

	var out []CalendarEvent
	for _, ev := range events {
		if ev.StartTime == "" {
			continue
		}

		for _, wk := range ExpandWeekList(ev.Weeks) {
			date, ok := weekMap[wk]
			if !ok {
				continue
			}

			offset := dayOffset(ev.Day)
			startMin := clockToMinutes(ev.StartTime)
			start := date.At(offset, startMin/60, startMin%60, loc)

			var end time.Time
			switch {
			case ev.LengthMinutes > 0:
				end = start.Add(time.Duration(ev.LengthMinutes) * time.Minute)
			case ev.EndTime != "":
				endMin := clockToMinutes(ev.EndTime)
				end = date.At(offset, endMin/60, endMin%60, loc)
			default:
				end = start.Add(time.Hour)
			}

			out = append(out, CalendarEvent{
				Start:       start,
				End:         end,
				Summary:     eventSummary(ev),
				Description: eventDescription(ev),
				Location:    eventLocation(ev),
				UID:         occurrenceUID(ev, wk),
				Week:        wk,
			})
		}
	}
	return out
}

// eventSummary prefers "Title (CODE)", then the bare title, then the
// display full name.
func eventSummary(ev Event) string {
	if ev.Title == "" {
		return ev.FullName
	}
	if ev.CourseCode == "" {
		return ev.Title
	}
	return fmt.Sprintf("%s (%s)", ev.Title, ev.CourseCode)
}

// eventDescription joins the full name, group and type into one multi-line
// description. Blank fields are omitted entirely rather than emitted as
// empty lines.
func eventDescription(ev Event) string {
	var lines []string
	for _, line := range []string{
		ev.FullName,
		labelled("Group", ev.Group),
		labelled("Type", ev.Type),
	} {
		if s := sanitizeField(line); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func eventLocation(ev Event) string {
	if ev.Location != "" {
		return ev.Location
	}
	return DefaultLocation
}

// occurrenceUID builds a globally unique identifier for one occurrence.
// The random suffix guarantees uniqueness across repeated generation runs;
// only that property matters, not the algorithm.
func occurrenceUID(ev Event, week int) string {
	code := ev.CourseCode
	if code == "" {
		code = "event"
	}
	return fmt.Sprintf("%s-%d-%s", code, week, uuid.NewString())
}
