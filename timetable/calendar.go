package timetable

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	// DefaultReminderMinutes is the alarm lead time applied when the caller
	// does not specify one.
	DefaultReminderMinutes = 15

	calendarName = "UCLan Timetable"
	productID    = "-//uclan//timetable-to-ics//EN"
)

// BuildCalendar assembles the final calendar from expanded occurrences.
// A reminder lead time greater than zero attaches a display alarm to every
// occurrence, triggering that many minutes before start; the value is
// clamped to zero from below. The caller serialises the result - this
// component performs no I/O.
func BuildCalendar(events []CalendarEvent, reminderMinutes int) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName)

	if reminderMinutes < 0 {
		reminderMinutes = 0
	}

	now := time.Now()
	for _, ev := range events {
		e := cal.AddEvent(ev.UID)
		e.SetDtStampTime(now)
		e.SetStartAt(ev.Start)
		e.SetEndAt(ev.End)
		e.SetSummary(ev.Summary)
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
		e.SetLocation(ev.Location)

		if reminderMinutes > 0 {
			alarm := e.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dS", reminderMinutes*60))
			alarm.SetProperty(ics.ComponentPropertyDescription, "Reminder")
		}
	}

	return cal
}
