package timetable

import (
	"strings"
	"testing"
	"time"
)

var testWeeks = WeekKeyMap{
	1: {Year: 2024, Month: 3, Day: 11},
	2: {Year: 2024, Month: 3, Day: 18},
	3: {Year: 2024, Month: 3, Day: 25},
}

func TestExpandOccurrencesCount(t *testing.T) {
	ev := Event{
		Day:        "Monday",
		StartTime:  "09:00",
		EndTime:    "10:00",
		Weeks:      "1-3",
		CourseCode: "CO3519",
		Title:      "Artificial Intelligence",
	}

	got := ExpandOccurrences([]Event{ev}, testWeeks, time.UTC)
	if len(got) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(got))
	}

	wantStarts := []time.Time{
		time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC),
	}
	for i, occ := range got {
		if !occ.Start.Equal(wantStarts[i]) {
			t.Errorf("occurrence %d start = %v, want %v", i, occ.Start, wantStarts[i])
		}
		if !occ.End.Equal(wantStarts[i].Add(time.Hour)) {
			t.Errorf("occurrence %d end = %v", i, occ.End)
		}
		if occ.Week != i+1 {
			t.Errorf("occurrence %d week = %d", i, occ.Week)
		}
	}
}

func TestExpandOccurrencesWeekdayOffset(t *testing.T) {
	tests := []struct {
		day    string
		offset int
	}{
		{"Monday", 0},
		{"Wednesday", 2},
		{"sunday", 6},
		{"", 0},        // unresolvable day falls back to the anchor Monday
		{"Someday", 0}, // unknown names too
	}

	for _, tt := range tests {
		ev := Event{Day: tt.day, StartTime: "12:00", Weeks: "1"}
		got := ExpandOccurrences([]Event{ev}, testWeeks, time.UTC)
		if len(got) != 1 {
			t.Fatalf("day %q: got %d occurrences", tt.day, len(got))
		}
		want := time.Date(2024, 3, 11+tt.offset, 12, 0, 0, 0, time.UTC)
		if !got[0].Start.Equal(want) {
			t.Errorf("day %q: start = %v, want %v", tt.day, got[0].Start, want)
		}
	}
}

func TestExpandOccurrencesEndResolution(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want time.Time
	}{
		{
			name: "length takes precedence",
			ev:   Event{Day: "Monday", StartTime: "09:00", EndTime: "10:00", LengthMinutes: 90, Weeks: "1"},
			want: time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "end time when no length",
			ev:   Event{Day: "Monday", StartTime: "09:00", EndTime: "10:30", Weeks: "1"},
			want: time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "default one hour",
			ev:   Event{Day: "Monday", StartTime: "09:00", Weeks: "1"},
			want: time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandOccurrences([]Event{tt.ev}, testWeeks, time.UTC)
			if len(got) != 1 {
				t.Fatalf("got %d occurrences", len(got))
			}
			if !got[0].End.Equal(tt.want) {
				t.Errorf("end = %v, want %v", got[0].End, tt.want)
			}
		})
	}
}

func TestExpandOccurrencesDropsUnresolvableEvents(t *testing.T) {
	events := []Event{
		{Day: "Monday", Weeks: "1-3", Title: "no start time"},
		{Day: "Monday", StartTime: "09:00", Weeks: "40-45", Title: "weeks outside legend"},
		{Day: "Monday", StartTime: "09:00", Weeks: "", Title: "no weeks"},
		{Day: "Monday", StartTime: "09:00", Weeks: "1", Title: "valid"},
	}

	got := ExpandOccurrences(events, testWeeks, time.UTC)
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want only the valid event's", len(got))
	}
	if !strings.Contains(got[0].Summary, "valid") {
		t.Errorf("Summary = %q", got[0].Summary)
	}
}

func TestExpandOccurrencesPartialWeekOverlap(t *testing.T) {
	// Weeks outside the legend are dropped per occurrence, not per event.
	ev := Event{Day: "Monday", StartTime: "09:00", Weeks: "2-5"}
	got := ExpandOccurrences([]Event{ev}, testWeeks, time.UTC)
	if len(got) != 2 {
		t.Fatalf("got %d occurrences, want 2 (weeks 2 and 3)", len(got))
	}
}

func TestEventSummary(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Title: "Artificial Intelligence", CourseCode: "CO3519"}, "Artificial Intelligence (CO3519)"},
		{Event{Title: "Artificial Intelligence"}, "Artificial Intelligence"},
		{Event{FullName: "CO3519 Artificial Intelligence Lecture"}, "CO3519 Artificial Intelligence Lecture"},
	}
	for _, tt := range tests {
		if got := eventSummary(tt.ev); got != tt.want {
			t.Errorf("eventSummary(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestEventDescriptionOmitsBlankFields(t *testing.T) {
	ev := Event{FullName: "CO3519 Artificial Intelligence", Type: "lecture"}
	got := eventDescription(ev)
	want := "CO3519 Artificial Intelligence\nType: lecture"
	if got != want {
		t.Errorf("eventDescription = %q, want %q", got, want)
	}
}

func TestOccurrenceUIDUniqueness(t *testing.T) {
	ev := Event{CourseCode: "CO3519"}
	a := occurrenceUID(ev, 1)
	b := occurrenceUID(ev, 1)
	if a == b {
		t.Fatalf("UIDs should differ across calls: %q", a)
	}
	if !strings.HasPrefix(a, "CO3519-1-") {
		t.Errorf("UID = %q", a)
	}
	if !strings.HasPrefix(occurrenceUID(Event{}, 2), "event-2-") {
		t.Errorf("missing course code should use the literal event prefix")
	}
}
