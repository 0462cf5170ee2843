package timetable

import (
	"strings"
	"testing"
)

// A well-formed timetable cell: visible time in the first bold element, the
// module name split over a line break, group and weeks in the nested div,
// and a tilde-delimited data-details attribute.
const wellFormedRow = `<table><tbody>
<tr>
	<th class="TimeTableRowHeader">Monday</th>
	<td>
		<div class="StuTTEvent" data-details="Lecture~LEC~41235~09:00~10:00~~Preston Campus">
			<strong>09:00 - 10:00</strong>
			<strong>CO3519 Artificial Intelligence<br>Lecture (On Campus)</strong>
			<div><strong>Group A</strong><strong>Weeks: 5-8,10</strong></div>
		</div>
	</td>
</tr>
</tbody></table>`

func extractOne(t *testing.T, html string) Event {
	t.Helper()
	events, _ := ExtractEvents(mustDocument(t, html))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	return events[0]
}

func TestExtractEventsWellFormed(t *testing.T) {
	ev := extractOne(t, wellFormedRow)

	if ev.CourseCode != "CO3519" {
		t.Errorf("CourseCode = %q", ev.CourseCode)
	}
	if ev.Title != "Artificial Intelligence" {
		t.Errorf("Title = %q", ev.Title)
	}
	if ev.Type != "lecture" {
		t.Errorf("Type = %q", ev.Type)
	}
	if ev.TypeStr != "Lecture (On Campus)" {
		t.Errorf("TypeStr = %q", ev.TypeStr)
	}
	if ev.StartTime != "09:00" || ev.EndTime != "10:00" || ev.LengthMinutes != 60 {
		t.Errorf("times = %q-%q (%d min)", ev.StartTime, ev.EndTime, ev.LengthMinutes)
	}
	if ev.Day != "Monday" {
		t.Errorf("Day = %q", ev.Day)
	}
	if ev.Group != "Group A" {
		t.Errorf("Group = %q", ev.Group)
	}
	if ev.Weeks != "5-8,10" {
		t.Errorf("Weeks = %q", ev.Weeks)
	}
	if ev.CRN != "41235" {
		t.Errorf("CRN = %q", ev.CRN)
	}
	// The parenthesized remark of the type line is taken as campus.
	if ev.Location != "On Campus" {
		t.Errorf("Location = %q", ev.Location)
	}
	if !strings.Contains(ev.FullName, "CO3519") {
		t.Errorf("FullName = %q", ev.FullName)
	}
}

func TestExtractEventsDataDetailsFallback(t *testing.T) {
	// No parseable visible time: start, length and CRN come from the
	// data-details attribute, the end time is computed from start+length,
	// and the location falls back to the seventh tilde field.
	html := `<table><tr>
		<th class="TimeTableRowHeader">Wednesday</th>
		<td><div class="StuTTEvent" data-details="~~12345~09:00~~120~Harrington Building">
			<strong>CO2402 Programming<br>Workshop</strong>
			<div><strong>B1</strong><strong>2-4</strong></div>
		</div></td>
	</tr></table>`

	ev := extractOne(t, html)

	if ev.StartTime != "09:00" {
		t.Errorf("StartTime = %q", ev.StartTime)
	}
	if ev.LengthMinutes != 120 {
		t.Errorf("LengthMinutes = %d", ev.LengthMinutes)
	}
	if ev.EndTime != "11:00" {
		t.Errorf("EndTime = %q, want computed 11:00", ev.EndTime)
	}
	if ev.CRN != "12345" {
		t.Errorf("CRN = %q", ev.CRN)
	}
	if ev.Location != "Harrington Building" {
		t.Errorf("Location = %q", ev.Location)
	}
	if ev.Day != "Wednesday" {
		t.Errorf("Day = %q", ev.Day)
	}
	if ev.Weeks != "2-4" {
		t.Errorf("Weeks = %q", ev.Weeks)
	}
}

func TestExtractEventsDayFromPrecedingRow(t *testing.T) {
	// The weekday header spans several rows; events in later rows walk
	// back to the nearest preceding row header.
	html := `<table>
	<tr>
		<th class="TimeTableRowHeader">Thursday</th>
		<td><div class="StuTTEvent"><strong>09:00 - 10:00</strong><strong>CO1111 Intro<br>Lecture</strong><div><strong>A</strong><strong>1</strong></div></div></td>
	</tr>
	<tr>
		<td><div class="StuTTEvent"><strong>11:00 - 12:00</strong><strong>CO1111 Intro<br>Lab</strong><div><strong>A</strong><strong>1</strong></div></div></td>
	</tr>
	</table>`

	events, _ := ExtractEvents(mustDocument(t, html))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for i, ev := range events {
		if ev.Day != "Thursday" {
			t.Errorf("event %d Day = %q, want Thursday", i, ev.Day)
		}
	}
}

func TestExtractEventsWeeksRescan(t *testing.T) {
	// The second bold element of the nested div is not week-like, so all
	// bold elements are rescanned for a "Weeks:" prefix.
	html := `<div class="StuTTEvent">
		<strong>Induction Session<br>Lecture</strong>
		<div><strong>Group A</strong><strong>see notes</strong></div>
		<strong>Weeks: 12-15</strong>
	</div>`

	ev := extractOne(t, html)
	if ev.Weeks != "12-15" {
		t.Errorf("Weeks = %q, want 12-15", ev.Weeks)
	}
}

func TestExtractEventsOnCampusMarkerFallback(t *testing.T) {
	html := `<div class="StuTTEvent" data-details="~~333~10:00~On Campus">
		<strong>Seminar prep</strong>
	</div>`

	ev := extractOne(t, html)
	if ev.Location != "On Campus" {
		t.Errorf("Location = %q, want On Campus", ev.Location)
	}
	if ev.CRN != "333" {
		t.Errorf("CRN = %q", ev.CRN)
	}
}

func TestExtractEventsWarningsForUnresolvedFields(t *testing.T) {
	html := `<div class="StuTTEvent"><strong>Mystery session</strong></div>`

	events, warnings := ExtractEvents(mustDocument(t, html))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	fields := make(map[string]bool)
	for _, w := range warnings {
		fields[w.Field] = true
	}
	if !fields["startTime"] || !fields["weeks"] {
		t.Errorf("expected warnings for startTime and weeks, got %v", warnings)
	}
}

func TestExtractEventsNoBoldElements(t *testing.T) {
	// Extraction must not fail on a degenerate cell; fields stay empty.
	html := `<div class="StuTTEvent">free text only</div>`

	ev := extractOne(t, html)
	if ev.Title != "" || ev.StartTime != "" {
		t.Errorf("expected empty fields, got %+v", ev)
	}
	if ev.FullName != "free text only" {
		t.Errorf("FullName = %q", ev.FullName)
	}
}

func TestParseEventName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		code    string
		title   string
		typ     string
		typeStr string
	}{
		{
			name:    "code and title with type line",
			in:      "CO3519 Artificial Intelligence<br>Lecture (On Campus)",
			code:    "CO3519",
			title:   "Artificial Intelligence",
			typ:     "lecture",
			typeStr: "Lecture (On Campus)",
		},
		{
			name:  "single word title",
			in:    "Induction",
			title: "Induction",
		},
		{
			name:    "self closing break",
			in:      "MA1612 Calculus<br/>Tutorial",
			code:    "MA1612",
			title:   "Calculus",
			typ:     "tutorial",
			typeStr: "Tutorial",
		},
		{
			name: "empty",
			in:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, title, typ, typeStr := parseEventName(tt.in)
			if code != tt.code || title != tt.title || typ != tt.typ || typeStr != tt.typeStr {
				t.Errorf("parseEventName(%q) = (%q, %q, %q, %q), want (%q, %q, %q, %q)",
					tt.in, code, title, typ, typeStr, tt.code, tt.title, tt.typ, tt.typeStr)
			}
		})
	}
}
