package timetable

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Structural markers of the upstream timetable page. These are a fixed
// contract with the source system, not configuration.
const (
	eventSelector     = ".StuTTEvent"
	rowHeaderSelector = "th.TimeTableRowHeader"
)

var (
	brTagRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRe      = regexp.MustCompile(`<[^>]+(>|$)`)
	codeTitleRe    = regexp.MustCompile(`^([A-Za-z0-9\-_\.]+)\s+(.+)$`)
	codeTokenRe    = regexp.MustCompile(`^[A-Za-z0-9\-_\.]+\s+\w+`)
	parenRemarkRe  = regexp.MustCompile(`\(.*\)`)
	parenContentRe = regexp.MustCompile(`\(([^)]+)\)`)
	alphaRunRe     = regexp.MustCompile(`[A-Za-z]+`)
	onCampusRe     = regexp.MustCompile(`(?i)\(On Campus\)`)
	weekLikeRe     = regexp.MustCompile(`(?i)week|[\d\-+,]`)
	weeksColonRe   = regexp.MustCompile(`(?i)weeks?:`)
	digitListRe    = regexp.MustCompile(`\d+(?:-\d+)?(?:,\d+)*$`)
	clockTokenRe   = regexp.MustCompile(`\d{1,2}:\d{2}`)
	bareNumberRe   = regexp.MustCompile(`^\d+$`)
	crnTokenRe     = regexp.MustCompile(`^\d{3,6}$`)
)

// eventNode bundles one timetable cell with the pieces every field
// extractor needs, so the per-field strategies below stay small.
type eventNode struct {
	sel     *goquery.Selection
	strongs *goquery.Selection
	details string   // raw data-details attribute
	parts   []string // details split on "~", positions preserved
	typeStr string   // second name line verbatim, set once the name is parsed
}

// fieldStrategy tries one way of resolving a field, returning "" when it
// does not apply. Strategies run in order; the first non-empty result wins.
// Keeping the fallback chains as explicit lists makes each step testable on
// its own instead of burying them in nested conditionals.
type fieldStrategy func(ev *eventNode) string

var crnStrategies = []fieldStrategy{crnFromThirdField, crnFromDigitToken}

var locationStrategies = []fieldStrategy{
	campusFromTypeStr,
	locationFromSeventhField,
	locationFromOnCampusMarker,
}

func applyStrategies(ev *eventNode, strategies []fieldStrategy) string {
	for _, s := range strategies {
		if v := s(ev); v != "" {
			return v
		}
	}
	return ""
}

// ExtractEvents locates every event cell in the document and runs the
// layered field heuristics over it. Extraction never fails per event:
// fields that cannot be resolved stay empty and the event is still carried
// forward - ExpandOccurrences decides its fate. The returned warnings
// describe events that are likely to be dropped later.
func ExtractEvents(doc *goquery.Document) ([]Event, []Warning) {
	var events []Event
	var warnings []Warning

	doc.Find(eventSelector).Each(func(_ int, sel *goquery.Selection) {
		ev := &eventNode{
			sel:     sel,
			strongs: sel.Find("strong"),
			details: sel.AttrOr("data-details", ""),
		}
		if ev.details != "" {
			ev.parts = strings.Split(ev.details, "~")
		}

		code, title, typ, typeStr := parseEventName(eventNameHTML(ev.strongs))
		ev.typeStr = typeStr

		fullName := fullNameFallback(ev)
		group, weeksText := extractGroupWeeks(ev)
		startTime, endTime, lengthMinutes, visibleTime := extractTimes(ev)
		day := rowHeaderDay(sel)

		events = append(events, Event{
			Day:           day,
			StartTime:     startTime,
			EndTime:       endTime,
			LengthMinutes: lengthMinutes,
			Weeks:         weeksText,
			FullName:      fullName,
			CourseCode:    code,
			Title:         title,
			Type:          typ,
			TypeStr:       typeStr,
			DataDetails:   ev.details,
			Group:         group,
			CRN:           applyStrategies(ev, crnStrategies),
			Location:      applyStrategies(ev, locationStrategies),
		})

		summary := title
		if summary == "" {
			summary = fullName
		}
		if startTime == "" {
			warnings = append(warnings, Warning{
				Field:   "startTime",
				Summary: summary,
				Detail:  "no parseable time in " + strconv.Quote(visibleTime) + " or data-details",
			})
		}
		if weeksText == "" {
			warnings = append(warnings, Warning{
				Field:   "weeks",
				Summary: summary,
				Detail:  "no week-range text found in any bold element",
			})
		}
	})

	return events, warnings
}

// eventNameHTML picks the bold element most likely to hold the event name.
// Candidates in order: a bold element whose markup contains a line break
// (code and title on two lines), one whose text starts with a code-like
// token followed by a word, and finally the bold element with the longest
// text.
func eventNameHTML(strongs *goquery.Selection) string {
	var found string
	strongs.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		html, err := s.Html()
		if err == nil && brTagRe.MatchString(html) {
			found = html
			return false
		}
		if codeTokenRe.MatchString(strings.TrimSpace(s.Text())) {
			if err == nil && html != "" {
				found = html
			} else {
				found = s.Text()
			}
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	longest := longestStrong(strongs)
	if longest == nil {
		return ""
	}
	if html, err := longest.Html(); err == nil && html != "" {
		return html
	}
	return longest.Text()
}

// longestStrong returns the bold element with the longest text, the first
// one winning ties. Nil when the selection is empty.
func longestStrong(strongs *goquery.Selection) *goquery.Selection {
	var best *goquery.Selection
	strongs.Each(func(_ int, s *goquery.Selection) {
		if best == nil || len(s.Text()) > len(best.Text()) {
			best = s
		}
	})
	return best
}

// parseEventName splits the event-name markup into its parts. The first
// line is "CODE Title" when a code-like token leads it, otherwise the whole
// line is the title. The second line is the session type, kept verbatim as
// typeStr and reduced to its first alphabetic run, lower-cased, as typ.
func parseEventName(nameHTML string) (code, title, typ, typeStr string) {
	if nameHTML == "" {
		return "", "", "", ""
	}

	var lines []string
	for _, part := range brTagRe.Split(nameHTML, -1) {
		part = strings.TrimSpace(htmlTagRe.ReplaceAllString(part, ""))
		if part != "" {
			lines = append(lines, part)
		}
	}
	if len(lines) == 0 {
		return "", "", "", ""
	}

	if m := codeTitleRe.FindStringSubmatch(lines[0]); m != nil {
		code = sanitizeField(m[1])
		title = sanitizeField(m[2])
	} else {
		title = sanitizeField(lines[0])
	}

	if len(lines) > 1 {
		typeStr = sanitizeField(lines[1])
		noParen := strings.TrimSpace(parenRemarkRe.ReplaceAllString(lines[1], ""))
		if m := alphaRunRe.FindString(noParen); m != "" {
			typ = sanitizeField(strings.ToLower(m))
		} else {
			typ = sanitizeField(strings.ToLower(noParen))
		}
	}

	return code, title, typ, typeStr
}

// fullNameFallback derives a display name independently of the structural
// name parse, in case that misidentified fields. It is only ever shown, not
// parsed further.
func fullNameFallback(ev *eventNode) string {
	longest := longestStrong(ev.strongs)
	var text string
	if longest != nil {
		text = longest.Text()
	} else {
		text = ev.sel.Text()
	}
	return sanitizeField(onCampusRe.ReplaceAllString(text, ""))
}

// extractGroupWeeks assumes the first two bold elements of the first nested
// container are (group, weeks). When the weeks candidate does not look
// week-range-like, every bold element is rescanned for a "Weeks:" prefix or
// a trailing digit-list pattern.
func extractGroupWeeks(ev *eventNode) (group, weeks string) {
	divStrongs := ev.sel.Find("div").First().Find("strong")
	group = sanitizeField(divStrongs.Eq(0).Text())
	weeks = weekPrefixRe.ReplaceAllString(sanitizeField(divStrongs.Eq(1).Text()), "")

	if !weekLikeRe.MatchString(weeks) {
		ev.strongs.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := s.Text()
			if weeksColonRe.MatchString(t) || digitListRe.MatchString(strings.TrimSpace(t)) {
				weeks = sanitizeField(t)
				return false
			}
			return true
		})
		weeks = weekPrefixRe.ReplaceAllString(weeks, "")
	}
	return group, weeks
}

// extractTimes parses the visible time range from the first bold element,
// falling back to the data-details attribute: the first one or two HH:MM
// tokens become start and end, and a bare tilde-field integer under 24h
// worth of minutes becomes the session length. A missing end time is
// computed from start plus length when both are known.
func extractTimes(ev *eventNode) (start, end string, length int, visible string) {
	visible = sanitizeField(ev.strongs.First().Text())

	if tr := ParseTimeRange(visible); tr.Start != "" && tr.End != "" && tr.Minutes >= 0 {
		return tr.Start, tr.End, tr.Minutes, visible
	}

	if ev.details == "" {
		return "", "", 0, visible
	}

	times := clockTokenRe.FindAllString(ev.details, -1)
	if len(times) >= 1 {
		start = times[0]
	}
	if len(times) >= 2 {
		end = times[1]
	}
	for _, p := range ev.parts {
		p = strings.TrimSpace(p)
		if !bareNumberRe.MatchString(p) {
			continue
		}
		if n, err := strconv.Atoi(p); err == nil && n > 0 && n < 24*60 {
			length = n
			break
		}
	}
	if end == "" && length > 0 && start != "" {
		end = AddMinutesToClock(start, length)
	}
	return start, end, length, visible
}

// rowHeaderDay finds the weekday name for an event cell: the header cell of
// its enclosing row, or of the nearest preceding row when the day header
// spans several rows. An empty result means the day is undetermined.
func rowHeaderDay(sel *goquery.Selection) string {
	tr := sel.Closest("tr")
	if tr.Length() == 0 {
		// Not inside a row at all; scan the parent chain for anything
		// containing a header cell.
		for p := sel.Parent(); p.Length() > 0; p = p.Parent() {
			if th := p.Find(rowHeaderSelector).First(); th.Length() > 0 {
				return sanitizeField(th.Text())
			}
		}
		return ""
	}

	if th := tr.Find(rowHeaderSelector).First(); th.Length() > 0 {
		return sanitizeField(th.Text())
	}
	for prev := tr.Prev(); prev.Length() > 0; prev = prev.Prev() {
		if th := prev.Find(rowHeaderSelector).First(); th.Length() > 0 {
			return sanitizeField(th.Text())
		}
	}
	return ""
}

func crnFromThirdField(ev *eventNode) string {
	if len(ev.parts) > 2 {
		return sanitizeField(ev.parts[2])
	}
	return ""
}

func crnFromDigitToken(ev *eventNode) string {
	for _, p := range ev.parts {
		if p = strings.TrimSpace(p); crnTokenRe.MatchString(p) {
			return p
		}
	}
	return ""
}

func campusFromTypeStr(ev *eventNode) string {
	if m := parenContentRe.FindStringSubmatch(ev.typeStr); m != nil {
		return sanitizeField(m[1])
	}
	return ""
}

func locationFromSeventhField(ev *eventNode) string {
	if len(ev.parts) > 6 {
		return sanitizeField(ev.parts[6])
	}
	return ""
}

func locationFromOnCampusMarker(ev *eventNode) string {
	if strings.Contains(strings.ToLower(ev.details), "on campus") {
		return DefaultLocation
	}
	return ""
}
