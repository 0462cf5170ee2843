package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TimeRange is the result of parsing a free-text time range. Start and End
// are 24-hour "HH:MM" strings; Minutes is the clock difference end-start, or
// -1 when the range did not parse or the difference came out negative.
type TimeRange struct {
	Start   string
	End     string
	Minutes int
}

var (
	dashNormalizer = strings.NewReplacer("–", "-", "—", "-", "−", "-")

	hhmmRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
	ampmRangeRe = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm))\s*-\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm))`)

	weekPrefixRe = regexp.MustCompile(`(?i)^Weeks?:\s*`)
	weekRangeRe  = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

// ParseTimeRange parses strings like "09:00 - 10:00", "09:00–10:00" or
// "9am - 10:30am" into a TimeRange. Dash variants (en dash, em dash, minus)
// are normalised to a plain hyphen first. The 24-hour pattern is tried
// before the am/pm pattern. No match yields a zero TimeRange with
// Minutes == -1.
func ParseTimeRange(text string) TimeRange {
	none := TimeRange{Minutes: -1}
	if text == "" {
		return none
	}
	normalized := strings.TrimSpace(dashNormalizer.Replace(text))

	var start, end string
	if m := hhmmRangeRe.FindStringSubmatch(normalized); m != nil {
		start, end = m[1], m[2]
	} else if m := ampmRangeRe.FindStringSubmatch(normalized); m != nil {
		start = clockFromAmPm(m[1])
		end = clockFromAmPm(m[2])
	} else {
		return none
	}

	minutes := clockToMinutes(end) - clockToMinutes(start)
	if minutes < 0 {
		// Malformed range. Keep the endpoints but leave the length unknown.
		minutes = -1
	}
	return TimeRange{Start: start, End: end, Minutes: minutes}
}

// clockFromAmPm converts a 12-hour token such as "9am", "10:30am" or
// "12:30pm" into a 24-hour "HH:MM" string. 12am maps to 00, pm adds twelve
// hours except for 12pm itself.
func clockFromAmPm(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	pm := strings.HasSuffix(t, "pm")
	t = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(t, "pm"), "am"))

	hhStr, mmStr, found := strings.Cut(t, ":")
	hh, _ := strconv.Atoi(strings.TrimSpace(hhStr))
	mm := 0
	if found {
		mm, _ = strconv.Atoi(strings.TrimSpace(mmStr))
	}
	if pm && hh != 12 {
		hh += 12
	}
	if !pm && hh == 12 {
		hh = 0
	}
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

// clockToMinutes converts "HH:MM" into minutes since midnight.
func clockToMinutes(clock string) int {
	hhStr, mmStr, _ := strings.Cut(clock, ":")
	hh, _ := strconv.Atoi(hhStr)
	mm, _ := strconv.Atoi(mmStr)
	return hh*60 + mm
}

// AddMinutesToClock adds a number of minutes to a "HH:MM" clock string,
// wrapping around midnight.
func AddMinutesToClock(clock string, minutes int) string {
	total := clockToMinutes(clock) + minutes
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ExpandWeekList normalises a week-range string such as "Weeks: 5-8,10-15,33"
// into the deduplicated, ascending list of week numbers it covers. Empty or
// unparseable input yields an empty list.
func ExpandWeekList(text string) []int {
	text = weekPrefixRe.ReplaceAllString(strings.TrimSpace(text), "")
	if text == "" {
		return nil
	}

	seen := make(map[int]struct{})
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := weekRangeRe.FindStringSubmatch(part); m != nil {
			a, _ := strconv.Atoi(m[1])
			b, _ := strconv.Atoi(m[2])
			for w := a; w <= b; w++ {
				seen[w] = struct{}{}
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			seen[n] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	weeks := maps.Keys(seen)
	slices.Sort(weeks)
	return weeks
}
