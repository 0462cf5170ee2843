package timetable

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	weekLabelRe  = regexp.MustCompile(`(?i)Week\s*(\d+)`)
	legendDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
)

// ParseWeekKey reads the week legend of the timetable page and returns the
// mapping from week number to that week's Monday date.
//
// The legend is a ".timetable-key" container holding ".key" entries, each
// with a "Week N" badge and a DD/MM/YYYY date in the remaining text. Entries
// missing either part are skipped without error. An absent legend yields an
// empty map - callers must treat that as "no weeks resolvable".
func ParseWeekKey(doc *goquery.Document) WeekKeyMap {
	m := make(WeekKeyMap)

	doc.Find(".timetable-key .key").Each(func(_ int, key *goquery.Selection) {
		badge := strings.TrimSpace(key.Find(".badge").First().Text())
		weekMatch := weekLabelRe.FindStringSubmatch(badge)

		// The date is whatever is left of the entry text once the badge
		// label is removed.
		dateText := sanitizeField(strings.Replace(key.Text(), badge, "", 1))
		if weekMatch == nil || dateText == "" {
			return
		}

		dateMatch := legendDateRe.FindStringSubmatch(dateText)
		if dateMatch == nil {
			return
		}

		week, _ := strconv.Atoi(weekMatch[1])
		day, _ := strconv.Atoi(dateMatch[1])
		month, _ := strconv.Atoi(dateMatch[2])
		year, _ := strconv.Atoi(dateMatch[3])
		m[week] = ParsedDate{Year: year, Month: month, Day: day}
	})

	return m
}
