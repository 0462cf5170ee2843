package cmd

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/uclan-tools/timetable-ics/googlecal"
	"github.com/uclan-tools/timetable-ics/timetable"
	"github.com/uclan-tools/timetable-ics/util"
)

// pushCmd represents the push command
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Pushes timetable sessions into a Google Calendar",
	Long: `Extracts the class sessions from a timetable page and synchronises
them into a Google Calendar. Repeated pushes are safe: sessions already in
the calendar are left alone, stale ones are removed. Only events created by
this tool are ever touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		url, _ := cmd.Flags().GetString("url")
		calendarID, _ := cmd.Flags().GetString("calendarID")
		tokenPath, _ := cmd.Flags().GetString("tokenPath")
		reminder, _ := cmd.Flags().GetInt("reminder")
		timezone, _ := cmd.Flags().GetString("timezone")

		html, err := readPage(input, url)
		if err != nil {
			log.Fatalf("Could not read timetable page: %v\n", err)
		}

		loc, err := time.LoadLocation(timezone)
		if err != nil {
			log.Fatalf("Could not load timezone %q: %v\n", timezone, err)
		}

		doc, err := timetable.NewDocument(html)
		if err != nil {
			log.Fatalf("Could not parse timetable page: %v\n", err)
		}
		weekMap := timetable.ParseWeekKey(doc)
		events, warnings := timetable.ExtractEvents(doc)
		if len(events) == 0 {
			log.Fatalf("No events found in the timetable page\n")
		}
		for _, w := range warnings {
			log.Printf("Warning: %s unresolved for %q\n", w.Field, w.Summary)
		}

		occurrences := timetable.ExpandOccurrences(events, weekMap, loc)

		c, err := newGoogleCalendar(calendarID, tokenPath)
		if err != nil {
			log.Fatalf("Could not create Google Calendar instance: %v\n", err)
		}
		if err := c.Push(occurrences, reminder); err != nil {
			log.Fatalf("Could not push to Google Calendar: %v\n", err)
		}
	},
}

// newGoogleCalendar builds an authenticated calendar handle from the local
// credentials.json and a cached OAuth token.
func newGoogleCalendar(calendarID, tokenPath string) (*googlecal.GoogleCalendar, error) {
	bytes, err := os.ReadFile("credentials.json")
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(bytes, calendar.CalendarEventsScope)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(tokenPath, ".json") {
		tokenPath += ".json"
	}

	client, err := util.GetClient(config, tokenPath)
	if err != nil {
		return nil, err
	}

	return googlecal.NewGoogleCalendar(client, calendarID)
}

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.Flags().StringP("input", "i", "", "Path to a saved timetable HTML file")
	pushCmd.Flags().StringP("url", "u", "", "URL of the timetable page to fetch")
	pushCmd.Flags().StringP("calendarID", "c", "primary", "Google Calendar calendar ID")
	pushCmd.Flags().StringP("tokenPath", "t", "token.json", "The path to a Google OAuth token file")
	pushCmd.Flags().IntP("reminder", "r", timetable.DefaultReminderMinutes, "Popup reminder lead time in minutes (0 disables)")
	pushCmd.Flags().StringP("timezone", "z", "Europe/London", "IANA timezone of the institution")
}
