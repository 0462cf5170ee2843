// Package googlecal pushes generated timetable occurrences into a Google
// Calendar. Only events tagged by this tool are ever touched, so personal
// events in the same calendar stay intact.
package googlecal

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/uclan-tools/timetable-ics/applog"
	"github.com/uclan-tools/timetable-ics/timetable"
	"github.com/uclan-tools/timetable-ics/util"
)

// Private extended properties used to mark and identify pushed events.
const (
	sourceProp = "ttics"
	keyProp    = "ttkey"
)

type GoogleCalendar struct {
	Service    *calendar.Service
	CalendarID string
}

// NewGoogleCalendar wraps an authenticated HTTP client into a calendar
// handle for the given calendar ID.
func NewGoogleCalendar(client *http.Client, calendarID string) (*GoogleCalendar, error) {
	service, err := calendar.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("could not create calendar service: %w", err)
	}
	return &GoogleCalendar{Service: service, CalendarID: calendarID}, nil
}

// InstanceKey identifies one occurrence across repeated generation runs.
// The ICS UID cannot be used here - its random suffix changes every run.
func InstanceKey(ev timetable.CalendarEvent) string {
	return fmt.Sprintf("%d|%s|%s", ev.Week, ev.Start.Format(time.RFC3339), ev.Summary)
}

// GetPushed returns all events in the calendar previously created by this
// tool, keyed by instance key.
func (c *GoogleCalendar) GetPushed() (map[string]*calendar.Event, error) {
	pushed := make(map[string]*calendar.Event)

	pageToken := ""
	for {
		req := c.Service.Events.List(c.CalendarID).
			PrivateExtendedProperty(sourceProp + "=1").
			ShowDeleted(false).
			SingleEvents(true)
		if pageToken != "" {
			req.PageToken(pageToken)
		}
		r, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("could not list calendar events: %w", err)
		}

		for _, item := range r.Items {
			if item.ExtendedProperties == nil {
				continue
			}
			if key := item.ExtendedProperties.Private[keyProp]; key != "" {
				pushed[key] = item
			}
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return pushed, nil
}

// Push synchronises the calendar with the given occurrences: occurrences
// not yet in the calendar are inserted, previously pushed events that no
// longer exist are deleted, everything else is left alone. reminderMinutes
// greater than zero attaches a popup reminder to inserted events.
func (c *GoogleCalendar) Push(events []timetable.CalendarEvent, reminderMinutes int) error {
	startTime := time.Now()

	desired := make(map[string]timetable.CalendarEvent, len(events))
	for _, ev := range events {
		desired[InstanceKey(ev)] = ev
	}

	existing, err := c.GetPushed()
	if err != nil {
		return err
	}

	extras, missing := util.CompareMaps(desired, existing)

	for key, item := range extras {
		if err := c.Service.Events.Delete(c.CalendarID, item.Id).Do(); err != nil {
			return fmt.Errorf("could not delete stale event %q: %w", key, err)
		}
		applog.Debug("deleted stale event", "key", key)
	}

	inserted := 0
	for key, ev := range missing {
		if _, err := c.Service.Events.Insert(c.CalendarID, c.toGoogleEvent(ev, key, reminderMinutes)).Do(); err != nil {
			return fmt.Errorf("could not insert event %q: %w", key, err)
		}
		inserted++
	}

	if inserted == 0 && len(extras) == 0 {
		applog.Info("nothing to do, calendar is up to date")
		return nil
	}

	applog.Info("calendar synchronised",
		"inserted", inserted,
		"deleted", len(extras),
		"took", time.Since(startTime),
	)
	return nil
}

func (c *GoogleCalendar) toGoogleEvent(ev timetable.CalendarEvent, key string, reminderMinutes int) *calendar.Event {
	tz := ev.Start.Location().String()
	out := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Status:      "confirmed",
		Start:       &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: tz},
		End:         &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: tz},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{sourceProp: "1", keyProp: key},
		},
	}
	if reminderMinutes > 0 {
		out.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(reminderMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}
	return out
}

// Clear removes every event previously pushed by this tool.
func (c *GoogleCalendar) Clear() error {
	startTime := time.Now()

	pushed, err := c.GetPushed()
	if err != nil {
		return err
	}

	wg := sync.WaitGroup{}
	for key, item := range pushed {
		wg.Add(1)
		go func(key string, item *calendar.Event) {
			defer wg.Done()
			if err := c.Service.Events.Delete(c.CalendarID, item.Id).Do(); err != nil {
				applog.Error("could not delete event", err, "key", key)
			}
		}(key, item)
	}
	wg.Wait()

	applog.Info("calendar cleared", "deleted", len(pushed), "took", time.Since(startTime))
	return nil
}
