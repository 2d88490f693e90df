package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	gcal "google.golang.org/api/calendar/v3"
)

const eventDuration = 60 * time.Minute

// StartTime combines the appointment date and time in loc. Seconds are accepted on the
// time for records written by older clients.
func StartTime(appt model.Appointment, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{model.TimeLayout, "15:04:05"} {
		t, err := time.ParseInLocation(model.DateLayout+" "+layout, appt.AppointmentDate+" "+appt.AppointmentTime, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid appointment date/time %q %q", appt.AppointmentDate, appt.AppointmentTime)
}

func Summary(appt model.Appointment) string {
	return "Appointment: " + appt.ClientName
}

func Description(appt model.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s\n", appt.ClientName)
	fmt.Fprintf(&b, "Email: %s\n", appt.ClientEmail)
	fmt.Fprintf(&b, "Phone: %s\n", orDefault(appt.ClientPhone, "-"))
	b.WriteString("\nServices:\n")
	for _, item := range appt.Items {
		fmt.Fprintf(&b, "%s - $%s\n", item.Name, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nNotes: %s", orDefault(appt.Notes, "No notes"))
	return b.String()
}

// BuildEvent renders the calendar event for appt. Attendees are only set on creation.
func BuildEvent(appt model.Appointment, loc *time.Location, withAttendees bool) (*gcal.Event, error) {
	start, err := StartTime(appt, loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(eventDuration)

	ev := &gcal.Event{
		Summary:     Summary(appt),
		Description: Description(appt),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
	}
	if withAttendees && appt.ClientEmail != "" {
		ev.Attendees = []*gcal.EventAttendee{{Email: appt.ClientEmail}}
	}
	return ev, nil
}

func orDefault(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return *v
}
