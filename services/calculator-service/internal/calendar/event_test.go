package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleAppointment() model.Appointment {
	return model.Appointment{
		ClientName:      "Ana Perez",
		ClientEmail:     "ana@example.com",
		AppointmentDate: "2025-06-01",
		AppointmentTime: "10:00",
		Items: []model.ItemSnapshot{
			{Name: "Consulting", Price: decimal.NewFromInt(100)},
			{Name: "Review", Price: decimal.RequireFromString("49.5")},
		},
	}
}

func TestDescriptionDefaults(t *testing.T) {
	want := "Client: Ana Perez\n" +
		"Email: ana@example.com\n" +
		"Phone: -\n" +
		"\nServices:\n" +
		"Consulting - $100.00\n" +
		"Review - $49.50\n" +
		"\nNotes: No notes"
	assert.Equal(t, want, Description(sampleAppointment()))
}

func TestDescriptionWithPhoneAndNotes(t *testing.T) {
	appt := sampleAppointment()
	appt.ClientPhone = strPtr("+58 412 0000000")
	appt.Notes = strPtr("Bring documents")

	d := Description(appt)
	assert.Contains(t, d, "Phone: +58 412 0000000\n")
	assert.Contains(t, d, "Notes: Bring documents")
}

func TestBuildEventWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)

	ev, err := BuildEvent(sampleAppointment(), loc, true)
	require.NoError(t, err)

	assert.Equal(t, "Appointment: Ana Perez", ev.Summary)
	assert.Equal(t, "2025-06-01T10:00:00-04:00", ev.Start.DateTime)
	assert.Equal(t, "2025-06-01T11:00:00-04:00", ev.End.DateTime)
	assert.Equal(t, "America/Caracas", ev.Start.TimeZone)
	require.Len(t, ev.Attendees, 1)
	assert.Equal(t, "ana@example.com", ev.Attendees[0].Email)

	ev, err = BuildEvent(sampleAppointment(), loc, false)
	require.NoError(t, err)
	assert.Empty(t, ev.Attendees)
}

func TestStartTimeAcceptsSeconds(t *testing.T) {
	appt := sampleAppointment()
	appt.AppointmentTime = "09:30:00"
	start, err := StartTime(appt, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), start)

	appt.AppointmentTime = "9.30"
	_, err = StartTime(appt, time.UTC)
	assert.Error(t, err)
}
