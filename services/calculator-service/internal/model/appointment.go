package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a booking request. Items and Total are written once at creation.
type Appointment struct {
	ID              int64           `json:"id"`
	ClientName      string          `json:"client_name"`
	ClientEmail     string          `json:"client_email"`
	ClientPhone     *string         `json:"client_phone"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	Items           []ItemSnapshot  `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Notes           *string         `json:"notes"`
	Status          Status          `json:"status"`
	GoogleEventID   *string         `json:"google_event_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AppointmentChanges are the admin-editable fields of an appointment.
type AppointmentChanges struct {
	ClientName      string
	ClientEmail     string
	ClientPhone     *string
	AppointmentDate string
	AppointmentTime string
	Status          Status
	Notes           *string
}

// Apply returns a copy of a with the changes merged in; items, total and the event
// reference are kept.
func (c AppointmentChanges) Apply(a Appointment) Appointment {
	a.ClientName = c.ClientName
	a.ClientEmail = c.ClientEmail
	a.ClientPhone = c.ClientPhone
	a.AppointmentDate = c.AppointmentDate
	a.AppointmentTime = c.AppointmentTime
	a.Status = c.Status
	a.Notes = c.Notes
	return a
}
