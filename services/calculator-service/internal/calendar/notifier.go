// Package calendar mirrors appointments into an external calendar. Every call is a
// single attempt; callers decide what a failure means.
package calendar

import (
	"context"
	"errors"

	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
)

var ErrNotConfigured = errors.New("calendar notifier not configured")

type Notifier interface {
	// Create returns the identifier of the created external event.
	Create(ctx context.Context, appt model.Appointment) (string, error)
	Update(ctx context.Context, eventID string, appt model.Appointment) error
	Delete(ctx context.Context, eventID string) error
}

// Disabled is used when no calendar credentials are configured. Create reports
// ErrNotConfigured so no event id is stored; Update and Delete do nothing.
type Disabled struct{}

func (Disabled) Create(context.Context, model.Appointment) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Update(context.Context, string, model.Appointment) error { return nil }

func (Disabled) Delete(context.Context, string) error { return nil }
