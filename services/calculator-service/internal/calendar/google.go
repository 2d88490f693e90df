package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	otelx "github.com/md-rashed-zaman/costcalc/libs/otel"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Config holds the service-account credentials and target calendar.
type Config struct {
	CalendarID          string
	ServiceAccountEmail string
	PrivateKey          string
	PrivateKeyID        string
	ProjectID           string
	ClientID            string
	TimeZone            string
}

func (c Config) Configured() bool {
	return strings.TrimSpace(c.CalendarID) != "" &&
		strings.TrimSpace(c.ServiceAccountEmail) != "" &&
		strings.TrimSpace(c.PrivateKey) != ""
}

// credentialsJSON assembles a service-account key file from discrete settings.
// Escaped newlines in the private key are expanded.
func (c Config) credentialsJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     c.ProjectID,
		"private_key_id": c.PrivateKeyID,
		"private_key":    strings.ReplaceAll(c.PrivateKey, `\n`, "\n"),
		"client_email":   c.ServiceAccountEmail,
		"client_id":      c.ClientID,
		"auth_uri":       "https://accounts.google.com/o/oauth2/auth",
		"token_uri":      "https://oauth2.googleapis.com/token",
	})
}

// New returns a Google Calendar notifier, or Disabled when cfg lacks credentials.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Notifier, error) {
	if !cfg.Configured() {
		logger.Info("google calendar not configured; events will not be mirrored")
		return Disabled{}, nil
	}
	loc, err := loadLocation(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	raw, err := cfg.credentialsJSON()
	if err != nil {
		return nil, err
	}
	jwtCfg, err := google.JWTConfigFromJSON(raw, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}
	base := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	client := jwtCfg.Client(context.WithValue(ctx, oauth2.HTTPClient, base))

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("google calendar service: %w", err)
	}
	return NewGoogleNotifier(svc, cfg.CalendarID, loc), nil
}

func loadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = "America/Caracas"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("calendar time zone %q: %w", name, err)
	}
	return loc, nil
}

// GoogleNotifier writes appointment events to a Google calendar and notifies attendees.
type GoogleNotifier struct {
	events     *gcal.EventsService
	calendarID string
	loc        *time.Location
	tracer     trace.Tracer
}

func NewGoogleNotifier(svc *gcal.Service, calendarID string, loc *time.Location) *GoogleNotifier {
	return &GoogleNotifier{
		events:     gcal.NewEventsService(svc),
		calendarID: calendarID,
		loc:        loc,
		tracer:     otelx.Tracer("calendar"),
	}
}

func (n *GoogleNotifier) Create(ctx context.Context, appt model.Appointment) (id string, err error) {
	ctx, span := n.start(ctx, "calendar.create", appt.ID)
	defer func() { endSpan(span, err) }()

	ev, err := BuildEvent(appt, n.loc, true)
	if err != nil {
		return "", err
	}
	created, err := n.events.Insert(n.calendarID, ev).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	if created.Id == "" {
		return "", errors.New("insert event: empty event id")
	}
	span.SetAttributes(attribute.String("calendar.event_id", created.Id))
	return created.Id, nil
}

func (n *GoogleNotifier) Update(ctx context.Context, eventID string, appt model.Appointment) (err error) {
	if eventID == "" {
		return nil
	}
	ctx, span := n.start(ctx, "calendar.update", appt.ID)
	defer func() { endSpan(span, err) }()

	ev, err := BuildEvent(appt, n.loc, false)
	if err != nil {
		return err
	}
	if _, err := n.events.Update(n.calendarID, eventID, ev).SendUpdates("all").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update event %s: %w", eventID, err)
	}
	return nil
}

func (n *GoogleNotifier) Delete(ctx context.Context, eventID string) (err error) {
	if eventID == "" {
		return nil
	}
	ctx, span := n.start(ctx, "calendar.delete", 0)
	defer func() { endSpan(span, err) }()

	if err := n.events.Delete(n.calendarID, eventID).SendUpdates("all").Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (n *GoogleNotifier) start(ctx context.Context, name string, appointmentID int64) (context.Context, trace.Span) {
	ctx, span := n.tracer.Start(ctx, name)
	span.SetAttributes(attribute.String("calendar.id", n.calendarID))
	if appointmentID > 0 {
		span.SetAttributes(attribute.Int64("appointment.id", appointmentID))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
