package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/calendar"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/storage"
	"github.com/shopspring/decimal"
)

// Store is the authoritative appointment store. Lookups of unknown ids return
// storage.ErrNotFound.
type Store interface {
	InsertAppointment(ctx context.Context, appt *model.Appointment) (int64, error)
	GetAppointment(ctx context.Context, id int64) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, changes model.AppointmentChanges) error
	DeleteAppointment(ctx context.Context, id int64) error
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
}

type ItemInput struct {
	Name  string           `json:"name" validate:"required"`
	Price *decimal.Decimal `json:"price" validate:"required"`
}

type CreateRequest struct {
	ClientName      string           `json:"client_name" validate:"required"`
	ClientEmail     string           `json:"client_email" validate:"required,email"`
	ClientPhone     *string          `json:"client_phone"`
	AppointmentDate string           `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string           `json:"appointment_time" validate:"required,clock"`
	Items           []ItemInput      `json:"items" validate:"required,min=1,dive"`
	Total           *decimal.Decimal `json:"total"`
	Notes           *string          `json:"notes"`
}

type UpdateRequest struct {
	ClientName      string  `json:"client_name" validate:"required"`
	ClientEmail     string  `json:"client_email" validate:"required,email"`
	ClientPhone     *string `json:"client_phone"`
	AppointmentDate string  `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string  `json:"appointment_time" validate:"required,clock"`
	Status          string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Notes           *string `json:"notes"`
}

// Service coordinates the appointment store with the external calendar. The store is
// authoritative; calendar calls never fail a request.
type Service struct {
	store    Store
	notifier calendar.Notifier
	logger   *slog.Logger
	validate *validator.Validate
}

func NewService(store Store, notifier calendar.Notifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = calendar.Disabled{}
	}
	return &Service{store: store, notifier: notifier, logger: logger, validate: newValidator()}
}

// Create validates req, mirrors it to the calendar and persists it. Create, Update and
// Delete ignore the caller's cancellation: once started they run to completion even if
// the client goes away or the request deadline passes.
func (s *Service) Create(ctx context.Context, req CreateRequest) (model.Appointment, error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.validate.Struct(req); err != nil {
		return model.Appointment{}, toValidationError(err)
	}
	items := make([]model.ItemSnapshot, 0, len(req.Items))
	for i, it := range req.Items {
		if problem := model.CheckAmount(*it.Price); problem != "" {
			return model.Appointment{}, invalid(fmt.Sprintf("items[%d].price", i), problem)
		}
		items = append(items, model.ItemSnapshot{Name: it.Name, Price: *it.Price})
	}
	total := decimal.Zero
	if req.Total != nil {
		if problem := model.CheckAmount(*req.Total); problem != "" {
			return model.Appointment{}, invalid("total", problem)
		}
		total = *req.Total
	}

	appt := model.Appointment{
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: normalizeClock(req.AppointmentTime),
		Items:           items,
		Total:           total,
		Notes:           req.Notes,
		Status:          model.StatusPending,
	}

	bestEffort(ctx, s.logger, "create", func(ctx context.Context) error {
		id, err := s.notifier.Create(ctx, appt)
		if errors.Is(err, calendar.ErrNotConfigured) {
			return nil
		}
		if err != nil {
			return err
		}
		if id != "" {
			appt.GoogleEventID = &id
		}
		return nil
	}, "client_email", appt.ClientEmail)

	if _, err := s.store.InsertAppointment(ctx, &appt); err != nil {
		return model.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	return appt, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) error {
	ctx = context.WithoutCancel(ctx)
	if err := s.validate.Struct(req); err != nil {
		return toValidationError(err)
	}
	changes := model.AppointmentChanges{
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: normalizeClock(req.AppointmentTime),
		Status:          model.Status(req.Status),
		Notes:           req.Notes,
	}

	current, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return wrapStore("get appointment", err)
	}

	if eventID := current.GoogleEventID; eventID != nil && *eventID != "" {
		merged := changes.Apply(current)
		bestEffort(ctx, s.logger, "update", func(ctx context.Context) error {
			return s.notifier.Update(ctx, *eventID, merged)
		}, "appointment_id", id, "event_id", *eventID)
	}

	if err := s.store.UpdateAppointment(ctx, id, changes); err != nil {
		return wrapStore("update appointment", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)
	current, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return wrapStore("get appointment", err)
	}

	if eventID := current.GoogleEventID; eventID != nil && *eventID != "" {
		bestEffort(ctx, s.logger, "delete", func(ctx context.Context) error {
			return s.notifier.Delete(ctx, *eventID)
		}, "appointment_id", id, "event_id", *eventID)
	}

	if err := s.store.DeleteAppointment(ctx, id); err != nil {
		return wrapStore("delete appointment", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Appointment, error) {
	appt, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, wrapStore("get appointment", err)
	}
	return appt, nil
}

func (s *Service) List(ctx context.Context) ([]model.Appointment, error) {
	appts, err := s.store.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// wrapStore keeps storage.ErrNotFound unwrapped so callers can map it directly.
func wrapStore(op string, err error) error {
	if storage.IsNotFound(err) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
