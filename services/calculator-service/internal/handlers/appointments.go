package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/md-rashed-zaman/costcalc/libs/httpx"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/booking"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/storage"
	"github.com/shopspring/decimal"
)

type AppointmentService interface {
	Create(ctx context.Context, req booking.CreateRequest) (model.Appointment, error)
	Update(ctx context.Context, id int64, req booking.UpdateRequest) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (model.Appointment, error)
	List(ctx context.Context) ([]model.Appointment, error)
}

type AppointmentHandler struct {
	svc    AppointmentService
	logger *slog.Logger
}

func NewAppointmentHandler(svc AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, logger: logger}
}

type createAppointmentResponse struct {
	ID              int64           `json:"id"`
	ClientName      string          `json:"client_name"`
	ClientEmail     string          `json:"client_email"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	Total           decimal.Decimal `json:"total"`
	GoogleEventID   *string         `json:"google_event_id"`
	Message         string          `json:"message"`
}

type updateAppointmentResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	appt, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, "error creating appointment", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, createAppointmentResponse{
		ID:              appt.ID,
		ClientName:      appt.ClientName,
		ClientEmail:     appt.ClientEmail,
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
		Total:           appt.Total,
		GoogleEventID:   appt.GoogleEventID,
		Message:         "appointment created",
	})
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, "error fetching appointments", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, appts)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	appt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "error fetching appointment", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req booking.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := h.svc.Update(r.Context(), id, req); err != nil {
		h.fail(w, r, "error updating appointment", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updateAppointmentResponse{ID: id, Message: "appointment updated"})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "error deleting appointment", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "appointment deleted"})
}

func (h *AppointmentHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var ve *booking.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, storage.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "appointment not found")
	default:
		serverError(w, r, h.logger, msg, err)
	}
}
