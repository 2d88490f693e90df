package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/costcalc/libs/db"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/outbox"
	"github.com/shopspring/decimal"
)

// AppointmentRepository persists appointments. When an outbox repository is attached,
// every mutation also records a lifecycle event in the same transaction.
type AppointmentRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewAppointmentRepository(pool *db.Pool, outboxRepo *outbox.Repository) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, outbox: outboxRepo}
}

const appointmentColumns = `
	id, client_name, client_email, client_phone,
	appointment_date::text, to_char(appointment_time, 'HH24:MI'),
	items, total::text, notes, status, google_event_id, created_at, updated_at`

func (r *AppointmentRepository) InsertAppointment(ctx context.Context, appt *model.Appointment) (int64, error) {
	items, err := json.Marshal(appt.Items)
	if err != nil {
		return 0, fmt.Errorf("encode items: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments
			(client_name, client_email, client_phone, appointment_date, appointment_time,
			 items, total, notes, status, google_event_id)
		VALUES ($1, $2, $3, $4::date, $5::time, $6, $7::numeric, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, appt.ClientName, appt.ClientEmail, appt.ClientPhone, appt.AppointmentDate, appt.AppointmentTime,
		items, appt.Total.String(), appt.Notes, string(appt.Status), appt.GoogleEventID,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		return 0, err
	}

	if err := r.record(ctx, tx, appt.ID, outbox.AppointmentCreated, map[string]any{
		"appointment_id":   appt.ID,
		"client_name":      appt.ClientName,
		"client_email":     appt.ClientEmail,
		"appointment_date": appt.AppointmentDate,
		"appointment_time": appt.AppointmentTime,
		"total":            appt.Total,
		"status":           appt.Status,
		"google_event_id":  appt.GoogleEventID,
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return appt.ID, nil
}

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id int64) (model.Appointment, error) {
	appt, err := scanAppointment(r.pool.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return model.Appointment{}, notFoundIfNoRows(err)
	}
	return appt, nil
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, id int64, c model.AppointmentChanges) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET client_name = $2,
			client_email = $3,
			client_phone = $4,
			appointment_date = $5::date,
			appointment_time = $6::time,
			status = $7,
			notes = $8,
			updated_at = now()
		WHERE id = $1
	`, id, c.ClientName, c.ClientEmail, c.ClientPhone, c.AppointmentDate, c.AppointmentTime, string(c.Status), c.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := r.record(ctx, tx, id, outbox.AppointmentUpdated, map[string]any{
		"appointment_id":   id,
		"appointment_date": c.AppointmentDate,
		"appointment_time": c.AppointmentTime,
		"status":           c.Status,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := r.record(ctx, tx, id, outbox.AppointmentDeleted, map[string]any{
		"appointment_id": id,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListAppointments returns every appointment, latest date and time first.
func (r *AppointmentRepository) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		ORDER BY appointment_date DESC, appointment_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := []model.Appointment{}
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func (r *AppointmentRepository) record(ctx context.Context, tx pgx.Tx, id int64, eventType string, payload map[string]any) error {
	if r.outbox == nil {
		return nil
	}
	evt, err := outbox.NewEvent(outbox.AggregateAppointment, strconv.FormatInt(id, 10), eventType, payload)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}
	if err := r.outbox.Insert(ctx, tx, evt); err != nil {
		return fmt.Errorf("write %s event: %w", eventType, err)
	}
	return nil
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var appt model.Appointment
	var items []byte
	var total string
	var status string
	if err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.ClientEmail,
		&appt.ClientPhone,
		&appt.AppointmentDate,
		&appt.AppointmentTime,
		&items,
		&total,
		&appt.Notes,
		&status,
		&appt.GoogleEventID,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return model.Appointment{}, err
	}
	appt.Status = model.Status(status)

	if err := json.Unmarshal(items, &appt.Items); err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %d items: %w", appt.ID, err)
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %d total: %w", appt.ID, err)
	}
	appt.Total = t
	return appt, nil
}
