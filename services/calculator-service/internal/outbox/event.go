package outbox

import "encoding/json"

const (
	AggregateAppointment = "appointment"

	AppointmentCreated = "booking.appointment.created.v1"
	AppointmentUpdated = "booking.appointment.updated.v1"
	AppointmentDeleted = "booking.appointment.deleted.v1"
)

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

func NewEvent(aggregateType, aggregateID, eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       raw,
	}, nil
}
