package domain

import (
	"encoding/json"
	"time"
)

// Appointment event types
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentDeleted   = "appointment.deleted"
)

// OutboxEvent event stored with the change that produced it and relayed later
type OutboxEvent struct {
	ID          int64
	EventID     string
	AggregateID int64
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// AppointmentEventPayload body of appointment events
type AppointmentEventPayload struct {
	AppointmentID int64     `json:"appointmentId"`
	CustomerID    int64     `json:"customerId"`
	ServiceID     int64     `json:"serviceId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewAppointmentEvent builds an outbox record for a; eventID must be unique
func NewAppointmentEvent(eventID, eventType string, a *Appointment, now time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(AppointmentEventPayload{
		AppointmentID: a.ID,
		CustomerID:    a.CustomerID,
		ServiceID:     a.ServiceID,
		StartAt:       a.StartAt,
		EndAt:         a.EndAt,
		Status:        string(a.Status),
		OccurredAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return &OutboxEvent{
		EventID:     eventID,
		AggregateID: a.ID,
		EventType:   eventType,
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}
