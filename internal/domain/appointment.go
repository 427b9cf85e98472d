package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusPending   AppointmentStatus = "pending"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus validates a status string
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// Appointment a booked interval for one customer and service
type Appointment struct {
	ID         int64
	CustomerID int64
	ServiceID  int64
	StartAt    time.Time
	EndAt      time.Time
	Status     AppointmentStatus
	Note       string

	// Denormalized for listings, filled by list queries
	CustomerName  string
	CustomerEmail string
	ServiceName   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns [StartAt, EndAt)
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// IsActive cancelled appointments do not occupy time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed || a.Status == StatusPending
}

// AppointmentFilter narrows appointment listings.
// Nil fields do not restrict the result.
type AppointmentFilter struct {
	CustomerID       *int64
	From             *time.Time // StartAt >= From
	To               *time.Time // StartAt < To
	Status           *AppointmentStatus
	IncludeCancelled bool
}

// ActiveIntervals returns the intervals of non-cancelled appointments
func ActiveIntervals(appointments []*Appointment) []Interval {
	result := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		if a.IsActive() {
			result = append(result, a.Interval())
		}
	}
	return result
}
