package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request books ServiceID at StartAt for CustomerID.
// The end is derived from the service duration.
type Request struct {
	CustomerID int64
	ServiceID  int64
	StartAt    time.Time
	Note       string
}

// Response the created appointment
type Response struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	ServiceName string
	StartAt     time.Time
	EndAt       time.Time
	Status      domain.AppointmentStatus
	Note        string
	CreatedAt   time.Time
}
