package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP body. EndISO is accepted for compatibility
// but ignored: the end always follows from the service duration.
type CreateAppointmentRequest struct {
	ServiceID int64   `json:"serviceId"`
	StartISO  string  `json:"startISO"`
	EndISO    *string `json:"endISO,omitempty"`
	Note      string  `json:"note"`
}

// AppointmentResponse HTTP response
type AppointmentResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ServiceID   int64     `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest parses the RFC 3339 start
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (*createAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartISO)
	if err != nil {
		return nil, err
	}
	return &createAppointment.Request{
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		StartAt:    start,
		Note:       r.Note,
	}, nil
}

func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		CustomerID:  resp.CustomerID,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Start:       resp.StartAt,
		End:         resp.EndAt,
		Status:      string(resp.Status),
		Note:        resp.Note,
		CreatedAt:   resp.CreatedAt,
	}
}
