package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListRequest admin listing filter. Status empty means every non-cancelled status.
type ListRequest struct {
	From   *time.Time
	To     *time.Time
	Status *string
}

// ToDomainFilter converts the request into a repository filter
func (r *ListRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{From: r.From, To: r.To}
	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// PartyRef customer summary embedded in listings
type PartyRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ServiceRef service summary embedded in listings
type ServiceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// AppointmentResponse one appointment. Instants are RFC 3339.
type AppointmentResponse struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customerId"`
	ServiceID  int64      `json:"serviceId"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Status     string     `json:"status"`
	Note       string     `json:"note"`
	CreatedAt  time.Time  `json:"createdAt"`
	Customer   PartyRef   `json:"customer"`
	Service    ServiceRef `json:"service"`
}

// AppointmentListResponse listing
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		ServiceID:  a.ServiceID,
		Start:      a.StartAt,
		End:        a.EndAt,
		Status:     string(a.Status),
		Note:       a.Note,
		CreatedAt:  a.CreatedAt,
		Customer:   PartyRef{ID: a.CustomerID, Name: a.CustomerName, Email: a.CustomerEmail},
		Service:    ServiceRef{ID: a.ServiceID, Name: a.ServiceName},
	}
}

func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(list))}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
