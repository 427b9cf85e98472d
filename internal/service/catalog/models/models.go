package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateServiceRequest new catalogue entry; zero price and duration take defaults
type CreateServiceRequest struct {
	Name         string `json:"name"`
	PricePence   *int64 `json:"pricePence,omitempty"`
	DurationMins *int   `json:"durationMins,omitempty"`
}

// UpdateServiceRequest partial update, nil fields are kept
type UpdateServiceRequest struct {
	Name         *string `json:"name,omitempty"`
	PricePence   *int64  `json:"pricePence,omitempty"`
	DurationMins *int    `json:"durationMins,omitempty"`
}

// ServiceResponse catalogue entry
type ServiceResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PricePence   int64     `json:"pricePence"`
	Price        float64   `json:"price"`
	DurationMins int       `json:"durationMins"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ServiceListResponse catalogue listing
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:           s.ID,
		Name:         s.Name,
		PricePence:   s.PricePence,
		Price:        float64(s.PricePence) / 100,
		DurationMins: s.DurationMins,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func FromDomainServiceList(list []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for _, s := range list {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}
