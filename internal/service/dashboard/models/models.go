package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ServiceCount struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Count       int    `json:"count"`
}

type StatsResponse struct {
	TotalAppointments int            `json:"totalAppointments"`
	TotalCustomers    int            `json:"totalCustomers"`
	LastDays          []DayCount     `json:"lastDays"`
	PerService        []ServiceCount `json:"perService"`
}

func FromDomainStats(s *domain.DashboardStats) *StatsResponse {
	resp := &StatsResponse{
		TotalAppointments: s.TotalAppointments,
		TotalCustomers:    s.TotalCustomers,
		LastDays:          make([]DayCount, 0, len(s.LastDays)),
		PerService:        make([]ServiceCount, 0, len(s.PerService)),
	}
	for _, d := range s.LastDays {
		resp.LastDays = append(resp.LastDays, DayCount{Date: d.Date.Format(domain.DateFormat), Count: d.Count})
	}
	for _, c := range s.PerService {
		resp.PerService = append(resp.PerService, ServiceCount{ServiceID: c.ServiceID, ServiceName: c.ServiceName, Count: c.Count})
	}
	return resp
}
