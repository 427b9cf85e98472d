package domain

import "time"

// DayCount appointments starting on one calendar day
type DayCount struct {
	Date  time.Time
	Count int
}

// ServiceCount appointments per service
type ServiceCount struct {
	ServiceID   int64
	ServiceName string
	Count       int
}

// DashboardStats admin overview
type DashboardStats struct {
	TotalAppointments int
	TotalCustomers    int
	LastDays          []DayCount
	PerService        []ServiceCount
}
