package domain

import "time"

// Service a bookable service from the catalogue
type Service struct {
	ID           int64
	Name         string
	PricePence   int64 // minor currency units
	DurationMins int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMins) * time.Minute
}
