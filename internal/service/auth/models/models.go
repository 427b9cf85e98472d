package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AdminProfile public part of an admin account
type AdminProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CustomerProfile public part of a customer account
type CustomerProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type AdminAuthResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

type CustomerAuthResponse struct {
	Token    string          `json:"token"`
	Customer CustomerProfile `json:"customer"`
}

// MeResponse exactly one of Admin and Customer is set
type MeResponse struct {
	Role     string           `json:"role"`
	Admin    *AdminProfile    `json:"admin,omitempty"`
	Customer *CustomerProfile `json:"customer,omitempty"`
}

func FromDomainAdmin(a *domain.Admin) AdminProfile {
	return AdminProfile{ID: a.ID, Email: a.Email, Name: a.Name}
}

func FromDomainCustomer(c *domain.Customer) CustomerProfile {
	return CustomerProfile{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
