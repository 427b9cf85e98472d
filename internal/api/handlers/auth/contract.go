package auth

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/auth/models"
)

type AuthService interface {
	AdminLogin(ctx context.Context, req *models.LoginRequest) (*models.AdminAuthResponse, error)
	CustomerRegister(ctx context.Context, req *models.RegisterRequest) (*models.CustomerAuthResponse, error)
	CustomerLogin(ctx context.Context, req *models.LoginRequest) (*models.CustomerAuthResponse, error)
	Me(ctx context.Context, identity domain.Identity) (*models.MeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
