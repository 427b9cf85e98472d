package customers

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/customers/models"
)

type CustomerService interface {
	List(ctx context.Context) (*models.CustomerListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error)
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
