package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers/models"
)

// Service customer administration
type Service struct {
	customerRepo CustomerRepository
	hasher       PasswordHasher
	logger       Logger
}

func NewService(customerRepo CustomerRepository, hasher PasswordHasher, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

func (s *Service) List(ctx context.Context) (*models.CustomerListResponse, error) {
	list, err := s.customerRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCustomerList(list), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error) {
	c, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCustomer(c), nil
}

// Create registers a customer with the same rules as self sign-up
func (s *Service) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	c, err := s.Register(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCustomer(c), nil
}

// Register validates, hashes the password and stores the customer
func (s *Service) Register(ctx context.Context, name, email, phone, password string) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:  strings.TrimSpace(name),
		Email: domain.NormalizeEmail(email),
		Phone: strings.TrimSpace(phone),
	}
	if err := domain.ValidateProfile(c.Name, c.Email); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := domain.ValidatePassword(password); err != nil {
		s.logger.Warn("Register: validation failed for %s: %v", c.Email, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Register: hash password: %v", err)
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	c.PasswordHash = hash

	created, err := s.customerRepo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, customerRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email %s already registered", c.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: customer id=%d registered", created.ID)
	return created, nil
}

// Update changes name, email or phone
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	c, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if err := domain.ValidateProfile(c.Name, c.Email); err != nil {
		s.logger.Warn("Update: validation failed for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	updated, err := s.customerRepo.Update(ctx, c)
	if err != nil {
		switch {
		case errors.Is(err, customerRepo.ErrCustomerNotFound):
			return nil, ErrCustomerNotFound
		case errors.Is(err, customerRepo.ErrEmailTaken):
			s.logger.Warn("Update: email %s already registered", c.Email)
			return nil, ErrEmailTaken
		default:
			s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: customer id=%d updated", id)
	return models.FromDomainCustomer(updated), nil
}

// Delete removes a customer who has no appointments at all
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, customerRepo.ErrCustomerNotFound):
			s.logger.Warn("Delete: customer id=%d not found", id)
			return ErrCustomerNotFound
		case errors.Is(err, customerRepo.ErrCustomerHasAppointments):
			s.logger.Warn("Delete: customer id=%d has appointments", id)
			return ErrCustomerHasAppointments
		default:
			s.logger.Error("Delete: repository error for customer id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}
	s.logger.Info("Delete: customer id=%d deleted", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("%s: customer id=%d not found", op, id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("%s: repository error for customer id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return c, nil
}
