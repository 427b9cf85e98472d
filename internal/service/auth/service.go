package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	adminRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/admin"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-AppointmentService/internal/service/auth/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers"
)

// Service sign-in and sign-up for admins and customers
type Service struct {
	adminRepo    AdminRepository
	customerRepo CustomerRepository
	registrar    Registrar
	issuer       TokenIssuer
	passwords    PasswordComparer
	logger       Logger
}

func NewService(
	adminRepo AdminRepository,
	customerRepo CustomerRepository,
	registrar Registrar,
	issuer TokenIssuer,
	passwords PasswordComparer,
	logger Logger,
) *Service {
	return &Service{
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		registrar:    registrar,
		issuer:       issuer,
		passwords:    passwords,
		logger:       logger,
	}
}

func (s *Service) AdminLogin(ctx context.Context, req *models.LoginRequest) (*models.AdminAuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("AdminLogin: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("AdminLogin: repository error: %v", err)
		return nil, fmt.Errorf("%w: AdminLogin - repository error: %v", ErrInternal, err)
	}
	if err := s.checkPassword("AdminLogin", admin.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	tok, err := s.issue("AdminLogin", admin.ID, admin.Email, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AdminLogin: admin id=%d signed in", admin.ID)
	return &models.AdminAuthResponse{Token: tok, Admin: models.FromDomainAdmin(admin)}, nil
}

func (s *Service) CustomerRegister(ctx context.Context, req *models.RegisterRequest) (*models.CustomerAuthResponse, error) {
	c, err := s.registrar.Register(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		case errors.Is(err, customers.ErrEmailTaken):
			return nil, ErrEmailTaken
		default:
			return nil, fmt.Errorf("%w: CustomerRegister: %v", ErrInternal, err)
		}
	}

	tok, err := s.issue("CustomerRegister", c.ID, c.Email, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return &models.CustomerAuthResponse{Token: tok, Customer: models.FromDomainCustomer(c)}, nil
}

func (s *Service) CustomerLogin(ctx context.Context, req *models.LoginRequest) (*models.CustomerAuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	c, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("CustomerLogin: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("CustomerLogin: repository error: %v", err)
		return nil, fmt.Errorf("%w: CustomerLogin - repository error: %v", ErrInternal, err)
	}
	if err := s.checkPassword("CustomerLogin", c.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	tok, err := s.issue("CustomerLogin", c.ID, c.Email, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CustomerLogin: customer id=%d signed in", c.ID)
	return &models.CustomerAuthResponse{Token: tok, Customer: models.FromDomainCustomer(c)}, nil
}

// Me resolves the profile behind an authenticated identity
func (s *Service) Me(ctx context.Context, identity domain.Identity) (*models.MeResponse, error) {
	switch identity.Role {
	case domain.RoleAdmin:
		admin, err := s.adminRepo.GetByID(ctx, identity.SubjectID)
		if err != nil {
			if errors.Is(err, adminRepo.ErrAdminNotFound) {
				return nil, ErrAccountNotFound
			}
			s.logger.Error("Me: repository error for admin id=%d: %v", identity.SubjectID, err)
			return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
		}
		profile := models.FromDomainAdmin(admin)
		return &models.MeResponse{Role: string(domain.RoleAdmin), Admin: &profile}, nil
	case domain.RoleCustomer:
		c, err := s.customerRepo.GetByID(ctx, identity.SubjectID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				return nil, ErrAccountNotFound
			}
			s.logger.Error("Me: repository error for customer id=%d: %v", identity.SubjectID, err)
			return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
		}
		profile := models.FromDomainCustomer(c)
		return &models.MeResponse{Role: string(domain.RoleCustomer), Customer: &profile}, nil
	default:
		return nil, ErrAccountNotFound
	}
}

// checkPassword an empty hash never matches
func (s *Service) checkPassword(op, hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrInvalidCredentials
	}
	if err := s.passwords.Compare(hash, plain); err != nil {
		s.logger.Warn("%s: password check failed: %v", op, err)
		return ErrInvalidCredentials
	}
	return nil
}

func (s *Service) issue(op string, id int64, email string, role domain.Role) (string, error) {
	tok, err := s.issuer.Issue(id, email, string(role))
	if err != nil {
		s.logger.Error("%s: issue token: %v", op, err)
		return "", fmt.Errorf("%w: %s - issue token: %v", ErrInternal, op, err)
	}
	return tok, nil
}
