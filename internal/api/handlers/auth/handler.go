package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/auth"
	"github.com/m04kA/SMC-AppointmentService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgCredentials        = "Email and password are required"
	msgRegisterRequired   = "Name, email and password are required"
	msgInvalidCredentials = "Invalid credentials"
	msgEmailTaken         = "Email already registered"
	msgPasswordTooShort   = "Password must be at least 6 characters"
	msgInvalidEmail       = "Email is invalid"
	msgAccountNotFound    = "Account not found"
)

// Handler sign-in, sign-up and profile endpoints
type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// AdminLogin POST /api/v1/auth/admin/login
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r, "POST /auth/admin/login")
	if !ok {
		return
	}
	result, err := h.service.AdminLogin(r.Context(), req)
	if err != nil {
		h.respondLoginError(w, "POST /auth/admin/login", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CustomerLogin POST /api/v1/auth/customer/login
func (h *Handler) CustomerLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r, "POST /auth/customer/login")
	if !ok {
		return
	}
	result, err := h.service.CustomerLogin(r.Context(), req)
	if err != nil {
		h.respondLoginError(w, "POST /auth/customer/login", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CustomerRegister POST /api/v1/auth/customer/register
func (h *Handler) CustomerRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/customer/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CustomerRegister(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)
		case errors.Is(err, domain.ErrPasswordTooShort):
			handlers.RespondBadRequest(w, msgPasswordTooShort)
		case errors.Is(err, domain.ErrInvalidEmail):
			if req.Email == "" {
				handlers.RespondBadRequest(w, msgRegisterRequired)
				return
			}
			handlers.RespondBadRequest(w, msgInvalidEmail)
		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgRegisterRequired)
		default:
			h.logger.Error("POST /auth/customer/register - Failed to register: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/customer/register - Customer registered: customer_id=%d", result.Customer.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Me GET /api/v1/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.Me(r.Context(), identity)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			h.logger.Warn("GET /auth/me - Account not found: %s=%d", identity.Role, identity.SubjectID)
			handlers.RespondNotFound(w, msgAccountNotFound)
			return
		}
		h.logger.Error("GET /auth/me - Failed to load profile: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeLogin(w http.ResponseWriter, r *http.Request, route string) (*models.LoginRequest, bool) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}
	if req.Email == "" || req.Password == "" {
		handlers.RespondBadRequest(w, msgCredentials)
		return nil, false
	}
	return &req, true
}

func (h *Handler) respondLoginError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		handlers.RespondUnauthorized(w, msgInvalidCredentials)
		return
	}
	h.logger.Error("%s - Failed to sign in: %v", route, err)
	handlers.RespondInternalError(w)
}
