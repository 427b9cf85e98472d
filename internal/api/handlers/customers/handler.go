package customers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers/models"
)

const (
	msgInvalidCustomerID  = "Invalid customer id"
	msgInvalidRequestBody = "Invalid request body"
	msgNotFound           = "Customer not found"
	msgEmailTaken         = "Email already registered"
	msgHasAppointments    = "Customer has appointments and cannot be deleted"
	msgPasswordTooShort   = "Password must be at least 6 characters"
)

// Handler customer administration endpoints
type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/customers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /customers - Failed to list customers: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/customers/{customerId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "GET /customers/{id}")
	if !ok {
		return
	}
	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /customers/{id}", id, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/customers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /customers", 0, err)
		return
	}
	h.logger.Info("POST /customers - Customer created: customer_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/customers/{customerId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /customers/{id}")
	if !ok {
		return
	}
	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /customers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /customers/{id}", id, err)
		return
	}
	h.logger.Info("PUT /customers/{id} - Customer updated: customer_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/customers/{customerId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /customers/{id}")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /customers/{id}", id, err)
		return
	}
	h.logger.Info("DELETE /customers/{id} - Customer deleted: customer_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "customerId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, customers.ErrCustomerNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, customers.ErrEmailTaken):
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, customers.ErrCustomerHasAppointments):
		h.logger.Warn("%s - Customer has appointments: customer_id=%d", route, id)
		handlers.RespondConflict(w, msgHasAppointments)

	case errors.Is(err, domain.ErrPasswordTooShort):
		handlers.RespondBadRequest(w, msgPasswordTooShort)

	case errors.Is(err, customers.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err, customers.ErrInvalidInput))

	default:
		h.logger.Error("%s - Failed: customer_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
