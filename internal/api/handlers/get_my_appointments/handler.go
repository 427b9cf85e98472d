package get_my_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/mine
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.ListMine(r.Context(), identity.SubjectID)
	if err != nil {
		h.logger.Error("GET /appointments/mine - Failed to list appointments: customer_id=%d, error=%v",
			identity.SubjectID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/mine - Appointments listed: customer_id=%d, count=%d",
		identity.SubjectID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
