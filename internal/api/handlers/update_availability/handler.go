package update_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

const msgInvalidRequestBody = "Invalid request body"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /availability - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err, schedule.ErrInvalidInput))
			return
		}
		h.logger.Error("PUT /availability - Failed to update schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /availability - Schedule updated: slot_step_mins=%d", result.SlotStepMins)
	handlers.RespondJSON(w, http.StatusOK, result)
}
