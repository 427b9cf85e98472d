package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger store liveness; nil for the memory driver
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Response struct {
	OK      bool   `json:"ok"`
	Storage string `json:"storage"`
}

type Handler struct {
	pinger Pinger
	driver string
	logger Logger
}

func NewHandler(pinger Pinger, driver string, logger Logger) *Handler {
	return &Handler{pinger: pinger, driver: driver, logger: logger}
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Storage ping failed: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{OK: false, Storage: h.driver})
			return
		}
	}
	handlers.RespondJSON(w, http.StatusOK, Response{OK: true, Storage: h.driver})
}
