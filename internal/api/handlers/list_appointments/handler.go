package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
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

// Handle GET /api/v1/admin/appointments
// Query params: date (required, YYYY-MM-DD), type (optional), include_inactive (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := ToServiceRequest(r.URL.Query())
	if req.Date == "" {
		h.logger.Warn("GET /admin/appointments - Missing date")
		handlers.RespondBadRequest(w, handlers.KindMissingParam)
		return
	}

	result, err := h.service.ListByDate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid input: date=%s: %v", req.Date, err)
			handlers.RespondBadRequest(w, handlers.KindInvalidInput)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved: date=%s, total=%d", req.Date, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
