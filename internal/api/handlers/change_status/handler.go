package change_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.KindInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid input: id=%s, status=%s", id, req.Status)
			handlers.RespondBadRequest(w, handlers.KindInvalidInput)

		case errors.Is(err, changeStatus.ErrNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid transition: id=%s, status=%s", id, req.Status)
			handlers.RespondError(w, http.StatusConflict, "INVALID_TRANSITION", nil)

		case errors.Is(err, changeStatus.ErrNotShippingAppointment):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Not a shipping appointment: id=%s", id)
			handlers.RespondBadRequest(w, "NOT_SHIPPING_APPOINTMENT")

		case errors.Is(err, changeStatus.ErrMissingTracking):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Missing tracking number: id=%s", id)
			handlers.RespondBadRequest(w, "MISSING_TRACKING")

		case errors.Is(err, changeStatus.ErrMissingTripLink):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Missing trip link: id=%s", id)
			handlers.RespondBadRequest(w, "MISSING_TRIP_LINK")

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/status - Failed to change status: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/status - Status changed: id=%s, status=%s", id, result.Appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
