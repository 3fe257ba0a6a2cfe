package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.KindInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/appointments/{id} - Invalid input: id=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, handlers.KindInvalidInput)

		case errors.Is(err, updateAppointment.ErrInvalidEmail):
			h.logger.Warn("PATCH /admin/appointments/{id} - Invalid email: id=%s", id)
			handlers.RespondBadRequest(w, "INVALID_EMAIL")

		case errors.Is(err, updateAppointment.ErrInvalidPhone):
			h.logger.Warn("PATCH /admin/appointments/{id} - Invalid phone: id=%s", id)
			handlers.RespondBadRequest(w, "INVALID_PHONE")

		case errors.Is(err, updateAppointment.ErrInvalidID):
			h.logger.Warn("PATCH /admin/appointments/{id} - Invalid id number: id=%s", id)
			handlers.RespondBadRequest(w, "INVALID_ID")

		case errors.Is(err, updateAppointment.ErrNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w)

		default:
			h.logger.Error("PATCH /admin/appointments/{id} - Failed to update appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id} - Appointment updated: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
