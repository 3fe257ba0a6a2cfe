package delete_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	deleteAppointments "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_appointments"
)

type Handler struct {
	useCase DeleteAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DeleteAppointmentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		// ids не массив - та же ошибка, что и пустой список
		h.logger.Warn("DELETE /admin/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, KindInvalidIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, deleteAppointments.ErrInvalidIDs):
			h.logger.Warn("DELETE /admin/appointments - Invalid ids: %v", err)
			handlers.RespondBadRequest(w, KindInvalidIDs)

		default:
			h.logger.Error("DELETE /admin/appointments - Failed to delete appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/appointments - Deleted %d appointments", result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
