package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.KindInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, createAppointment.Kind(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, &req, err)
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, type=%s, date=%s",
		result.ID, result.TypeCode, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, CreateAppointmentResponse{OK: true, ID: result.ID})
}

func (h *Handler) respondError(w http.ResponseWriter, req *CreateAppointmentRequest, err error) {
	kind := createAppointment.Kind(err)

	var (
		sizeErr  *createAppointment.SlotSizeError
		limitErr *createAppointment.LimitError
	)

	switch {
	case errors.As(err, &sizeErr):
		h.logger.Warn("POST /appointments - Invalid slot size: type=%s, date=%s, expected=%d, got=%d",
			req.TypeCode, req.Date, sizeErr.Expected, sizeErr.Got)
		handlers.RespondError(w, http.StatusBadRequest, kind, map[string]int{
			"expected": sizeErr.Expected,
			"got":      sizeErr.Got,
		})

	case errors.As(err, &limitErr):
		h.logger.Warn("POST /appointments - User limit reached: type=%s, date=%s, scope=%s",
			req.TypeCode, req.Date, limitErr.Scope)
		meta := map[string]interface{}{"scope": limitErr.Scope}
		if limitErr.Scope == createAppointment.ScopeWeek {
			meta["limit"] = limitErr.Limit
		}
		handlers.RespondTooManyRequests(w, kind, meta)

	case errors.Is(err, createAppointment.ErrSlotTaken):
		h.logger.Warn("POST /appointments - Slot taken: type=%s, date=%s, start=%s", req.TypeCode, req.Date, req.StartTime)
		handlers.RespondError(w, http.StatusConflict, kind, nil)

	case kind == handlers.KindServerError:
		h.logger.Error("POST /appointments - Failed to create appointment: type=%s, date=%s, error=%v",
			req.TypeCode, req.Date, err)
		handlers.RespondInternalError(w)

	default:
		h.logger.Warn("POST /appointments - Validation failed: type=%s, date=%s, kind=%s", req.TypeCode, req.Date, kind)
		handlers.RespondBadRequest(w, kind)
	}
}
