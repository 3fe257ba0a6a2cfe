package get_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

const (
	kindInvalidType = "INVALID_TYPE"
	kindInvalidDate = "INVALID_DATE"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), type (required, TRYOUT | PICKUP)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	typeStr := strings.TrimSpace(r.URL.Query().Get("type"))
	if dateStr == "" || typeStr == "" {
		h.logger.Warn("GET /availability - Missing params: date=%q, type=%q", dateStr, typeStr)
		handlers.RespondBadRequest(w, handlers.KindMissingParam)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, typeStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, kindInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidType):
			h.logger.Warn("GET /availability - Invalid type: type=%s", typeStr)
			handlers.RespondBadRequest(w, kindInvalidType)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: date=%s", dateStr)
			handlers.RespondBadRequest(w, kindInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, type=%s, error=%v",
				dateStr, typeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: date=%s, type=%s, slots=%d",
		dateStr, useCaseReq.Type, len(result.Slots))
	handlers.RespondData(w, http.StatusOK, FromUseCaseResponse(useCaseReq.Type, result))
}
