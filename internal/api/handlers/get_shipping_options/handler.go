package get_shipping_options

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service ShippingService
	logger  Logger
}

func NewHandler(service ShippingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shipping-options?city=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))

	options := h.service.OptionsFor(city)

	h.logger.Info("GET /shipping-options - city=%q, options=%v", city, options.Carriers)
	handlers.RespondJSON(w, http.StatusOK, FromServiceOptions(options))
}
