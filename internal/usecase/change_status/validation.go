package change_status

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(req.ID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id must be a uuid", ErrInvalidInput)
	}

	if !req.Status.IsValid() {
		return uuid.Nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.ShippingCost != nil && *req.ShippingCost < 0 {
		return uuid.Nil, fmt.Errorf("%w: shipping cost must not be negative", ErrInvalidInput)
	}

	return id, nil
}

// validateShipment проверяет данные отправки: PICAP требует ссылку на поездку, остальные трек-номер
func validateShipment(a *domain.Appointment, req *Request) error {
	if a.TypeCode != domain.TypeShipping {
		return ErrNotShippingAppointment
	}

	if strings.EqualFold(a.Shipping.Carrier, domain.CarrierPicap) {
		if strings.TrimSpace(req.TripLink) == "" {
			return ErrMissingTripLink
		}
		return nil
	}

	if strings.TrimSpace(req.TrackingNumber) == "" {
		return ErrMissingTracking
	}
	return nil
}
