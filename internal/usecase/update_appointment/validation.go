package update_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// validateRequest проверяет запрос и собирает нормализованную правку
func validateRequest(req *Request) (uuid.UUID, appointmentRepo.FieldsUpdate, error) {
	var upd appointmentRepo.FieldsUpdate

	id, err := uuid.Parse(strings.TrimSpace(req.ID))
	if err != nil {
		return uuid.Nil, upd, fmt.Errorf("%w: id must be a uuid", ErrInvalidInput)
	}

	upd.CustomerName = present(req.CustomerName)

	if email := present(req.CustomerEmail); email != nil {
		normalized := domain.NormalizeEmail(*email)
		if !domain.IsValidEmail(normalized) {
			return uuid.Nil, upd, ErrInvalidEmail
		}
		upd.CustomerEmail = &normalized
	}

	if phone := present(req.CustomerPhone); phone != nil {
		digits := domain.DigitsOnly(*phone)
		if digits == "" {
			return uuid.Nil, upd, ErrInvalidPhone
		}
		upd.CustomerPhone = &digits
	}

	if idNumber := present(req.CustomerIDNumber); idNumber != nil {
		digits := domain.DigitsOnly(*idNumber)
		if digits == "" {
			return uuid.Nil, upd, ErrInvalidID
		}
		upd.CustomerIDNumber = &digits
	}

	if product := present(req.Product); product != nil {
		if utf8.RuneCountInString(*product) > domain.MaxProductLength {
			return uuid.Nil, upd, fmt.Errorf("%w: product exceeds %d characters", ErrInvalidInput, domain.MaxProductLength)
		}
		upd.Product = product
	}

	if notes := present(req.Notes); notes != nil {
		if len(*notes) > domain.MaxNotesLength {
			return uuid.Nil, upd, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		upd.Notes = notes
	}

	if method := present(req.DeliveryMethod); method != nil {
		m := domain.DeliveryMethod(strings.ToUpper(*method))
		if m != domain.DeliveryInPerson && m != domain.DeliveryShipping {
			return uuid.Nil, upd, fmt.Errorf("%w: unknown delivery method %q", ErrInvalidInput, *method)
		}
		upd.DeliveryMethod = &m
	}

	if req.ShippingCost != nil {
		if *req.ShippingCost < 0 {
			return uuid.Nil, upd, fmt.Errorf("%w: shipping cost must not be negative", ErrInvalidInput)
		}
		upd.ShippingCost = req.ShippingCost
	}

	upd.ShippingAddress = present(req.ShippingAddress)
	upd.ShippingNeighborhood = present(req.ShippingNeighborhood)
	upd.ShippingCity = present(req.ShippingCity)
	upd.ShippingCarrier = present(req.ShippingCarrier)
	upd.TripLink = present(req.TripLink)

	return id, upd, nil
}

// present возвращает обрезанное значение или nil для пустого
func present(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
