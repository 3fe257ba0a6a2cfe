package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest проверяет базовые поля и возвращает нормализованного клиента
func validateRequest(req *Request) (domain.Customer, error) {
	name := strings.TrimSpace(req.CustomerName)
	if req.TypeCode == "" || req.Date.IsZero() || name == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
		return domain.Customer{}, fmt.Errorf("%w: type, date, name, email and phone are required", ErrMissingFields)
	}

	if !req.TypeCode.IsValid() {
		return domain.Customer{}, fmt.Errorf("%w: %q", ErrInvalidType, req.TypeCode)
	}

	id := domain.NewIdentity(req.CustomerEmail, req.CustomerPhone, req.CustomerIDNumber)

	if !domain.IsValidEmail(id.Email) {
		return domain.Customer{}, ErrInvalidEmail
	}
	if id.Phone == "" {
		return domain.Customer{}, ErrInvalidPhone
	}
	if strings.TrimSpace(req.CustomerIDNumber) != "" && id.IDNumber == "" {
		return domain.Customer{}, ErrInvalidID
	}

	if req.DeliveryMethod != "" {
		m := domain.DeliveryMethod(strings.ToUpper(req.DeliveryMethod))
		if m != domain.DeliveryInPerson && m != domain.DeliveryShipping {
			return domain.Customer{}, fmt.Errorf("%w: unknown delivery method %q", ErrMissingFields, req.DeliveryMethod)
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Product)) > domain.MaxProductLength {
		return domain.Customer{}, fmt.Errorf("%w: product exceeds %d characters", ErrMissingFields, domain.MaxProductLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.Customer{}, fmt.Errorf("%w: notes exceed %d characters", ErrMissingFields, domain.MaxNotesLength)
	}

	return domain.Customer{
		Name:     name,
		Email:    id.Email,
		Phone:    id.Phone,
		IDNumber: id.IDNumber,
	}, nil
}

// validateShipping проверяет данные доставки
func validateShipping(req *Request) error {
	if strings.TrimSpace(req.Product) == "" {
		return fmt.Errorf("%w: product is required for shipping", ErrMissingFields)
	}
	if strings.TrimSpace(req.ShippingAddress) == "" ||
		strings.TrimSpace(req.ShippingCity) == "" ||
		strings.TrimSpace(req.ShippingCarrier) == "" {
		return fmt.Errorf("%w: shipping address, city and carrier are required", ErrMissingFields)
	}
	return nil
}

// resolveSlot вычисляет конец слота и проверяет его относительно окна
func resolveSlot(req *Request, w *domain.AvailabilityWindow) (domain.Slot, error) {
	// окно с неподдерживаемым шагом не отдает слотов в доступности
	if !domain.IsValidSlotSize(w.SlotMinutes) {
		return domain.Slot{}, ErrOutsideWindow
	}

	start := *req.StartTime

	end := types.TimeString("")
	if req.EndTime != nil && !req.EndTime.IsZero() {
		end = *req.EndTime
	} else {
		computed, err := start.AddMinutes(w.SlotMinutes)
		if err != nil {
			return domain.Slot{}, ErrOutsideWindow
		}
		end = computed
	}

	if got := start.MinutesUntil(end); got != w.SlotMinutes {
		return domain.Slot{}, &SlotSizeError{Expected: w.SlotMinutes, Got: got}
	}

	if end.IsAfter(w.EndTime) {
		return domain.Slot{}, ErrOutsideWindow
	}

	return domain.Slot{Start: start, End: end}, nil
}

func deliveryMethod(req *Request) domain.DeliveryMethod {
	if req.DeliveryMethod == "" {
		return domain.DefaultDeliveryMethod(req.TypeCode)
	}
	return domain.DeliveryMethod(strings.ToUpper(req.DeliveryMethod))
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
