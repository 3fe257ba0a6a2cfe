package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	TypeCode         string  `json:"type_code"`  // TRYOUT | PICKUP | SHIPPING
	Date             string  `json:"date"`       // "2025-06-11"
	StartTime        string  `json:"start_time"` // "10:00"
	EndTime          string  `json:"end_time"`   // опционально
	Product          string  `json:"product"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
	CustomerIDNumber string  `json:"customer_id_number"`
	DeliveryMethod   string  `json:"delivery_method"` // IN_PERSON | SHIPPING
	Notes            *string `json:"notes,omitempty"`

	ShippingAddress      string `json:"shipping_address"`
	ShippingNeighborhood string `json:"shipping_neighborhood"`
	ShippingCity         string `json:"shipping_city"`
	ShippingCarrier      string `json:"shipping_carrier"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые дата и время остаются нулевыми: их отсутствие проверяет use case.
// Ошибки разбора оборачивают ошибки use case, чтобы код ответа считался через createAppointment.Kind.
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	req := &createAppointment.Request{
		TypeCode:             domain.AppointmentType(strings.ToUpper(strings.TrimSpace(r.TypeCode))),
		Product:              r.Product,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CustomerIDNumber:     r.CustomerIDNumber,
		DeliveryMethod:       strings.TrimSpace(r.DeliveryMethod),
		Notes:                r.Notes,
		ShippingAddress:      r.ShippingAddress,
		ShippingNeighborhood: r.ShippingNeighborhood,
		ShippingCity:         r.ShippingCity,
		ShippingCarrier:      strings.ToUpper(strings.TrimSpace(r.ShippingCarrier)),
	}

	if d := strings.TrimSpace(r.Date); d != "" {
		date, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", createAppointment.ErrInvalidDate, d)
		}
		req.Date = date
	}

	start, err := parseOptionalTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	req.StartTime = start

	end, err := parseOptionalTime(r.EndTime)
	if err != nil {
		return nil, err
	}
	req.EndTime = end

	return req, nil
}

func parseOptionalTime(s string) (*types.TimeString, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", createAppointment.ErrMissingSlot, err)
	}
	return &t, nil
}
