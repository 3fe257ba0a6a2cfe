package update_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model. Пустые поля не меняются.
type UpdateAppointmentRequest struct {
	CustomerName         *string  `json:"customer_name"`
	CustomerIDNumber     *string  `json:"customer_id_number"`
	CustomerEmail        *string  `json:"customer_email"`
	CustomerPhone        *string  `json:"customer_phone"`
	Product              *string  `json:"product"`
	Notes                *string  `json:"notes"`
	DeliveryMethod       *string  `json:"delivery_method"`
	ShippingAddress      *string  `json:"shipping_address"`
	ShippingNeighborhood *string  `json:"shipping_neighborhood"`
	ShippingCity         *string  `json:"shipping_city"`
	ShippingCarrier      *string  `json:"shipping_carrier"`
	ShippingCost         *float64 `json:"shipping_cost"`
	TripLink             *string  `json:"shipping_trip_link"`
}

// UpdateAppointmentResponse HTTP response model
type UpdateAppointmentResponse struct {
	OK   bool                        `json:"ok"`
	Item *models.AppointmentResponse `json:"item"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id string) *updateAppointment.Request {
	return &updateAppointment.Request{
		ID:                   id,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CustomerIDNumber:     r.CustomerIDNumber,
		Product:              r.Product,
		Notes:                r.Notes,
		DeliveryMethod:       r.DeliveryMethod,
		ShippingAddress:      r.ShippingAddress,
		ShippingNeighborhood: r.ShippingNeighborhood,
		ShippingCity:         r.ShippingCity,
		ShippingCarrier:      r.ShippingCarrier,
		ShippingCost:         r.ShippingCost,
		TripLink:             r.TripLink,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) UpdateAppointmentResponse {
	return UpdateAppointmentResponse{OK: true, Item: models.FromDomainAppointment(resp.Appointment)}
}
