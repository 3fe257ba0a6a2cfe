package update_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request правка записи. nil или пустая строка - поле не меняется.
type Request struct {
	ID string

	CustomerName     *string
	CustomerEmail    *string
	CustomerPhone    *string
	CustomerIDNumber *string

	Product        *string
	Notes          *string
	DeliveryMethod *string

	ShippingAddress      *string
	ShippingNeighborhood *string
	ShippingCity         *string
	ShippingCarrier      *string
	ShippingCost         *float64
	TripLink             *string
}

// Response запись после правки
type Response struct {
	Appointment *domain.Appointment
}
