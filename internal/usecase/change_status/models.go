package change_status

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса смены статуса
type Request struct {
	ID     string
	Status domain.AppointmentStatus

	// Только для SHIPPED
	TrackingNumber string
	TripLink       string
	ShippingCost   *float64
}

// Response обновленная запись
type Response struct {
	Appointment *domain.Appointment
}
