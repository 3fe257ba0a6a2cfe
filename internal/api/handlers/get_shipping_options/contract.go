package get_shipping_options

import "github.com/m04kA/SMC-AppointmentService/internal/service/shipping"

type ShippingService interface {
	OptionsFor(city string) shipping.Options
}

type Logger interface {
	Info(format string, v ...interface{})
}
