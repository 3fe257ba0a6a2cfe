package get_shipping_options

import "github.com/m04kA/SMC-AppointmentService/internal/service/shipping"

// ShippingOptionsResponse HTTP response model
type ShippingOptionsResponse struct {
	OK      bool     `json:"ok"`
	City    string   `json:"city"`
	Options []string `json:"options"`
}

// FromServiceOptions конвертирует ответ сервиса в HTTP response
func FromServiceOptions(o shipping.Options) ShippingOptionsResponse {
	return ShippingOptionsResponse{OK: true, City: o.City, Options: o.Carriers}
}
