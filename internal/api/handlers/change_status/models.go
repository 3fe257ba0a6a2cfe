package change_status

import (
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status         string   `json:"status"`
	TrackingNumber string   `json:"tracking_number"`
	TripLink       string   `json:"shipping_trip_link"`
	ShippingCost   *float64 `json:"shipping_cost,omitempty"`
}

// ChangeStatusResponse HTTP response model
type ChangeStatusResponse struct {
	OK   bool                        `json:"ok"`
	Item *models.AppointmentResponse `json:"item"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeStatusRequest) ToUseCaseRequest(id string) *changeStatus.Request {
	return &changeStatus.Request{
		ID:             id,
		Status:         domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		TrackingNumber: strings.TrimSpace(r.TrackingNumber),
		TripLink:       strings.TrimSpace(r.TripLink),
		ShippingCost:   r.ShippingCost,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) ChangeStatusResponse {
	return ChangeStatusResponse{OK: true, Item: models.FromDomainAppointment(resp.Appointment)}
}
