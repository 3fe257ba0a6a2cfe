package list_appointments

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ListAppointmentsResponse HTTP response model
type ListAppointmentsResponse struct {
	OK    bool                          `json:"ok"`
	Date  string                        `json:"date"`
	Items []*models.AppointmentResponse `json:"items"`
	Total int                           `json:"total"`
}

// ToServiceRequest конвертирует query параметры в модель сервиса
func ToServiceRequest(q url.Values) *models.ListByDateRequest {
	req := &models.ListByDateRequest{Date: strings.TrimSpace(q.Get("date"))}
	if t := strings.TrimSpace(q.Get("type")); t != "" {
		req.Type = &t
	}
	if v, err := strconv.ParseBool(q.Get("include_inactive")); err == nil {
		req.IncludeInactive = v
	}
	return req
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentListResponse) ListAppointmentsResponse {
	items := resp.Appointments
	if items == nil {
		items = []*models.AppointmentResponse{}
	}
	return ListAppointmentsResponse{OK: true, Date: resp.Date, Items: items, Total: resp.Total}
}
