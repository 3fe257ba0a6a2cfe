package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListByDateRequest запрос записей за день
type ListByDateRequest struct {
	Date            string  `json:"date"`           // YYYY-MM-DD
	Type            *string `json:"type,omitempty"` // TRYOUT | PICKUP | SHIPPING
	IncludeInactive bool    `json:"include_inactive,omitempty"`
}

// CustomerResponse контактные данные клиента
type CustomerResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IDNumber string `json:"id_number,omitempty"`
}

// ShippingResponse данные доставки
type ShippingResponse struct {
	Address        string     `json:"address"`
	Neighborhood   string     `json:"neighborhood,omitempty"`
	City           string     `json:"city"`
	Carrier        string     `json:"carrier"`
	Cost           *float64   `json:"cost,omitempty"`
	TrackingNumber *string    `json:"tracking_number,omitempty"`
	TripLink       *string    `json:"trip_link,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
}

// AppointmentResponse запись для админки
type AppointmentResponse struct {
	ID             string            `json:"id"`
	TypeCode       string            `json:"type_code"`
	Date           string            `json:"date"`
	StartTime      *string           `json:"start_time"`
	EndTime        *string           `json:"end_time"`
	Minutes        *int              `json:"minutes,omitempty"`
	Status         string            `json:"status"`
	Product        string            `json:"product,omitempty"`
	DeliveryMethod string            `json:"delivery_method"`
	Notes          *string           `json:"notes,omitempty"`
	Customer       CustomerResponse  `json:"customer"`
	Shipping       *ShippingResponse `json:"shipping,omitempty"`
	Reminded1hAt   *time.Time        `json:"reminded_1h_at,omitempty"`
	Reminded30mAt  *time.Time        `json:"reminded_30m_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// AppointmentListResponse список записей за день
type AppointmentListResponse struct {
	Date         string                 `json:"date"`
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:             a.ID.String(),
		TypeCode:       string(a.TypeCode),
		Date:           a.Date.Format(domain.DateFormat),
		Status:         string(a.Status),
		Product:        a.Product,
		DeliveryMethod: string(a.DeliveryMethod),
		Notes:          a.Notes,
		Customer: CustomerResponse{
			Name:     a.Customer.Name,
			Email:    a.Customer.Email,
			Phone:    a.Customer.Phone,
			IDNumber: a.Customer.IDNumber,
		},
		Reminded1hAt:  a.Reminded1hAt,
		Reminded30mAt: a.Reminded30mAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if slot, ok := a.Slot(); ok {
		start, end, minutes := slot.Start.String(), slot.End.String(), slot.Minutes()
		resp.StartTime = &start
		resp.EndTime = &end
		resp.Minutes = &minutes
	}

	if a.TypeCode == domain.TypeShipping {
		resp.Shipping = &ShippingResponse{
			Address:        a.Shipping.Address,
			Neighborhood:   a.Shipping.Neighborhood,
			City:           a.Shipping.City,
			Carrier:        a.Shipping.Carrier,
			Cost:           a.Shipping.Cost,
			TrackingNumber: a.Shipping.TrackingNumber,
			TripLink:       a.Shipping.TripLink,
			ShippedAt:      a.Shipping.ShippedAt,
		}
	}

	return resp
}

// FromDomainAppointmentList конвертирует список доменных записей
func FromDomainAppointmentList(date time.Time, list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Date:         date.Format(domain.DateFormat),
		Appointments: make([]*AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, FromDomainAppointment(a))
	}
	return resp
}
