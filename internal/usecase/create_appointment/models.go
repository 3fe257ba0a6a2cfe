package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TypeCode  domain.AppointmentType
	Date      time.Time         // Дата (без времени)
	StartTime *types.TimeString // Обязательно для TRYOUT/PICKUP
	EndTime   *types.TimeString // Если не указано, start + шаг окна
	Product   string

	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	CustomerIDNumber string // Опционально

	DeliveryMethod string  // IN_PERSON | SHIPPING, по умолчанию от типа
	Notes          *string // Опционально

	// Только для SHIPPING
	ShippingAddress      string
	ShippingNeighborhood string
	ShippingCity         string
	ShippingCarrier      string
}

// Response модель ответа с созданной записью
type Response struct {
	ID        string
	TypeCode  domain.AppointmentType
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Status    domain.AppointmentStatus
}

// Options лимиты бронирования
type Options struct {
	ShippingWeekLimit int
	WeekStart         time.Weekday
}
