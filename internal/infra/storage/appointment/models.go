package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// StatusUpdate условное обновление статуса (только из CONFIRMED)
type StatusUpdate struct {
	ID             uuid.UUID
	Status         domain.AppointmentStatus
	TrackingNumber *string
	TripLink       *string
	ShippingCost   *float64
	ShippedAt      *time.Time
}

// FieldsUpdate правка полей записи администратором; nil - поле не меняется
type FieldsUpdate struct {
	CustomerName         *string
	CustomerEmail        *string
	CustomerPhone        *string
	CustomerIDNumber     *string
	Product              *string
	Notes                *string
	DeliveryMethod       *domain.DeliveryMethod
	ShippingAddress      *string
	ShippingNeighborhood *string
	ShippingCity         *string
	ShippingCarrier      *string
	ShippingCost         *float64
	TripLink             *string
}

// IsEmpty true, если менять нечего
func (u FieldsUpdate) IsEmpty() bool {
	return len(u.assignments()) == 0
}

// assignments колонки и новые значения в фиксированном порядке
func (u FieldsUpdate) assignments() []assignment {
	var out []assignment
	add := func(column string, set bool, value interface{}) {
		if set {
			out = append(out, assignment{column: column, value: value})
		}
	}

	add("customer_name", u.CustomerName != nil, deref(u.CustomerName))
	add("customer_email", u.CustomerEmail != nil, deref(u.CustomerEmail))
	add("customer_phone", u.CustomerPhone != nil, deref(u.CustomerPhone))
	add("customer_id_number", u.CustomerIDNumber != nil, deref(u.CustomerIDNumber))
	add("product", u.Product != nil, deref(u.Product))
	add("notes", u.Notes != nil, deref(u.Notes))
	if u.DeliveryMethod != nil {
		add("delivery_method", true, string(*u.DeliveryMethod))
	}
	add("shipping_address", u.ShippingAddress != nil, deref(u.ShippingAddress))
	add("shipping_neighborhood", u.ShippingNeighborhood != nil, deref(u.ShippingNeighborhood))
	add("shipping_city", u.ShippingCity != nil, deref(u.ShippingCity))
	add("shipping_carrier", u.ShippingCarrier != nil, deref(u.ShippingCarrier))
	if u.ShippingCost != nil {
		add("shipping_cost", true, *u.ShippingCost)
	}
	add("trip_link", u.TripLink != nil, deref(u.TripLink))

	return out
}

type assignment struct {
	column string
	value  interface{}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
