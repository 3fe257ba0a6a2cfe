package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentType kind of appointment
type AppointmentType string

const (
	TypeTryout   AppointmentType = "TRYOUT"
	TypePickup   AppointmentType = "PICKUP"
	TypeShipping AppointmentType = "SHIPPING"
)

// IsValid returns true for known appointment types
func (t AppointmentType) IsValid() bool {
	return t == TypeTryout || t == TypePickup || t == TypeShipping
}

// IsTimed returns true if the type occupies a slot inside a window
func (t AppointmentType) IsTimed() bool {
	return t == TypeTryout || t == TypePickup
}

// AppointmentStatus lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusShipped   AppointmentStatus = "SHIPPED"
	StatusDone      AppointmentStatus = "DONE"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusShipped, StatusDone, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// DeliveryMethod how the product reaches the customer
type DeliveryMethod string

const (
	DeliveryInPerson DeliveryMethod = "IN_PERSON"
	DeliveryShipping DeliveryMethod = "SHIPPING"
)

// DefaultDeliveryMethod returns the delivery method implied by the appointment type
func DefaultDeliveryMethod(t AppointmentType) DeliveryMethod {
	if t == TypeShipping {
		return DeliveryShipping
	}
	return DeliveryInPerson
}

// Customer contact data, already normalized
type Customer struct {
	Name     string
	Email    string // lower-cased
	Phone    string // digits only
	IDNumber string // digits only, optional
}

// Identity returns the anti-abuse identity of the customer
func (c Customer) Identity() Identity {
	return Identity{Email: c.Email, Phone: c.Phone, IDNumber: c.IDNumber}
}

// ShippingInfo destination and dispatch data of a SHIPPING appointment
type ShippingInfo struct {
	Address        string
	Neighborhood   string
	City           string
	Carrier        string
	Cost           *float64
	TrackingNumber *string
	TripLink       *string
	ShippedAt      *time.Time
}

// Appointment a booked TRYOUT/PICKUP slot or a SHIPPING request
type Appointment struct {
	ID             uuid.UUID
	TypeCode       AppointmentType
	Date           time.Time
	StartTime      *types.TimeString // nil for SHIPPING
	EndTime        *types.TimeString // nil for SHIPPING
	Status         AppointmentStatus
	Product        string
	DeliveryMethod DeliveryMethod
	Notes          *string

	Customer Customer
	Shipping ShippingInfo

	Reminded1hAt  *time.Time
	Reminded30mAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still holds its slot
func (a *Appointment) IsActive() bool {
	for _, st := range InactiveStatuses {
		if a.Status == st {
			return false
		}
	}
	return true
}

// Slot returns the occupied slot, ok=false for untimed appointments
func (a *Appointment) Slot() (Slot, bool) {
	if a.StartTime == nil || a.EndTime == nil {
		return Slot{}, false
	}
	return Slot{Start: *a.StartTime, End: *a.EndTime}, true
}

// StartsAt returns the absolute start instant in loc, ok=false for untimed appointments
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, bool) {
	if a.StartTime == nil {
		return time.Time{}, false
	}
	d := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, loc)
	return a.StartTime.On(d), true
}

// CanTransitionTo reports whether the status change is allowed.
// Only CONFIRMED appointments move, and SHIPPED is reserved for SHIPPING requests.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != StatusConfirmed || !next.IsValid() || next == StatusConfirmed {
		return false
	}
	if next == StatusShipped {
		return a.TypeCode == TypeShipping
	}
	return true
}

// DayFilter фильтр выборки записей за день
type DayFilter struct {
	Date            time.Time
	TypeCode        *AppointmentType // nil - все типы
	IncludeInactive bool             // включать ли отменённые
}
