package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Allowed slot granularities for availability windows
var AllowedSlotMinutes = []int{15, 20, 30}

// Booking limits
const (
	// DefaultShippingWeekLimit max SHIPPING requests per identity per calendar week
	DefaultShippingWeekLimit = 3
	MaxNotesLength           = 1000
	MaxProductLength         = 200
)

// Shipping carriers
const (
	CarrierPicap           = "PICAP"
	CarrierInterrapidisimo = "INTERRAPIDISIMO"
)

// InactiveStatuses statuses ignored by conflict checks, anti-abuse counters and reminders
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
