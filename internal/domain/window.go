package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AvailabilityWindow administrator-defined bookable interval for a type on a date
type AvailabilityWindow struct {
	ID          int64
	Date        time.Time
	TypeCode    AppointmentType
	StartTime   types.TimeString
	EndTime     types.TimeString
	SlotMinutes int
}

// Contains returns true if t lies in [StartTime, EndTime)
func (w *AvailabilityWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.StartTime) && t.IsBefore(w.EndTime)
}

// IsValidSlotSize returns true if SlotMinutes is one of the allowed granularities
func IsValidSlotSize(m int) bool {
	for _, allowed := range AllowedSlotMinutes {
		if m == allowed {
			return true
		}
	}
	return false
}
