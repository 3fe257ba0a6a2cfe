package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса свободных слотов
type Request struct {
	Date time.Time              // Дата (без времени)
	Type domain.AppointmentType // TRYOUT или PICKUP
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date  time.Time
	Slots []Slot
}

// Slot свободный слот
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}
