package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	FindContaining(ctx context.Context, date time.Time, typeCode domain.AppointmentType, t types.TimeString) (*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ExistsActiveSlot(ctx context.Context, typeCode domain.AppointmentType, date time.Time, slot domain.Slot) (bool, error)
	HasActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, date time.Time) (bool, error)
	CountActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, from, to time.Time) (int, error)
	Insert(ctx context.Context, a *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier ставит письма о новой записи в очередь, не блокируя вызывающего
type Notifier interface {
	AppointmentCreated(a *domain.Appointment)
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated(typeCode string)
	IncBookingRejected(typeCode, kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
