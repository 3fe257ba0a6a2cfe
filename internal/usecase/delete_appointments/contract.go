package delete_appointments

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
