package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
)

// AppointmentStore атомарно помечает записи, которым пора отправить напоминание
type AppointmentStore interface {
	ClaimDue(ctx context.Context, bucket domain.ReminderBucket, now time.Time) ([]*domain.Appointment, error)
}

// MessageBuilder собирает письмо-напоминание
type MessageBuilder interface {
	Reminder(a *domain.Appointment, bucket domain.ReminderBucket) (mailer.Message, error)
}

// Gateway канал доставки писем
type Gateway interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Metrics счетчики воркера напоминаний
type Metrics interface {
	ObserveRemindersClaimed(bucket string, n int)
	IncReminderClaimError(bucket string)
	IncNotificationSent(kind string)
	IncNotificationFailed(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
