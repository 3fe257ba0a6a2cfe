package notifications

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
)

// Gateway канал доставки писем
type Gateway interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Metrics счетчики доставки уведомлений
type Metrics interface {
	IncNotificationSent(kind string)
	IncNotificationFailed(kind string)
	IncNotificationDropped(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
