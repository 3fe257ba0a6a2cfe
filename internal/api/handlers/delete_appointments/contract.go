package delete_appointments

import (
	"context"

	deleteAppointments "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_appointments"
)

type DeleteAppointmentsUseCase interface {
	Execute(ctx context.Context, req *deleteAppointments.Request) (*deleteAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
