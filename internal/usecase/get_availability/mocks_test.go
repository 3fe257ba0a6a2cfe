package get_availability

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type mockWindowRepo struct {
	mock.Mock
}

func (m *mockWindowRepo) ListWindows(ctx context.Context, date time.Time, typeCode domain.AppointmentType) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, date, typeCode)
	windows, _ := args.Get(0).([]domain.AvailabilityWindow)
	return windows, args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) ListActive(ctx context.Context, date time.Time, typeCode domain.AppointmentType) ([]*domain.Appointment, error) {
	args := m.Called(ctx, date, typeCode)
	appts, _ := args.Get(0).([]*domain.Appointment)
	return appts, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// passThroughTx выполняет функцию без реальной транзакции
type passThroughTx struct{}

func (passThroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failingTx не может открыть транзакцию
type failingTx struct{ err error }

func (f failingTx) DoReadOnly(context.Context, func(ctx context.Context) error) error {
	return f.err
}
