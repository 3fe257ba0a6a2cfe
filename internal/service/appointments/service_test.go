package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) ListByDate(ctx context.Context, filter domain.DayFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Appointment)
	return list, args.Error(1)
}

func TestGetByID(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.Appointment{
		ID:        id,
		TypeCode:  domain.TypeTryout,
		Date:      time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: ptr.Ptr(types.MustTimeString("09:00")),
		EndTime:   ptr.Ptr(types.MustTimeString("09:20")),
		Status:    domain.StatusConfirmed,
	}, nil)

	resp, err := NewService(repo, logger.Nop()).GetByID(context.Background(), id.String())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-11", resp.Date)
	assert.Equal(t, "09:00", *resp.StartTime)
	assert.Equal(t, 20, *resp.Minutes)
	assert.Nil(t, resp.Shipping)
}

func TestGetByID_Errors(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)
	svc := NewService(repo, logger.Nop())

	_, err := svc.GetByID(context.Background(), id.String())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByDate(t *testing.T) {
	repo := &mockAppointmentRepo{}
	shipping := domain.TypeShipping
	repo.On("ListByDate", mock.Anything, domain.DayFilter{
		Date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TypeCode: &shipping,
	}).Return([]*domain.Appointment{
		{ID: uuid.New(), TypeCode: domain.TypeShipping, Shipping: domain.ShippingInfo{City: "Cali"}},
	}, nil)

	resp, err := NewService(repo, logger.Nop()).ListByDate(context.Background(), &models.ListByDateRequest{
		Date: "2025-06-11",
		Type: ptr.Ptr("shipping"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, resp.Appointments[0].Shipping)
	assert.Equal(t, "Cali", resp.Appointments[0].Shipping.City)
}

func TestListByDate_Errors(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("ListByDate", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	svc := NewService(repo, logger.Nop())

	_, err := svc.ListByDate(context.Background(), &models.ListByDateRequest{Date: "11/06/2025"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByDate(context.Background(), &models.ListByDateRequest{Date: "2025-06-11", Type: ptr.Ptr("X")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByDate(context.Background(), &models.ListByDateRequest{Date: "2025-06-11"})
	assert.ErrorIs(t, err, ErrInternal)
}
