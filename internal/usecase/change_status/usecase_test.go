package change_status

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
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, upd appointmentRepo.StatusUpdate) (*domain.Appointment, error) {
	args := m.Called(ctx, upd)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) AppointmentShipped(a *domain.Appointment) {
	m.Called(a)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var shippedAt = time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)

func newUseCase(repo *mockAppointmentRepo, notifier *mockNotifier) *UseCase {
	uc := NewUseCase(repo, notifier, logger.Nop())
	uc.timeProvider = fixedTime{now: shippedAt}
	return uc
}

func shippingAppointment(id uuid.UUID, carrier string) *domain.Appointment {
	return &domain.Appointment{
		ID:       id,
		TypeCode: domain.TypeShipping,
		Status:   domain.StatusConfirmed,
		Shipping: domain.ShippingInfo{Carrier: carrier, City: "Medellín"},
	}
}

func TestExecute_ShipWithTracking(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	notifier := &mockNotifier{}
	cost := 12000.0

	current := shippingAppointment(id, domain.CarrierInterrapidisimo)
	updated := *current
	updated.Status = domain.StatusShipped

	repo.On("GetByID", mock.Anything, id).Return(current, nil)
	repo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(u appointmentRepo.StatusUpdate) bool {
		return u.Status == domain.StatusShipped &&
			u.TrackingNumber != nil && *u.TrackingNumber == "TRK-1" &&
			u.TripLink == nil &&
			u.ShippedAt.Equal(shippedAt) &&
			*u.ShippingCost == cost
	})).Return(&updated, nil)
	notifier.On("AppointmentShipped", &updated).Once()

	resp, err := newUseCase(repo, notifier).Execute(context.Background(), &Request{
		ID:             id.String(),
		Status:         domain.StatusShipped,
		TrackingNumber: " TRK-1 ",
		ShippingCost:   &cost,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusShipped, resp.Appointment.Status)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExecute_PicapNeedsTripLink(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(shippingAppointment(id, "picap"), nil)

	_, err := newUseCase(repo, &mockNotifier{}).Execute(context.Background(), &Request{
		ID:             id.String(),
		Status:         domain.StatusShipped,
		TrackingNumber: "ignored",
	})

	assert.ErrorIs(t, err, ErrMissingTripLink)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestExecute_PicapWithTripLink(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	notifier := &mockNotifier{}
	current := shippingAppointment(id, domain.CarrierPicap)
	updated := *current
	updated.Status = domain.StatusShipped

	repo.On("GetByID", mock.Anything, id).Return(current, nil)
	repo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(u appointmentRepo.StatusUpdate) bool {
		return u.TrackingNumber == nil && u.TripLink != nil && *u.TripLink == "https://picap.app/t/1"
	})).Return(&updated, nil)
	notifier.On("AppointmentShipped", mock.Anything).Once()

	_, err := newUseCase(repo, notifier).Execute(context.Background(), &Request{
		ID:       id.String(),
		Status:   domain.StatusShipped,
		TripLink: "https://picap.app/t/1",
	})

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestExecute_ShipRequiresTracking(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(shippingAppointment(id, domain.CarrierInterrapidisimo), nil)

	_, err := newUseCase(repo, &mockNotifier{}).Execute(context.Background(), &Request{
		ID:     id.String(),
		Status: domain.StatusShipped,
	})

	assert.ErrorIs(t, err, ErrMissingTracking)
}

func TestExecute_ShipTryoutRejected(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.Appointment{
		ID: id, TypeCode: domain.TypeTryout, Status: domain.StatusConfirmed,
	}, nil)

	_, err := newUseCase(repo, &mockNotifier{}).Execute(context.Background(), &Request{
		ID:             id.String(),
		Status:         domain.StatusShipped,
		TrackingNumber: "TRK",
	})

	assert.ErrorIs(t, err, ErrNotShippingAppointment)
}

func TestExecute_CancelConfirmed(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	notifier := &mockNotifier{}
	current := &domain.Appointment{ID: id, TypeCode: domain.TypePickup, Status: domain.StatusConfirmed}
	updated := *current
	updated.Status = domain.StatusCancelled

	repo.On("GetByID", mock.Anything, id).Return(current, nil)
	repo.On("UpdateStatus", mock.Anything, appointmentRepo.StatusUpdate{ID: id, Status: domain.StatusCancelled}).
		Return(&updated, nil)

	resp, err := newUseCase(repo, notifier).Execute(context.Background(), &Request{
		ID:     id.String(),
		Status: domain.StatusCancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Appointment.Status)
	notifier.AssertNotCalled(t, "AppointmentShipped", mock.Anything)
}

func TestExecute_FinalStatusIsImmutable(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.Appointment{
		ID: id, TypeCode: domain.TypeTryout, Status: domain.StatusDone,
	}, nil)

	_, err := newUseCase(repo, &mockNotifier{}).Execute(context.Background(), &Request{
		ID:     id.String(),
		Status: domain.StatusCancelled,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ConcurrentChange(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.Appointment{
		ID: id, TypeCode: domain.TypeTryout, Status: domain.StatusConfirmed,
	}, nil)
	repo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil, appointmentRepo.ErrStatusConflict)

	_, err := newUseCase(repo, &mockNotifier{}).Execute(context.Background(), &Request{
		ID:     id.String(),
		Status: domain.StatusNoShow,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_NotFoundAndInvalidInput(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)
	uc := newUseCase(repo, &mockNotifier{})

	_, err := uc.Execute(context.Background(), &Request{ID: id.String(), Status: domain.StatusDone})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{ID: "42", Status: domain.StatusDone})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ID: id.String(), Status: "LOST"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageError(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(nil, errors.New("timeout"))

	_, err := newUseCase(repo, &mockNotifier{}).Execute(context.Background(), &Request{ID: id.String(), Status: domain.StatusDone})

	assert.ErrorIs(t, err, ErrInternal)
}
