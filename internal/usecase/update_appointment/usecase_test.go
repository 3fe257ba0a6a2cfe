package update_appointment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) UpdateFields(ctx context.Context, id uuid.UUID, upd appointmentRepo.FieldsUpdate) (*domain.Appointment, error) {
	args := m.Called(ctx, id, upd)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

// recordingTx выполняет fn и запоминает число вызовов
type recordingTx struct {
	calls int
}

func (tx *recordingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func newUseCase(repo *mockAppointmentRepo, tx *recordingTx) *UseCase {
	return NewUseCase(repo, tx, logger.Nop())
}

func TestExecute_NormalizesAndUpdates(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	tx := &recordingTx{}

	current := &domain.Appointment{ID: id, TypeCode: domain.TypeShipping, Status: domain.StatusConfirmed}
	updated := *current
	updated.Customer.Email = "ana@mail.com"

	method := domain.DeliveryShipping
	repo.On("GetByID", mock.Anything, id).Return(current, nil)
	repo.On("UpdateFields", mock.Anything, id, appointmentRepo.FieldsUpdate{
		CustomerName:   ptr.Ptr("Ana Pérez"),
		CustomerEmail:  ptr.Ptr("ana@mail.com"),
		CustomerPhone:  ptr.Ptr("3001234567"),
		DeliveryMethod: &method,
		ShippingCity:   ptr.Ptr("Medellín"),
		ShippingCost:   ptr.Ptr(9000.0),
	}).Return(&updated, nil)

	resp, err := newUseCase(repo, tx).Execute(context.Background(), &Request{
		ID:             id.String(),
		CustomerName:   ptr.Ptr(" Ana Pérez "),
		CustomerEmail:  ptr.Ptr(" Ana@Mail.com "),
		CustomerPhone:  ptr.Ptr("300 123 4567"),
		DeliveryMethod: ptr.Ptr("shipping"),
		ShippingCity:   ptr.Ptr("Medellín"),
		ShippingCost:   ptr.Ptr(9000.0),
		Product:        ptr.Ptr("  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@mail.com", resp.Appointment.Customer.Email)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestExecute_EmptyPatchReturnsCurrent(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	current := &domain.Appointment{ID: id, TypeCode: domain.TypeTryout, Status: domain.StatusConfirmed}
	repo.On("GetByID", mock.Anything, id).Return(current, nil)

	resp, err := newUseCase(repo, &recordingTx{}).Execute(context.Background(), &Request{
		ID:    id.String(),
		Notes: ptr.Ptr(""),
	})
	require.NoError(t, err)

	assert.Same(t, current, resp.Appointment)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NotFound(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

	_, err := newUseCase(repo, &recordingTx{}).Execute(context.Background(), &Request{
		ID:           id.String(),
		CustomerName: ptr.Ptr("Ana"),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecute_DeletedBetweenReadAndUpdate(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.Appointment{ID: id}, nil)
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).Return(nil, appointmentRepo.ErrAppointmentNotFound)

	_, err := newUseCase(repo, &recordingTx{}).Execute(context.Background(), &Request{
		ID:           id.String(),
		CustomerName: ptr.Ptr("Ana"),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecute_StorageError(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.Appointment{ID: id}, nil)
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := newUseCase(repo, &recordingTx{}).Execute(context.Background(), &Request{
		ID:      id.String(),
		Product: ptr.Ptr("Vestido azul"),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Validation(t *testing.T) {
	id := uuid.New().String()

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"bad id", Request{ID: "42"}, ErrInvalidInput},
		{"bad email", Request{ID: id, CustomerEmail: ptr.Ptr("ana@mail")}, ErrInvalidEmail},
		{"phone without digits", Request{ID: id, CustomerPhone: ptr.Ptr("n/a")}, ErrInvalidPhone},
		{"id number without digits", Request{ID: id, CustomerIDNumber: ptr.Ptr("abc")}, ErrInvalidID},
		{"unknown delivery method", Request{ID: id, DeliveryMethod: ptr.Ptr("DRONE")}, ErrInvalidInput},
		{"negative cost", Request{ID: id, ShippingCost: ptr.Ptr(-1.0)}, ErrInvalidInput},
		{"product too long", Request{ID: id, Product: ptr.Ptr(strings.Repeat("a", domain.MaxProductLength+1))}, ErrInvalidInput},
		{"notes too long", Request{ID: id, Notes: ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1))}, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockAppointmentRepo{}
			tx := &recordingTx{}

			_, err := newUseCase(repo, tx).Execute(context.Background(), &tc.req)

			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, tx.calls)
			repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}
