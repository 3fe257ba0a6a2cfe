package create_appointment

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	windowRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/window"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type mockWindowRepo struct {
	mock.Mock
}

func (m *mockWindowRepo) FindContaining(ctx context.Context, date time.Time, typeCode domain.AppointmentType, t types.TimeString) (*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, date, typeCode, t)
	w, _ := args.Get(0).(*domain.AvailabilityWindow)
	return w, args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) ExistsActiveSlot(ctx context.Context, typeCode domain.AppointmentType, date time.Time, slot domain.Slot) (bool, error) {
	args := m.Called(ctx, typeCode, date, slot)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepo) HasActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, date time.Time) (bool, error) {
	args := m.Called(ctx, id, typeCode, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepo) CountActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, from, to time.Time) (int, error) {
	args := m.Called(ctx, id, typeCode, from, to)
	return args.Int(0), args.Error(1)
}

func (m *mockAppointmentRepo) Insert(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) AppointmentCreated(a *domain.Appointment) {
	m.Called(a)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncBookingCreated(typeCode string) {
	m.Called(typeCode)
}

func (m *mockMetrics) IncBookingRejected(typeCode, kind string) {
	m.Called(typeCode, kind)
}

// passThroughTx выполняет функцию без реальной транзакции
type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryWindows окна в памяти с той же семантикой поиска, что и SQL
type memoryWindows struct {
	windows []domain.AvailabilityWindow
}

func (m *memoryWindows) FindContaining(_ context.Context, date time.Time, typeCode domain.AppointmentType, t types.TimeString) (*domain.AvailabilityWindow, error) {
	var found *domain.AvailabilityWindow
	for i := range m.windows {
		w := m.windows[i]
		if !domain.SameDay(w.Date, date) || w.TypeCode != typeCode || !w.Contains(t) {
			continue
		}
		if found == nil || w.StartTime.IsBefore(found.StartTime) {
			found = &w
		}
	}
	if found == nil {
		return nil, windowRepo.ErrWindowNotFound
	}
	return found, nil
}

// memoryStore хранилище записей в памяти с семантикой идентичности из SQL
type memoryStore struct {
	mu    sync.Mutex
	items []*domain.Appointment
}

func (s *memoryStore) matches(a *domain.Appointment, id domain.Identity) bool {
	if a.Customer.Email == id.Email || a.Customer.Phone == id.Phone {
		return true
	}
	return id.IDNumber != "" && a.Customer.IDNumber == id.IDNumber
}

func (s *memoryStore) ExistsActiveSlot(_ context.Context, typeCode domain.AppointmentType, date time.Time, slot domain.Slot) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		got, ok := a.Slot()
		if ok && a.IsActive() && a.TypeCode == typeCode && domain.SameDay(a.Date, date) && got == slot {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) HasActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, date time.Time) (bool, error) {
	n, err := s.CountActiveForIdentity(ctx, id, typeCode, date, date)
	return n > 0, err
}

func (s *memoryStore) CountActiveForIdentity(_ context.Context, id domain.Identity, typeCode domain.AppointmentType, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.items {
		if !a.IsActive() || a.TypeCode != typeCode || a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		if s.matches(a, id) {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) Insert(_ context.Context, a *domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.items = append(s.items, &cp)
	return nil
}

type silentNotifier struct{}

func (silentNotifier) AppointmentCreated(*domain.Appointment) {}
