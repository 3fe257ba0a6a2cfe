package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	windowRepo      WindowRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	windowRepo WindowRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		windowRepo:      windowRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{Date: date, Slots: []Slot{}}

	// 2-3. Окна и занятые слоты читаются из одного снимка
	var (
		windows      []domain.AvailabilityWindow
		appointments []*domain.Appointment
	)
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		windows, err = uc.windowRepo.ListWindows(txCtx, date, req.Type)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list windows date=%s type=%s: %v",
				date.Format(domain.DateFormat), req.Type, err)
			return fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
		}

		if len(windows) == 0 {
			return nil
		}

		appointments, err = uc.appointmentRepo.ListActive(txCtx, date, req.Type)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list appointments date=%s type=%s: %v",
				date.Format(domain.DateFormat), req.Type, err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			uc.logger.Error("GetAvailability: read transaction failed: %v", err)
			return nil, fmt.Errorf("%w: read transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	if len(windows) == 0 {
		return resp, nil
	}

	taken := make([]domain.Slot, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		if s, ok := a.Slot(); ok {
			taken = append(taken, s)
		}
	}

	// 4. Генерируем слоты, исключаем занятые и дубли
	free := domain.FreeSlots(windows, taken)

	// 5. Для сегодняшней даты убираем прошедшие слоты
	now := uc.timeProvider.Now()
	if domain.SameDay(date, now) {
		free = domain.DropPast(free, types.NewTimeString(now))
	}

	for _, s := range free {
		resp.Slots = append(resp.Slots, Slot{Start: s.Start, End: s.End})
	}

	return resp, nil
}
