package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case правки полей записи администратором.
// Статус здесь не меняется: для него есть отдельная ручка с проверкой переходов.
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute применяет правку. Пустая правка возвращает запись без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%s", req.ID)

	// 1. Валидация и нормализация
	id, upd, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Чтение и правка в одной транзакции
	var result *domain.Appointment
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if upd.IsEmpty() {
			result = current
			return nil
		}

		result, err = uc.appointmentRepo.UpdateFields(ctx, id, upd)
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%s not found", id)
			return nil, ErrNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateAppointment: appointment id=%s updated", id)

	return &Response{Appointment: result}, nil
}
