package change_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case смены статуса записи администратором
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет смену статуса. Меняется только запись в статусе CONFIRMED.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeStatus: id=%s, status=%s", req.ID, req.Status)

	// 1. Валидация входных данных
	id, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ChangeStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	current, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("ChangeStatus: appointment id=%s not found", id)
			return nil, ErrNotFound
		}
		uc.logger.Error("ChangeStatus: failed to get appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	upd := appointmentRepo.StatusUpdate{ID: id, Status: req.Status}

	// 3. Правила отправки
	if req.Status == domain.StatusShipped {
		if err := validateShipment(current, req); err != nil {
			uc.logger.Warn("ChangeStatus: shipment rejected for id=%s: %v", id, err)
			return nil, err
		}
		now := uc.timeProvider.Now()
		upd.ShippedAt = &now
		upd.ShippingCost = req.ShippingCost
		if strings.EqualFold(current.Shipping.Carrier, domain.CarrierPicap) {
			link := strings.TrimSpace(req.TripLink)
			upd.TripLink = &link
		} else {
			tracking := strings.TrimSpace(req.TrackingNumber)
			upd.TrackingNumber = &tracking
		}
	}

	// 4. Проверяем допустимость перехода
	if !current.CanTransitionTo(req.Status) {
		uc.logger.Warn("ChangeStatus: transition %s -> %s rejected for id=%s", current.Status, req.Status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, req.Status)
	}

	// 5. Условное обновление: параллельная смена статуса не перезаписывается
	updated, err := uc.appointmentRepo.UpdateStatus(ctx, upd)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			uc.logger.Warn("ChangeStatus: appointment id=%s changed concurrently", id)
			return nil, fmt.Errorf("%w: appointment is no longer confirmed", ErrInvalidTransition)
		}
		uc.logger.Error("ChangeStatus: failed to update appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("ChangeStatus: appointment id=%s is now %s", id, updated.Status)

	// 6. Уведомляем клиента об отправке
	if updated.Status == domain.StatusShipped && uc.notifier != nil {
		uc.notifier.AppointmentShipped(updated)
	}

	return &Response{Appointment: updated}, nil
}
