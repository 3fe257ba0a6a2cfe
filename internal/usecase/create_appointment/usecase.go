package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	windowRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/window"
)

// UseCase use case для создания записи
type UseCase struct {
	windowRepo      WindowRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	logger          Logger
	opts            Options
	newID           func() uuid.UUID
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	windowRepo WindowRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.ShippingWeekLimit <= 0 {
		opts.ShippingWeekLimit = domain.DefaultShippingWeekLimit
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		windowRepo:      windowRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
		opts:            opts,
		newID:           uuid.New,
	}
}

// Execute выполняет use case создания записи.
// Проверки слота, лимиты и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.IncBookingRejected(string(req.TypeCode), Kind(err))
		return nil, err
	}
	uc.metrics.IncBookingCreated(string(req.TypeCode))
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: type=%s, date=%s", req.TypeCode, req.Date.Format(domain.DateFormat))

	// 1. Базовая валидация и нормализация клиента
	customer, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Проверки по типу, не требующие БД
	if req.TypeCode.IsTimed() {
		if req.StartTime == nil || req.StartTime.IsZero() {
			return nil, ErrMissingSlot
		}
		if err := req.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingSlot, err)
		}
	} else if err := validateShipping(req); err != nil {
		uc.logger.Warn("CreateAppointment: shipping validation failed: %v", err)
		return nil, err
	}

	appointment := &domain.Appointment{
		ID:             uc.newID(),
		TypeCode:       req.TypeCode,
		Date:           date,
		Status:         domain.StatusConfirmed,
		Product:        req.Product,
		DeliveryMethod: deliveryMethod(req),
		Customer:       customer,
	}
	if req.Notes != nil {
		appointment.Notes = optionalText(*req.Notes)
	}
	if req.TypeCode == domain.TypeShipping {
		appointment.Shipping = domain.ShippingInfo{
			Address:      req.ShippingAddress,
			Neighborhood: req.ShippingNeighborhood,
			City:         req.ShippingCity,
			Carrier:      req.ShippingCarrier,
		}
	}

	// 3. Проверки слота, лимиты и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Слот должен лежать в окне и быть свободным
		if req.TypeCode.IsTimed() {
			slot, err := uc.checkSlot(txCtx, req, date)
			if err != nil {
				return err
			}
			appointment.StartTime = &slot.Start
			appointment.EndTime = &slot.End
		}

		// 3.2. Анти-абьюз лимиты
		if err := uc.checkLimits(txCtx, customer.Identity(), req.TypeCode, date); err != nil {
			return err
		}

		// 3.3. Сохраняем запись
		if err := uc.appointmentRepo.Insert(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: concurrent insert took the slot")
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to insert appointment: %v", err)
			return fmt.Errorf("%w: failed to insert appointment: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if !isDomainError(err) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s type=%s", appointment.ID, appointment.TypeCode)

	// 4. Письма клиенту и администраторам (не блокирует ответ)
	if uc.notifier != nil {
		uc.notifier.AppointmentCreated(appointment)
	}

	return &Response{
		ID:        appointment.ID.String(),
		TypeCode:  appointment.TypeCode,
		Date:      appointment.Date,
		StartTime: appointment.StartTime,
		EndTime:   appointment.EndTime,
		Status:    appointment.Status,
	}, nil
}

// checkSlot находит окно, вычисляет конец слота и проверяет занятость
func (uc *UseCase) checkSlot(ctx context.Context, req *Request, date time.Time) (domain.Slot, error) {
	w, err := uc.windowRepo.FindContaining(ctx, date, req.TypeCode, *req.StartTime)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			uc.logger.Warn("CreateAppointment: no window contains %s on %s", *req.StartTime, date.Format(domain.DateFormat))
			return domain.Slot{}, ErrOutsideWindow
		}
		uc.logger.Error("CreateAppointment: failed to find window: %v", err)
		return domain.Slot{}, fmt.Errorf("%w: failed to find window: %w", ErrInternal, err)
	}

	slot, err := resolveSlot(req, w)
	if err != nil {
		uc.logger.Warn("CreateAppointment: slot rejected: %v", err)
		return domain.Slot{}, err
	}

	taken, err := uc.appointmentRepo.ExistsActiveSlot(ctx, req.TypeCode, date, slot)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check slot: %v", err)
		return domain.Slot{}, fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
	}
	if taken {
		uc.logger.Warn("CreateAppointment: slot %s-%s already taken", slot.Start, slot.End)
		return domain.Slot{}, ErrSlotTaken
	}

	return slot, nil
}

// checkLimits проверяет лимит на день (все типы) и на неделю (SHIPPING)
func (uc *UseCase) checkLimits(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, date time.Time) error {
	hasDay, err := uc.appointmentRepo.HasActiveForIdentity(ctx, id, typeCode, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check day limit: %v", err)
		return fmt.Errorf("%w: failed to check day limit: %w", ErrInternal, err)
	}
	if hasDay {
		uc.logger.Warn("CreateAppointment: day limit reached for %s", id.Email)
		return &LimitError{Scope: ScopeDay}
	}

	if typeCode != domain.TypeShipping {
		return nil
	}

	from, to := domain.WeekBounds(date, uc.opts.WeekStart)
	count, err := uc.appointmentRepo.CountActiveForIdentity(ctx, id, typeCode, from, to)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check week limit: %v", err)
		return fmt.Errorf("%w: failed to check week limit: %w", ErrInternal, err)
	}
	if count >= uc.opts.ShippingWeekLimit {
		uc.logger.Warn("CreateAppointment: week limit %d reached for %s", uc.opts.ShippingWeekLimit, id.Email)
		return &LimitError{Scope: ScopeWeek, Limit: uc.opts.ShippingWeekLimit}
	}

	return nil
}

func isDomainError(err error) bool {
	k := Kind(err)
	return k != "SERVER_ERROR" && k != ""
}

type noopMetrics struct{}

func (noopMetrics) IncBookingCreated(string)          {}
func (noopMetrics) IncBookingRejected(string, string) {}
