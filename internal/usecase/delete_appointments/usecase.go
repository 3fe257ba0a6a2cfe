package delete_appointments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxIDs ограничение на размер одного удаления
const maxIDs = 500

// UseCase use case массового удаления записей администратором
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

// Execute удаляет записи одним запросом. Отсутствующие ID не считаются ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteAppointments: count=%d", len(req.IDs))

	// 1. Валидация
	ids, err := parseIDs(req.IDs)
	if err != nil {
		uc.logger.Warn("DeleteAppointments: validation failed: %v", err)
		return nil, err
	}

	// 2. Удаление в транзакции
	var deleted int64
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		n, err := uc.appointmentRepo.DeleteByIDs(ctx, ids)
		deleted = n
		return err
	})
	if err != nil {
		uc.logger.Error("DeleteAppointments: failed to delete %d appointments: %v", len(ids), err)
		return nil, fmt.Errorf("%w: failed to delete appointments: %v", ErrInternal, err)
	}

	uc.logger.Info("DeleteAppointments: deleted=%d of requested=%d", deleted, len(ids))

	return &Response{Deleted: deleted}, nil
}

// parseIDs разбирает ID, отбрасывая повторы
func parseIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: ids must be a non-empty array", ErrInvalidIDs)
	}
	if len(raw) > maxIDs {
		return nil, fmt.Errorf("%w: at most %d ids per request", ErrInvalidIDs, maxIDs)
	}

	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a uuid", ErrInvalidIDs, s)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
