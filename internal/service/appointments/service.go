package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения записей для администратора
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, rawID string) (*models.AppointmentResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		s.logger.Warn("GetByID: invalid id=%q", rawID)
		return nil, fmt.Errorf("%w: id must be a uuid", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByDate получает записи за день.
// По умолчанию отмененные записи не возвращаются.
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.AppointmentListResponse, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		s.logger.Warn("ListByDate: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	filter := domain.DayFilter{Date: date, IncludeInactive: req.IncludeInactive}
	if req.Type != nil && *req.Type != "" {
		t := domain.AppointmentType(strings.ToUpper(*req.Type))
		if !t.IsValid() {
			s.logger.Warn("ListByDate: invalid type=%q", *req.Type)
			return nil, fmt.Errorf("%w: unknown type", ErrInvalidInput)
		}
		filter.TypeCode = &t
	}

	list, err := s.appointmentRepo.ListByDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d appointments for date=%s", len(list), req.Date)
	return models.FromDomainAppointmentList(date, list), nil
}
