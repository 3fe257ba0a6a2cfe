package window

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const table = "appt_windows"

var columns = []string{"id", "date", "type_code", "start_time", "end_time", "slot_minutes"}

// Repository репозиторий окон доступности (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindows возвращает окна на дату и тип, отсортированные по времени начала
func (r *Repository) ListWindows(ctx context.Context, date time.Time, typeCode domain.AppointmentType) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(date, typeCode)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWindows - scan window: %w", ErrScanRow, err)
		}
		windows = append(windows, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWindows - rows iteration: %w", ErrScanRow, err)
	}

	return windows, nil
}

// FindContaining возвращает окно, для которого start_time <= t < end_time.
// При нескольких подходящих окнах берется самое раннее.
func (r *Repository) FindContaining(ctx context.Context, date time.Time, typeCode domain.AppointmentType, t types.TimeString) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFindContainingQuery(date, typeCode, t)
	if err != nil {
		return nil, fmt.Errorf("%w: FindContaining - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindContaining - scan window: %w", ErrScanRow, err)
	}

	return w, nil
}

func buildListQuery(date time.Time, typeCode domain.AppointmentType) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat), "type_code": string(typeCode)}).
		OrderBy("start_time ASC").
		ToSql()
}

// buildFindContainingQuery окно содержит t, если start_time <= t < end_time
func buildFindContainingQuery(date time.Time, typeCode domain.AppointmentType, t types.TimeString) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat), "type_code": string(typeCode)}).
		Where(squirrel.LtOrEq{"start_time": t.String()}).
		Where(squirrel.Gt{"end_time": t.String()}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row scanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var typeCode string
	if err := row.Scan(&w.ID, &w.Date, &typeCode, &w.StartTime, &w.EndTime, &w.SlotMinutes); err != nil {
		return nil, err
	}
	w.TypeCode = domain.AppointmentType(typeCode)
	return &w, nil
}
