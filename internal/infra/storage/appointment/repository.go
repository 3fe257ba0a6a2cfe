package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	table               = "appointments"
	pgUniqueViolation   = "23505"
	timestampArgFormat  = "2006-01-02 15:04:05"
	activeSlotIndexName = "appointments_active_slot_uq"
)

var columns = []string{
	"id",
	"type_code",
	"date",
	"start_time",
	"end_time",
	"status",
	"product",
	"delivery_method",
	"notes",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_id_number",
	"shipping_address",
	"shipping_neighborhood",
	"shipping_city",
	"shipping_carrier",
	"shipping_cost",
	"tracking_number",
	"trip_link",
	"shipped_at",
	"reminded_1h_at",
	"reminded_30m_at",
	"created_at",
	"updated_at",
}

// timedTypes типы, занимающие слот в окне
var timedTypes = []string{string(domain.TypeTryout), string(domain.TypePickup)}

// inactiveStatuses статусы, которые не занимают слот и не учитываются в лимитах
var inactiveStatuses = statusValues(domain.InactiveStatuses)

func statusValues(statuses []domain.AppointmentStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, string(st))
	}
	return out
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет новую запись.
// Гонка двух вставок одного слота отсекается уникальным индексом и возвращается как ErrSlotTaken.
func (r *Repository) Insert(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"type_code",
			"date",
			"start_time",
			"end_time",
			"status",
			"product",
			"delivery_method",
			"notes",
			"customer_name",
			"customer_email",
			"customer_phone",
			"customer_id_number",
			"shipping_address",
			"shipping_neighborhood",
			"shipping_city",
			"shipping_carrier",
		).
		Values(
			a.ID,
			string(a.TypeCode),
			dateArg(a.Date),
			a.StartTime,
			a.EndTime,
			string(a.Status),
			a.Product,
			string(a.DeliveryMethod),
			a.Notes,
			a.Customer.Name,
			a.Customer.Email,
			a.Customer.Phone,
			a.Customer.IDNumber,
			a.Shipping.Address,
			a.Shipping.Neighborhood,
			a.Shipping.City,
			a.Shipping.Carrier,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListActive возвращает неотмененные записи на дату и тип
func (r *Repository) ListActive(ctx context.Context, date time.Time, typeCode domain.AppointmentType) ([]*domain.Appointment, error) {
	return r.list(ctx, "ListActive", domain.DayFilter{Date: date, TypeCode: &typeCode})
}

// ListByDate возвращает записи за день по фильтру
func (r *Repository) ListByDate(ctx context.Context, filter domain.DayFilter) ([]*domain.Appointment, error) {
	return r.list(ctx, "ListByDate", filter)
}

func (r *Repository) list(ctx context.Context, op string, filter domain.DayFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result, err := scanAppointments(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointments: %w", ErrScanRow, op, err)
	}

	return result, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// ExistsActiveSlot проверяет, занят ли слот (точное совпадение начала и конца)
func (r *Repository) ExistsActiveSlot(ctx context.Context, typeCode domain.AppointmentType, date time.Time, slot domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{
			"type_code":  string(typeCode),
			"date":       dateArg(date),
			"start_time": slot.Start.String(),
			"end_time":   slot.End.String(),
		}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveSlot - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveSlot - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// HasActiveForIdentity проверяет, есть ли у клиента неотмененная запись этого типа на дату
func (r *Repository) HasActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, date time.Time) (bool, error) {
	n, err := r.countForIdentity(ctx, "HasActiveForIdentity", id, typeCode, date, date)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountActiveForIdentity считает неотмененные записи клиента этого типа в диапазоне дат [from, to]
func (r *Repository) CountActiveForIdentity(ctx context.Context, id domain.Identity, typeCode domain.AppointmentType, from, to time.Time) (int, error) {
	return r.countForIdentity(ctx, "CountActiveForIdentity", id, typeCode, from, to)
}

func (r *Repository) countForIdentity(ctx context.Context, op string, id domain.Identity, typeCode domain.AppointmentType, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildIdentityCountQuery(id, typeCode, from, to)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %w", ErrScanRow, op, err)
	}

	return n, nil
}

// ClaimDue атомарно помечает и возвращает записи, попавшие в окно напоминания бакета.
// Повторный вызов не вернет уже помеченные записи.
func (r *Repository) ClaimDue(ctx context.Context, bucket domain.ReminderBucket, now time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildClaimQuery(bucket, now)
	if err != nil {
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimDue - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	claimed, err := scanAppointments(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimDue - scan appointments: %w", ErrScanRow, err)
	}

	sortByStart(claimed, now.Location())

	return claimed, nil
}

// sortByStart упорядочивает записи по (date, start_time): RETURNING порядок не гарантирует
func sortByStart(items []*domain.Appointment, loc *time.Location) {
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].StartsAt(loc)
		b, _ := items[j].StartsAt(loc)
		return a.Before(b)
	})
}

// UpdateStatus меняет статус записи, если она еще CONFIRMED
func (r *Repository) UpdateStatus(ctx context.Context, upd StatusUpdate) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", string(upd.Status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": upd.ID.String(), "status": string(domain.StatusConfirmed)})

	if upd.TrackingNumber != nil {
		builder = builder.Set("tracking_number", *upd.TrackingNumber)
	}
	if upd.TripLink != nil {
		builder = builder.Set("trip_link", *upd.TripLink)
	}
	if upd.ShippingCost != nil {
		builder = builder.Set("shipping_cost", *upd.ShippingCost)
	}
	if upd.ShippedAt != nil {
		builder = builder.Set("shipped_at", *upd.ShippedAt)
	}

	query, args, err := builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// UpdateFields применяет правку полей администратором и возвращает обновленную запись
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, upd FieldsUpdate) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFieldsUpdateQuery(id, upd)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateFields - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateFields - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// DeleteByIDs удаляет записи по списку ID и возвращает число удаленных строк
func (r *Repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildDeleteQuery(ids)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

func buildFieldsUpdateQuery(id uuid.UUID, upd FieldsUpdate) (string, []interface{}, error) {
	builder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id.String()})

	for _, a := range upd.assignments() {
		builder = builder.Set(a.column, a.value)
	}

	return builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
}

func buildDeleteQuery(ids []uuid.UUID) (string, []interface{}, error) {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	return psqlbuilder.Delete(table).Where(squirrel.Eq{"id": values}).ToSql()
}

func buildListQuery(filter domain.DayFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": dateArg(filter.Date)})

	if filter.TypeCode != nil {
		builder = builder.Where(squirrel.Eq{"type_code": string(*filter.TypeCode)})
	}
	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": inactiveStatuses})
	}

	return builder.OrderBy("start_time ASC NULLS LAST", "created_at ASC").ToSql()
}

func buildIdentityCountQuery(id domain.Identity, typeCode domain.AppointmentType, from, to time.Time) (string, []interface{}, error) {
	match := squirrel.Or{
		squirrel.Expr("LOWER(customer_email) = ?", id.Email),
		squirrel.Eq{"customer_phone": id.Phone},
	}
	if id.IDNumber != "" {
		match = append(match, squirrel.Eq{"customer_id_number": id.IDNumber})
	}

	return psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"type_code": string(typeCode)}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		Where(squirrel.GtOrEq{"date": dateArg(from)}).
		Where(squirrel.LtOrEq{"date": dateArg(to)}).
		Where(match).
		ToSql()
}

// buildClaimQuery строит UPDATE ... RETURNING для бакета.
// now должен быть в часовом поясе сервиса: сравнение идет с date + start_time без зоны.
func buildClaimQuery(bucket domain.ReminderBucket, now time.Time) (string, []interface{}, error) {
	if !domain.IsKnownMarker(bucket.Marker) {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownMarker, bucket.Marker)
	}

	now = now.Truncate(time.Minute)
	from, to := bucket.Window(now)

	query, args, err := psqlbuilder.Update(table).
		Set(bucket.Marker, squirrel.Expr("now()")).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.Eq{"type_code": timedTypes}).
		Where("start_time IS NOT NULL").
		Where(bucket.Marker+" IS NULL").
		Where(squirrel.Eq{"date": dateArg(now)}).
		Where("(date + start_time) BETWEEN ?::timestamp AND ?::timestamp",
			from.Format(timestampArgFormat), to.Format(timestampArgFormat)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: ClaimDue - build update query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func isSlotConflict(err error) bool {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return pgErr.Constraint == "" || pgErr.Constraint == activeSlotIndexName
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanAppointment(row scanner) (*domain.Appointment, error) {
	var (
		a                                domain.Appointment
		typeCode, status, deliveryMethod string
		startTime, endTime               *types.TimeString
	)

	err := row.Scan(
		&a.ID,
		&typeCode,
		&a.Date,
		&startTime,
		&endTime,
		&status,
		&a.Product,
		&deliveryMethod,
		&a.Notes,
		&a.Customer.Name,
		&a.Customer.Email,
		&a.Customer.Phone,
		&a.Customer.IDNumber,
		&a.Shipping.Address,
		&a.Shipping.Neighborhood,
		&a.Shipping.City,
		&a.Shipping.Carrier,
		&a.Shipping.Cost,
		&a.Shipping.TrackingNumber,
		&a.Shipping.TripLink,
		&a.Shipping.ShippedAt,
		&a.Reminded1hAt,
		&a.Reminded30mAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.TypeCode = domain.AppointmentType(typeCode)
	a.Status = domain.AppointmentStatus(status)
	a.DeliveryMethod = domain.DeliveryMethod(deliveryMethod)
	a.StartTime = startTime
	a.EndTime = endTime

	return &a, nil
}
