package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/dbmetrics"
	"github.com/avlebedev/carservice-admin/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"company_id",
	"client_id",
	"vehicle_id",
	"booking_date",
	"start_time",
	"status",
	"client_name",
	"client_phone",
	"vehicle_plate",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе с его услугами
// Вставка в две таблицы не атомарна сама по себе - вызывающая сторона обязана
// передать активную транзакцию через контекст (txmanager)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"company_id",
			"client_id",
			"vehicle_id",
			"booking_date",
			"start_time",
			"status",
			"client_name",
			"client_phone",
			"vehicle_plate",
			"notes",
		).
		Values(
			booking.CompanyID,
			booking.ClientID,
			booking.VehicleID,
			booking.BookingDate,
			booking.StartTime,
			booking.Status,
			booking.ClientName,
			booking.ClientPhone,
			booking.VehiclePlate,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	// Вставляем услуги бронирования
	for _, svc := range booking.Services {
		query, args, err := psqlbuilder.Insert("booking_services").
			Columns("booking_id", "service_id", "name", "duration_minutes", "price").
			Values(booking.ID, svc.ServiceID, svc.Name, svc.DurationMinutes, svc.Price).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build services insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert booking service: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByCompanyWithFilter получает бронирования компании с фильтрацией и пагинацией
// Для запроса на конкретную дату сортирует по времени начала; внутри транзакции
// на конкретную дату добавляет FOR UPDATE - так создание бронирования блокирует
// конкурирующие вставки на тот же день
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	selectBuilder = applyFilter(selectBuilder, filter)

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if filter.Page > 0 || filter.Limit > 0 {
		selectBuilder = selectBuilder.
			Limit(uint64(filter.PageLimit())).
			Offset(uint64(filter.Offset()))
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// CountByCompanyWithFilter возвращает общее число бронирований под фильтром (для пагинации)
func (r *Repository) CountByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	selectBuilder = applyFilter(selectBuilder, filter)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByCompanyWithFilter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveOnDate получает бронирования всех компаний на дату для фонового
// свипа статусов. Завершенные бронирования дня тоже попадают в выборку:
// по ним свип повторяет начисление баллов, если прошлый проход не смог
func (r *Repository) GetActiveOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusConfirmed),
			string(domain.StatusInProgress),
			string(domain.StatusCompleted),
		}}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// applyFilter накладывает общие условия фильтра (без сортировки и пагинации)
func applyFilter(b squirrel.SelectBuilder, filter domain.CompanyBookingsFilter) squirrel.SelectBuilder {
	if filter.ClientID != nil {
		b = b.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		b = b.Where(squirrel.NotEq{"status": inactive})
	}
	return b
}

// loadServices подгружает услуги для набора бронирований одним запросом
func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Services = nil
	}

	query, args, err := psqlbuilder.Select("booking_id", "service_id", "name", "duration_minutes", "price").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC, service_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var svc domain.BookingService
		if err := rows.Scan(&bookingID, &svc.ServiceID, &svc.Name, &svc.DurationMinutes, &svc.Price); err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Services = append(b.Services, svc)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CompanyID,
		&booking.ClientID,
		&booking.VehicleID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.Status,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.VehiclePlate,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
