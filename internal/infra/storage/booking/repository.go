package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRental/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation  = "23P01"
	pgForeignKeyViolation = "23503"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"car_id",
	"start_date",
	"end_date",
	"total_price",
	"status",
	"payment_status",
	"pickup_location",
	"dropoff_location",
	"insurance",
	"child_seat",
	"gps",
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

// Create создает новое бронирование.
// Ограничение EXCLUDE на таблице не даст вставить пересекающееся блокирующее бронирование,
// даже если проверка доступности была выполнена без блокировки.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"user_id",
			"car_id",
			"start_date",
			"end_date",
			"total_price",
			"status",
			"payment_status",
			"pickup_location",
			"dropoff_location",
			"insurance",
			"child_seat",
			"gps",
		).
		Values(
			booking.UserID,
			booking.CarID,
			booking.StartDate,
			booking.EndDate,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.PickupLocation,
			booking.DropoffLocation,
			booking.AdditionalServices.Insurance,
			booking.AdditionalServices.ChildSeat,
			booking.AdditionalServices.GPS,
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
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgExclusionViolation:
				return nil, ErrOverlap
			case pgForeignKeyViolation:
				return nil, ErrCarReference
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindOverlapping возвращает бронирования автомобиля в указанных статусах,
// пересекающиеся с полуинтервалом [start, end).
// Использует индекс (car_id, status). Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) FindOverlapping(
	ctx context.Context,
	carID int64,
	start, end time.Time,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"car_id": carID}).
		Where(squirrel.Eq{"status": statusStrings}).
		Where(squirrel.Lt{"start_date": end}).
		Where(squirrel.Gt{"end_date": start}).
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetAll получает все бронирования
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("start_date DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ExistsForCar проверяет, ссылается ли хотя бы одно бронирование на автомобиль
func (r *Repository) ExistsForCar(ctx context.Context, carID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableBookings).
		Where(squirrel.Eq{"car_id": carID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForCar - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForCar - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// UpdateStatus меняет статус бронирования, только если текущий статус в БД равен from.
// Так переход валидируется по сохраненному состоянию в момент записи.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	return r.compareAndSet(ctx, "UpdateStatus", id, "status", string(from), string(to))
}

// UpdatePaymentStatus меняет статус оплаты, только если текущий статус оплаты равен from
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error) {
	return r.compareAndSet(ctx, "UpdatePaymentStatus", id, "payment_status", string(from), string(to))
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) compareAndSet(ctx context.Context, op string, id int64, column, from, to string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set(column, to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, column: from}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	// Ни одна строка не обновилась: либо бронирования нет, либо статус уже другой
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrStatusMismatch
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CarID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PickupLocation,
		&booking.DropoffLocation,
		&booking.AdditionalServices.Insurance,
		&booking.AdditionalServices.ChildSeat,
		&booking.AdditionalServices.GPS,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
