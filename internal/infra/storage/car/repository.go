package car

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRental/pkg/psqlbuilder"
)

const (
	tableCars             = "cars"
	pgForeignKeyViolation = "23503"
)

var carColumns = []string{
	"id",
	"make",
	"model",
	"year",
	"daily_price",
	"seats",
	"transmission",
	"fuel_type",
	"available",
	"image_url",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с автомобилями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет автомобиль в каталог
func (r *Repository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableCars).
		Columns(
			"make",
			"model",
			"year",
			"daily_price",
			"seats",
			"transmission",
			"fuel_type",
			"available",
			"image_url",
			"description",
		).
		Values(
			car.Make,
			car.Model,
			car.Year,
			car.DailyPrice,
			car.Seats,
			car.Transmission,
			car.FuelType,
			car.Available,
			car.ImageURL,
			car.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&car.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	car.CreatedAt = createdAt.Time
	car.UpdatedAt = updatedAt.Time

	return car, nil
}

// GetByID получает автомобиль по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): так создание бронирований
// и изменение автомобиля сериализуются по автомобилю.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(carColumns...).
		From(tableCars).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	car, err := scanCar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrScanRow, err)
	}

	return car, nil
}

// List возвращает весь каталог, сначала новые
func (r *Repository) List(ctx context.Context) ([]*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(carColumns...).
		From(tableCars).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cars := make([]*domain.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		cars = append(cars, car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return cars, nil
}

// Update перезаписывает атрибуты автомобиля
func (r *Repository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableCars).
		Set("make", car.Make).
		Set("model", car.Model).
		Set("year", car.Year).
		Set("daily_price", car.DailyPrice).
		Set("seats", car.Seats).
		Set("transmission", car.Transmission).
		Set("fuel_type", car.FuelType).
		Set("available", car.Available).
		Set("image_url", car.ImageURL).
		Set("description", car.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": car.ID}).
		Suffix("RETURNING " + strings.Join(carColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// ToggleAvailability атомарно инвертирует флаг available
func (r *Repository) ToggleAvailability(ctx context.Context, id int64) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableCars).
		Set("available", squirrel.Expr("NOT available")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(carColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ToggleAvailability - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleAvailability - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет автомобиль. Внешний ключ bookings.car_id не даст удалить
// автомобиль, на который ссылаются бронирования
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableCars).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return ErrCarInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCarNotFound
	}

	return nil
}

func scanCar(row rowScanner) (*domain.Car, error) {
	var car domain.Car
	var imageURL, description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.DailyPrice,
		&car.Seats,
		&car.Transmission,
		&car.FuelType,
		&car.Available,
		&imageURL,
		&description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		car.ImageURL = &imageURL.String
	}
	if description.Valid {
		car.Description = &description.String
	}
	car.CreatedAt = createdAt.Time
	car.UpdatedAt = updatedAt.Time

	return &car, nil
}
