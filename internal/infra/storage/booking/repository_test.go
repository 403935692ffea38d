package booking

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func bookingRow(id int64, status domain.BookingStatus, payment domain.PaymentStatus) []driver.Value {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, int64(7), int64(3), start, start.AddDate(0, 0, 4), 200.0,
		string(status), string(payment), "Airport", "Downtown",
		false, false, true, start, start,
	}
}

func TestRepository_FindOverlapping(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE car_id = \$1 AND status IN \(\$2,\$3\) AND start_date < \$4 AND end_date > \$5 ORDER BY start_date ASC`).
		WithArgs(int64(3), "pending", "confirmed", end, start).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(1, domain.StatusPending, domain.PaymentUnpaid)...))

	bookings, err := repo.FindOverlapping(context.Background(), 3, start, end, domain.BlockingStatuses)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.StatusPending, bookings[0].Status)
	assert.True(t, bookings[0].AdditionalServices.GPS)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateMapsExclusionViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: pgExclusionViolation})

	_, err := repo.Create(context.Background(), &domain.Booking{
		UserID:        7,
		CarID:         3,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
	})

	assert.ErrorIs(t, err, ErrOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateReturnsGeneratedFields(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings (.+) RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{UserID: 7, CarID: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
}

func TestRepository_UpdateStatusStaleRead(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE (.+) RETURNING`).
		WithArgs("cancelled", int64(1), "pending").
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(1, domain.StatusConfirmed, domain.PaymentUnpaid)...))

	_, err := repo.UpdateStatus(context.Background(), 1, domain.StatusPending, domain.StatusCancelled)

	assert.ErrorIs(t, err, ErrStatusMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusMissingBooking(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET status`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.UpdateStatus(context.Background(), 99, domain.StatusPending, domain.StatusCancelled)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UpdatePaymentStatus(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET payment_status = \$1`).
		WithArgs("paid", int64(1), "unpaid").
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(1, domain.StatusConfirmed, domain.PaymentPaid)...))

	b, err := repo.UpdatePaymentStatus(context.Background(), 1, domain.PaymentUnpaid, domain.PaymentPaid)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
}

func TestRepository_ExistsForCar(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE car_id = \$1 LIMIT 1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE car_id = \$1 LIMIT 1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsForCar(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForCar(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_DeleteMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrBookingNotFound)
}
