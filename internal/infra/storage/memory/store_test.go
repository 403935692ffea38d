package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func seedCar(t *testing.T, s *Store) *domain.Car {
	t.Helper()
	car, err := s.Cars().Create(context.Background(), &domain.Car{
		Make: "Toyota", Model: "Corolla", Year: 2022, DailyPrice: 50, Seats: 5,
		Transmission: domain.TransmissionAutomatic, FuelType: domain.FuelHybrid, Available: true,
	})
	require.NoError(t, err)
	return car
}

func pending(carID int64, from, to int) *domain.Booking {
	return &domain.Booking{
		UserID:        7,
		CarID:         carID,
		StartDate:     day(from),
		EndDate:       day(to),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func TestBookingRepository_CreateRejectsOverlap(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	first, err := repo.Create(ctx, pending(car.ID, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = repo.Create(ctx, pending(car.ID, 3, 7))
	assert.ErrorIs(t, err, bookingRepo.ErrOverlap)

	_, err = repo.Create(ctx, pending(car.ID, 5, 7))
	assert.NoError(t, err, "adjacent range is free")
}

func TestBookingRepository_CancelledDoesNotBlock(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	b, err := repo.Create(ctx, pending(car.ID, 1, 5))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, b.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	overlapping, err := repo.FindOverlapping(ctx, car.ID, day(1), day(5), domain.BlockingStatuses)
	require.NoError(t, err)
	assert.Empty(t, overlapping)

	_, err = repo.Create(ctx, pending(car.ID, 2, 4))
	assert.NoError(t, err)
}

func TestBookingRepository_CreateUnknownCar(t *testing.T) {
	s := NewStore()

	_, err := s.Bookings().Create(context.Background(), pending(42, 1, 2))
	assert.ErrorIs(t, err, bookingRepo.ErrCarReference)
}

func TestBookingRepository_CompareAndSet(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	b, err := repo.Create(ctx, pending(car.ID, 1, 5))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, b.ID, domain.StatusConfirmed, domain.StatusCompleted)
	assert.ErrorIs(t, err, bookingRepo.ErrStatusMismatch)

	_, err = repo.UpdatePaymentStatus(ctx, 99, domain.PaymentUnpaid, domain.PaymentPaid)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	updated, err := repo.UpdatePaymentStatus(ctx, b.ID, domain.PaymentUnpaid, domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
}

func TestBookingRepository_ConcurrentCreateOnlyOneWins(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	repo := s.Bookings()

	var (
		wg      sync.WaitGroup
		success int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(context.Background(), pending(car.ID, 1, 5)); err == nil {
				atomic.AddInt32(&success, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), success)
}

func TestBookingRepository_ListOrdering(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	_, err := repo.Create(ctx, pending(car.ID, 1, 2))
	require.NoError(t, err)
	_, err = repo.Create(ctx, pending(car.ID, 10, 12))
	require.NoError(t, err)
	other := pending(car.ID, 20, 22)
	other.UserID = 8
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	mine, err := repo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, day(10), mine[0].StartDate)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCarRepository_DeleteReferencedCar(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	ctx := context.Background()

	_, err := s.Bookings().Create(ctx, pending(car.ID, 1, 2))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Cars().Delete(ctx, car.ID), carRepo.ErrCarInUse)
	assert.ErrorIs(t, s.Cars().Delete(ctx, 404), carRepo.ErrCarNotFound)
}

func TestCarRepository_ToggleAndUpdate(t *testing.T) {
	s := NewStore()
	car := seedCar(t, s)
	ctx := context.Background()

	toggled, err := s.Cars().ToggleAvailability(ctx, car.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Available)

	toggled.DailyPrice = 70
	updated, err := s.Cars().Update(ctx, toggled)
	require.NoError(t, err)
	assert.Equal(t, 70.0, updated.DailyPrice)
	assert.Equal(t, car.CreatedAt, updated.CreatedAt)

	_, err = s.Cars().Update(ctx, &domain.Car{ID: 404})
	assert.ErrorIs(t, err, carRepo.ErrCarNotFound)
}
