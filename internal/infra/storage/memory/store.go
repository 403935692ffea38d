package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
)

// Store хранилище каталога и бронирований в памяти процесса.
// Используется в режиме database.driver = "memory" и в тестах.
// Ошибки совпадают с ошибками PostgreSQL репозиториев, поэтому сервисы
// не различают реализации.
type Store struct {
	mu sync.RWMutex

	cars     map[int64]domain.Car
	bookings map[int64]domain.Booking

	nextCarID     int64
	nextBookingID int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		cars:     make(map[int64]domain.Car),
		bookings: make(map[int64]domain.Booking),
		now:      time.Now,
	}
}

// Cars возвращает репозиторий автомобилей поверх хранилища
func (s *Store) Cars() *CarRepository {
	return &CarRepository{store: s}
}

// Bookings возвращает репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// TxManager выполняет функцию без транзакции: каждая операция хранилища атомарна сама по себе
type TxManager struct{}

// Do выполняет fn
func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// CarRepository репозиторий автомобилей в памяти
type CarRepository struct {
	store *Store
}

func (r *CarRepository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCarID++
	now := s.now()

	stored := *car
	stored.ID = s.nextCarID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.cars[stored.ID] = stored

	car.ID = stored.ID
	car.CreatedAt = now
	car.UpdatedAt = now
	return car, nil
}

func (r *CarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	car, ok := s.cars[id]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}
	return &car, nil
}

func (r *CarRepository) List(ctx context.Context) ([]*domain.Car, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	cars := make([]*domain.Car, 0, len(s.cars))
	for _, c := range s.cars {
		c := c
		cars = append(cars, &c)
	}

	sort.Slice(cars, func(i, j int) bool {
		if !cars[i].CreatedAt.Equal(cars[j].CreatedAt) {
			return cars[i].CreatedAt.After(cars[j].CreatedAt)
		}
		return cars[i].ID > cars[j].ID
	})
	return cars, nil
}

func (r *CarRepository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.cars[car.ID]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}

	updated := *car
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.cars[car.ID] = updated

	return &updated, nil
}

func (r *CarRepository) ToggleAvailability(ctx context.Context, id int64) (*domain.Car, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	car, ok := s.cars[id]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}

	car.Available = !car.Available
	car.UpdatedAt = s.now()
	s.cars[id] = car

	return &car, nil
}

// Delete повторяет поведение внешнего ключа bookings.car_id
func (r *CarRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cars[id]; !ok {
		return carRepo.ErrCarNotFound
	}
	for _, b := range s.bookings {
		if b.CarID == id {
			return carRepo.ErrCarInUse
		}
	}

	delete(s.cars, id)
	return nil
}

// BookingRepository репозиторий бронирований в памяти
type BookingRepository struct {
	store *Store
}

// Create проверяет пересечение и вставляет бронирование под одной блокировкой,
// как это делает ограничение EXCLUDE в PostgreSQL
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cars[booking.CarID]; !ok {
		return nil, bookingRepo.ErrCarReference
	}

	if booking.IsBlocking() {
		for _, existing := range s.bookings {
			if existing.CarID == booking.CarID && existing.IsBlocking() &&
				existing.Overlaps(booking.StartDate, booking.EndDate) {
				return nil, bookingRepo.ErrOverlap
			}
		}
	}

	s.nextBookingID++
	now := s.now()

	booking.ID = s.nextBookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = *booking

	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) FindOverlapping(
	ctx context.Context,
	carID int64,
	start, end time.Time,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[domain.BookingStatus]struct{}, len(statuses))
	for _, st := range statuses {
		wanted[st] = struct{}{}
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.CarID != carID {
			continue
		}
		if _, ok := wanted[b.Status]; !ok {
			continue
		}
		if b.Overlaps(start, end) {
			b := b
			result = append(result, &b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(func(*domain.Booking) bool { return true }), nil
}

func (r *BookingRepository) ExistsForCar(ctx context.Context, carID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.CarID == carID {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	return r.compareAndSet(id, func(b *domain.Booking) bool {
		if b.Status != from {
			return false
		}
		b.Status = to
		return true
	})
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error) {
	return r.compareAndSet(id, func(b *domain.Booking) bool {
		if b.PaymentStatus != from {
			return false
		}
		b.PaymentStatus = to
		return true
	})
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (r *BookingRepository) compareAndSet(id int64, apply func(b *domain.Booking) bool) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if !apply(&b) {
		return nil, bookingRepo.ErrStatusMismatch
	}

	b.UpdatedAt = s.now()
	s.bookings[id] = b
	return &b, nil
}

// list возвращает бронирования по фильтру, сначала с более поздней датой начала
func (r *BookingRepository) list(match func(b *domain.Booking) bool) []*domain.Booking {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		b := b
		if match(&b) {
			result = append(result, &b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].ID > result[j].ID
	})
	return result
}
