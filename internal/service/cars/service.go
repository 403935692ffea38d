package cars

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRental/internal/service/cars/models"
)

// Service сервис каталога автомобилей
type Service struct {
	carRepo     CarRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	locker      KeyLocker
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	carRepo CarRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	locker KeyLocker,
	logger Logger,
) *Service {
	return &Service{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		locker:      locker,
		logger:      logger,
	}
}

// List возвращает каталог, сначала новые автомобили. Публичный метод.
func (s *Service) List(ctx context.Context) ([]models.CarResponse, error) {
	s.logger.Info("List: fetching cars")

	cars, err := s.carRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d cars", len(cars))
	return models.FromDomainCarList(cars), nil
}

// GetByID возвращает автомобиль. Публичный метод.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CarResponse, error) {
	s.logger.Info("GetByID: fetching car id=%d", id)

	car, err := s.getCar(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainCar(car), nil
}

// Create добавляет автомобиль в каталог. Только для администратора.
func (s *Service) Create(ctx context.Context, identity domain.Identity, req *models.CreateCarRequest) (*models.CarResponse, error) {
	s.logger.Info("Create: creating car %s %s (%d) by user=%d", req.Make, req.Model, req.Year, identity.UserID)

	if err := s.requireAdmin("Create", identity); err != nil {
		return nil, err
	}

	car := req.ToDomain()
	if err := car.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.carRepo.Create(ctx, car)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created car id=%d", created.ID)
	return models.FromDomainCar(created), nil
}

// Update изменяет автомобиль. Только для администратора.
// Если на автомобиль ссылаются бронирования, идентифицирующие поля
// (марка, модель, год, коробка, топливо) менять нельзя.
func (s *Service) Update(
	ctx context.Context,
	identity domain.Identity,
	id int64,
	req *models.UpdateCarRequest,
) (*models.CarResponse, error) {
	s.logger.Info("Update: updating car id=%d by user=%d", id, identity.UserID)

	if err := s.requireAdmin("Update", identity); err != nil {
		return nil, err
	}

	var result *domain.Car
	err := s.withCarLock(ctx, id, func(txCtx context.Context) error {
		current, err := s.getCar(txCtx, "Update", id)
		if err != nil {
			return err
		}

		updated := req.ApplyTo(current)
		if err := updated.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for car id=%d: %v", id, err)
			return err
		}

		if !updated.SameIdentity(current) {
			referenced, err := s.isReferenced(txCtx, "Update", id)
			if err != nil {
				return err
			}
			if referenced {
				s.logger.Warn("Update: car id=%d has bookings, identifying fields are locked", id)
				return ErrIdentityLocked
			}
		}

		saved, err := s.carRepo.Update(txCtx, updated)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}

		result = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated car id=%d", id)
	return models.FromDomainCar(result), nil
}

// ToggleAvailability снимает автомобиль с проката или возвращает его. Только для администратора.
func (s *Service) ToggleAvailability(ctx context.Context, identity domain.Identity, id int64) (*models.CarResponse, error) {
	s.logger.Info("ToggleAvailability: toggling car id=%d by user=%d", id, identity.UserID)

	if err := s.requireAdmin("ToggleAvailability", identity); err != nil {
		return nil, err
	}

	car, err := s.carRepo.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("ToggleAvailability", id, err)
	}

	s.logger.Info("ToggleAvailability: car id=%d available=%t", id, car.Available)
	return models.FromDomainCar(car), nil
}

// Delete удаляет автомобиль без бронирований. Только для администратора.
func (s *Service) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	s.logger.Info("Delete: deleting car id=%d by user=%d", id, identity.UserID)

	if err := s.requireAdmin("Delete", identity); err != nil {
		return err
	}

	err := s.withCarLock(ctx, id, func(txCtx context.Context) error {
		if _, err := s.getCar(txCtx, "Delete", id); err != nil {
			return err
		}

		referenced, err := s.isReferenced(txCtx, "Delete", id)
		if err != nil {
			return err
		}
		if referenced {
			s.logger.Warn("Delete: car id=%d is referenced by bookings", id)
			return ErrCarInUse
		}

		if err := s.carRepo.Delete(txCtx, id); err != nil {
			return s.mapRepoError("Delete", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted car id=%d", id)
	return nil
}

// Вспомогательные методы

// withCarLock выполняет fn в транзакции под блокировкой автомобиля,
// чтобы изменение не пересекалось с созданием бронирования на этот автомобиль
func (s *Service) withCarLock(ctx context.Context, id int64, fn func(ctx context.Context) error) error {
	unlock, err := s.locker.Lock(ctx, domain.CarLockKey(id))
	if err != nil {
		s.logger.Error("withCarLock: failed to lock car id=%d: %v", id, err)
		return fmt.Errorf("%w: lock car: %v", ErrInternal, err)
	}
	defer unlock()

	err = s.txManager.Do(ctx, fn)
	if err != nil && domain.KindOf(err) == domain.KindInternal && !errors.Is(err, ErrInternal) {
		s.logger.Error("withCarLock: transaction failed for car id=%d: %v", id, err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}
	return err
}

func (s *Service) getCar(ctx context.Context, op string, id int64) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return car, nil
}

func (s *Service) isReferenced(ctx context.Context, op string, id int64) (bool, error) {
	referenced, err := s.bookingRepo.ExistsForCar(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to check bookings for car id=%d: %v", op, id, err)
		return false, fmt.Errorf("%w: %s - check bookings: %v", ErrInternal, op, err)
	}
	return referenced, nil
}

// requireAdmin единая проверка прав администратора
func (s *Service) requireAdmin(op string, identity domain.Identity) error {
	if identity.IsAdmin {
		return nil
	}
	s.logger.Warn("%s: user=%d is not an administrator", op, identity.UserID)
	return ErrAdminOnly
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, carRepo.ErrCarNotFound):
		s.logger.Warn("%s: car id=%d not found", op, id)
		return ErrCarNotFound
	case errors.Is(err, carRepo.ErrCarInUse):
		s.logger.Warn("%s: car id=%d is referenced by bookings", op, id)
		return ErrCarInUse
	default:
		s.logger.Error("%s: repository error for car id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
