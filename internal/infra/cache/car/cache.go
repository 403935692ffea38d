package car

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
)

const keyPrefix = "car:"

// Repository репозиторий автомобилей, который оборачивает кэш
type Repository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	ToggleAvailability(ctx context.Context, id int64) (*domain.Car, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CachedRepository read-through кэш автомобилей в Redis.
// Ошибки Redis не ломают запрос: чтение уходит в репозиторий, а запись в кэш пропускается.
// Внутри транзакции кэш не используется, чтобы чтение шло через блокировку строки.
type CachedRepository struct {
	repo   Repository
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCachedRepository создает кэширующую обертку над репозиторием
func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration, logger Logger) *CachedRepository {
	return &CachedRepository{
		repo:   repo,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedRepository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	return c.repo.Create(ctx, car)
}

// GetByID читает автомобиль из кэша, при промахе из репозитория
func (c *CachedRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.repo.GetByID(ctx, id)
	}

	data, err := c.client.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		var car domain.Car
		if err := json.Unmarshal(data, &car); err == nil {
			return &car, nil
		}
		c.logger.Warn("CarCache: corrupted entry for car id=%d: %v", id, err)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("CarCache: get car id=%d: %v", id, err)
	}

	car, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, car)
	return car, nil
}

// List не кэшируется: каталог меняется чаще, чем отдельные автомобили
func (c *CachedRepository) List(ctx context.Context) ([]*domain.Car, error) {
	return c.repo.List(ctx)
}

func (c *CachedRepository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	updated, err := c.repo.Update(ctx, car)
	c.invalidateOnCommit(ctx, car.ID)
	return updated, err
}

func (c *CachedRepository) ToggleAvailability(ctx context.Context, id int64) (*domain.Car, error) {
	updated, err := c.repo.ToggleAvailability(ctx, id)
	c.invalidateOnCommit(ctx, id)
	return updated, err
}

func (c *CachedRepository) Delete(ctx context.Context, id int64) error {
	err := c.repo.Delete(ctx, id)
	c.invalidateOnCommit(ctx, id)
	return err
}

func (c *CachedRepository) store(ctx context.Context, car *domain.Car) {
	data, err := json.Marshal(car)
	if err != nil {
		c.logger.Warn("CarCache: marshal car id=%d: %v", car.ID, err)
		return
	}
	if err := c.client.Set(ctx, key(car.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("CarCache: set car id=%d: %v", car.ID, err)
	}
}

// invalidateOnCommit сбрасывает ключ сразу и, внутри транзакции, повторно после коммита:
// до коммита чтение вне транзакции видит старую строку и может вернуть её в кэш
func (c *CachedRepository) invalidateOnCommit(ctx context.Context, id int64) {
	c.invalidate(ctx, id)
	if dbmetrics.IsInTransaction(ctx) {
		dbmetrics.AfterCommit(ctx, func() {
			c.invalidate(context.WithoutCancel(ctx), id)
		})
	}
}

func (c *CachedRepository) invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.logger.Warn("CarCache: invalidate car id=%d: %v", id, err)
	}
}

func key(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}
