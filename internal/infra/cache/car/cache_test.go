package car

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRental/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRental/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingRepo struct {
	Repository
	gets int
}

func (r *countingRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	r.gets++
	return r.Repository.GetByID(ctx, id)
}

func setup(t *testing.T) (*CachedRepository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{Repository: memory.NewStore().Cars()}
	return NewCachedRepository(repo, client, time.Minute, nopLogger{}), repo, mr
}

func newCar() *domain.Car {
	return &domain.Car{
		Make: "Toyota", Model: "Corolla", Year: 2022, DailyPrice: 50, Seats: 5,
		Transmission: domain.TransmissionAutomatic, FuelType: domain.FuelHybrid, Available: true,
	}
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	cache, repo, mr := setup(t)
	ctx := context.Background()

	created, err := cache.Create(ctx, newCar())
	require.NoError(t, err)

	first, err := cache.GetByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := cache.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, first.Make, second.Make)
	assert.True(t, mr.Exists(key(created.ID)))
}

func TestCachedRepository_InvalidatesOnToggle(t *testing.T) {
	cache, repo, mr := setup(t)
	ctx := context.Background()

	created, err := cache.Create(ctx, newCar())
	require.NoError(t, err)
	_, err = cache.GetByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = cache.ToggleAvailability(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(key(created.ID)))

	car, err := cache.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, car.Available)
	assert.Equal(t, 2, repo.gets)
}

func TestCachedRepository_FallsBackWhenRedisDown(t *testing.T) {
	cache, repo, mr := setup(t)
	ctx := context.Background()

	created, err := cache.Create(ctx, newCar())
	require.NoError(t, err)

	mr.Close()

	car, err := cache.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, car.ID)
	assert.Equal(t, 1, repo.gets)
}

func TestCachedRepository_NotFoundIsNotCached(t *testing.T) {
	cache, _, mr := setup(t)

	_, err := cache.GetByID(context.Background(), 404)
	assert.Error(t, err)
	assert.False(t, mr.Exists(key(404)))
}

// readCommittedRepo удаляет строку только при коммите: до этого чтения вне транзакции видят старые данные
type readCommittedRepo struct {
	Repository
	pending []int64
}

func (r *readCommittedRepo) Delete(ctx context.Context, id int64) error {
	if dbmetrics.IsInTransaction(ctx) {
		r.pending = append(r.pending, id)
		return nil
	}
	return r.Repository.Delete(ctx, id)
}

func (r *readCommittedRepo) commit() error {
	for _, id := range r.pending {
		if err := r.Repository.Delete(context.Background(), id); err != nil {
			return err
		}
	}
	r.pending = nil
	return nil
}

type commitTx struct {
	onCommit func() error
}

func (t *commitTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *commitTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *commitTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *commitTx) Commit() error   { return t.onCommit() }
func (t *commitTx) Rollback() error { return nil }

type commitTxBeginner struct {
	tx *commitTx
}

func (b *commitTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.tx, nil
}

func TestCachedRepository_InvalidatesAfterCommit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &readCommittedRepo{Repository: memory.NewStore().Cars()}
	cache := NewCachedRepository(repo, client, time.Minute, nopLogger{})
	txManager := txmanager.NewTransactionManager(&commitTxBeginner{tx: &commitTx{onCommit: repo.commit}})
	ctx := context.Background()

	created, err := cache.Create(ctx, newCar())
	require.NoError(t, err)

	err = txManager.Do(ctx, func(txCtx context.Context) error {
		require.NoError(t, cache.Delete(txCtx, created.ID))

		// параллельное чтение до коммита видит строку и кладет её в кэш
		car, err := cache.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, car.ID)
		assert.True(t, mr.Exists(key(created.ID)))
		return nil
	})
	require.NoError(t, err)

	assert.False(t, mr.Exists(key(created.ID)))

	_, err = cache.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, carRepo.ErrCarNotFound)
}

func TestCachedRepository_RollbackSkipsDeferredInvalidation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &readCommittedRepo{Repository: memory.NewStore().Cars()}
	cache := NewCachedRepository(repo, client, time.Minute, nopLogger{})
	txManager := txmanager.NewTransactionManager(&commitTxBeginner{tx: &commitTx{onCommit: repo.commit}})
	ctx := context.Background()

	created, err := cache.Create(ctx, newCar())
	require.NoError(t, err)

	_ = txManager.Do(ctx, func(txCtx context.Context) error {
		require.NoError(t, cache.Delete(txCtx, created.ID))
		_, err := cache.GetByID(ctx, created.ID)
		require.NoError(t, err)
		return assert.AnError
	})

	// строка не удалена, кэш по-прежнему отдает актуальные данные
	assert.True(t, mr.Exists(key(created.ID)))
	car, err := cache.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, car.ID)
}
