package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx      *fakeTx
	begins  int
	options []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	b.options = append(b.options, opts)
	return b.tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, beginner.options[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestDo_NestedCallReusesTransaction(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.begins)
}

func TestDo_CommitFailure(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("conn reset")}}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
}

func TestDo_AfterCommitHooks(t *testing.T) {
	t.Run("run after commit in order", func(t *testing.T) {
		tx := &fakeTx{}
		m := NewTransactionManager(&fakeBeginner{tx: tx})
		var calls []string

		err := m.Do(context.Background(), func(ctx context.Context) error {
			dbmetrics.AfterCommit(ctx, func() {
				assert.True(t, tx.committed)
				calls = append(calls, "first")
			})
			return m.Do(ctx, func(ctx context.Context) error {
				dbmetrics.AfterCommit(ctx, func() { calls = append(calls, "nested") })
				assert.Empty(t, calls)
				return nil
			})
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "nested"}, calls)
	})

	t.Run("skipped on rollback", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{}})
		called := false

		err := m.Do(context.Background(), func(ctx context.Context) error {
			dbmetrics.AfterCommit(ctx, func() { called = true })
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("skipped on commit failure", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{commitErr: errors.New("conn reset")}})
		called := false

		err := m.Do(context.Background(), func(ctx context.Context) error {
			dbmetrics.AfterCommit(ctx, func() { called = true })
			return nil
		})

		assert.ErrorIs(t, err, ErrCommitTx)
		assert.False(t, called)
	})

	t.Run("immediate outside transaction", func(t *testing.T) {
		called := false
		dbmetrics.AfterCommit(context.Background(), func() { called = true })
		assert.True(t, called)
	})
}
