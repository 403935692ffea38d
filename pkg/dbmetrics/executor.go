package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx, *DB и *Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type (
	txKey    struct{}
	hooksKey struct{}
)

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

// WithTx кладет транзакцию в контекст вместе с пустым списком хуков после коммита
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	ctx = context.WithValue(ctx, txKey{}, tx)
	return context.WithValue(ctx, hooksKey{}, &commitHooks{})
}

// AfterCommit откладывает fn до фиксации транзакции из контекста.
// Вне транзакции fn выполняется сразу. При откате fn не вызывается.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(hooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}

	hooks.mu.Lock()
	hooks.fns = append(hooks.fns, fn)
	hooks.mu.Unlock()
}

// RunAfterCommit выполняет отложенные AfterCommit функции в порядке регистрации.
// Вызывается менеджером транзакций после успешного коммита.
func RunAfterCommit(ctx context.Context) {
	hooks, ok := ctx.Value(hooksKey{}).(*commitHooks)
	if !ok {
		return
	}

	hooks.mu.Lock()
	fns := hooks.fns
	hooks.fns = nil
	hooks.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// TxFromContext достает транзакцию из контекста
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok && tx != nil
}

// IsInTransaction сообщает, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
