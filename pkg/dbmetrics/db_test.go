package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM cars"))
	assert.Equal(t, "insert", operationOf("  INSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationOf(""))
}

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	db := &DB{}
	tx := &Tx{}

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	assert.True(t, IsInTransaction(ctx))
}
