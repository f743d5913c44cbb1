package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finsight/backend/internal/application/adapter"
)

// transactionManager implements adapter.TransactionManager over gorm.
type transactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new transaction manager instance.
func NewTransactionManager(db *gorm.DB) adapter.TransactionManager {
	return &transactionManager{db: db}
}

// Do runs fn inside one storage transaction. A nested call joins the
// enclosing transaction instead of opening a new one, so a cascading
// operation and the per-record operations it drives commit together.
func (m *transactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
