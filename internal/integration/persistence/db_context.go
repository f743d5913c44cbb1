// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey carries an open storage transaction through a context.
type txKey struct{}

// withTx returns a context carrying the given transaction handle.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFrom returns the transaction carried by the context, or the fallback
// handle when the caller is not running inside one. Every repository reads
// its handle through here so multi-repository operations wrapped by the
// transaction manager share one commit.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
