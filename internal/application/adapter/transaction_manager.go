// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TransactionManager runs a function inside one storage transaction so that
// multi-document mutations (a transfer's two legs, a transaction create with
// its balance update, a goal contribution with its debit) commit atomically.
//
// Implementations must support nesting: when the context already carries a
// transaction, the function joins it instead of opening a new one. This lets
// a cascading operation wrap many single-record operations in one commit.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
