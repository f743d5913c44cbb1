// Package transaction contains transaction-related use cases.
package transaction

import "github.com/finsight/backend/internal/domain/entity"

// TransactionOutput represents a transaction returned by use cases, with its
// category when one is set.
type TransactionOutput struct {
	Transaction *entity.Transaction
	Category    *entity.Category
}

func toTransactionOutput(txn *entity.Transaction, category *entity.Category) *TransactionOutput {
	return &TransactionOutput{Transaction: txn, Category: category}
}
