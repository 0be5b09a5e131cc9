package store

import "github.com/hance08/txengine/internal/model"

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// TransactionMemory remembers settled deposits and withdrawals by transaction id
// so that later disputes can find their amount and owner.
type TransactionMemory interface {
	// Record inserts stored, overwriting any earlier record with the same tx id.
	Record(stored model.StoredTransaction) error
	// Lookup reports whether tx was recorded.
	Lookup(tx model.TxID) (model.StoredTransaction, bool, error)

	Close() error
}
