package store

import (
	"fmt"
	"io/fs"
)

// Options selects and sizes a TransactionMemory backend.
type Options struct {
	Backend              string
	Path                 string
	ExpectedTransactions uint
}

// Open builds the TransactionMemory named by opts.Backend.
func Open(opts Options, migrationsFS fs.FS) (TransactionMemory, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(opts.Path, migrationsFS, opts.ExpectedTransactions)
	default:
		return nil, fmt.Errorf("%w '%s' (must be %s or %s)", ErrUnknownBackend, opts.Backend, BackendMemory, BackendSQLite)
	}
}
