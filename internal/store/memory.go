package store

import "github.com/hance08/txengine/internal/model"

// Memory is a TransactionMemory backed by a Go map.
type Memory struct {
	transactions map[model.TxID]model.StoredTransaction
}

func NewMemory() *Memory {
	return &Memory{transactions: make(map[model.TxID]model.StoredTransaction)}
}

func (m *Memory) Record(stored model.StoredTransaction) error {
	m.transactions[stored.Tx] = stored
	return nil
}

func (m *Memory) Lookup(tx model.TxID) (model.StoredTransaction, bool, error) {
	stored, ok := m.transactions[tx]
	return stored, ok, nil
}

func (m *Memory) Len() int {
	return len(m.transactions)
}

func (m *Memory) Close() error {
	return nil
}
