package account

import (
	"iter"
	"maps"
	"slices"

	"github.com/hance08/txengine/internal/model"
)

// Registry owns every account of a run, keyed by client id.
type Registry struct {
	accounts map[model.ClientID]*Account
}

func NewRegistry() *Registry {
	return &Registry{accounts: make(map[model.ClientID]*Account)}
}

// GetOrCreate is the only way accounts come into existence.
func (r *Registry) GetOrCreate(client model.ClientID) *Account {
	acc, ok := r.accounts[client]
	if !ok {
		acc = New(client)
		r.accounts[client] = acc
	}
	return acc
}

// Get returns the account for client without creating it.
func (r *Registry) Get(client model.ClientID) (*Account, bool) {
	acc, ok := r.accounts[client]
	return acc, ok
}

func (r *Registry) Len() int {
	return len(r.accounts)
}

// Snapshot yields a copy of every account once, in ascending client order.
func (r *Registry) Snapshot() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for _, client := range slices.Sorted(maps.Keys(r.accounts)) {
			if !yield(r.accounts[client].Snapshot()) {
				return
			}
		}
	}
}
