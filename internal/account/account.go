package account

import (
	"github.com/hance08/txengine/internal/model"
	"github.com/shopspring/decimal"
)

// Account holds one client's balances. Every operation either applies fully or
// returns an *Error and leaves the account untouched.
//
// total == available + held holds before and after every call. Once locked, the
// account rejects every operation, including those on disputes opened earlier.
type Account struct {
	client    model.ClientID
	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool
	disputes  map[model.TxID]decimal.Decimal
}

// Snapshot is a read-only copy of an account's reportable state.
type Snapshot struct {
	Client    model.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

func New(client model.ClientID) *Account {
	return &Account{
		client:    client,
		available: decimal.Zero,
		held:      decimal.Zero,
		total:     decimal.Zero,
		disputes:  make(map[model.TxID]decimal.Decimal),
	}
}

func (a *Account) Client() model.ClientID     { return a.client }
func (a *Account) Available() decimal.Decimal { return a.available }
func (a *Account) Held() decimal.Decimal      { return a.held }
func (a *Account) Total() decimal.Decimal     { return a.total }
func (a *Account) Locked() bool               { return a.locked }

// Disputed reports whether tx is an open dispute, and the amount it holds.
func (a *Account) Disputed(tx model.TxID) (decimal.Decimal, bool) {
	amount, ok := a.disputes[tx]
	return amount, ok
}

func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}

// Deposit credits a positive amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if a.locked {
		return a.fail(ErrAccountLocked, 0)
	}
	a.available = a.available.Add(amount)
	a.total = a.total.Add(amount)
	return nil
}

// Withdraw debits a positive amount. The limit is total, not available: funds held by
// an open dispute were already taken out of available when the dispute opened.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.locked {
		return a.fail(ErrAccountLocked, 0)
	}
	if amount.GreaterThan(a.total) {
		return a.fail(ErrInsufficientFunds, 0)
	}
	a.available = a.available.Sub(amount)
	a.total = a.total.Sub(amount)
	return nil
}

// Dispute moves a settled deposit's amount from available to held.
func (a *Account) Dispute(stored model.StoredTransaction) error {
	if a.locked {
		return a.fail(ErrAccountLocked, 0)
	}
	if _, ok := a.disputes[stored.Tx]; ok {
		return a.fail(ErrTransactionAlreadyDisputed, stored.Tx)
	}
	// Only deposits can be disputed.
	if stored.Kind != model.KindDeposit {
		return a.fail(ErrDisputeOnWithdrawal, stored.Tx)
	}

	a.available = a.available.Sub(stored.Amount)
	a.held = a.held.Add(stored.Amount)
	a.disputes[stored.Tx] = stored.Amount
	return nil
}

// Resolve releases an open dispute back to available.
func (a *Account) Resolve(tx model.TxID) error {
	if a.locked {
		return a.fail(ErrAccountLocked, 0)
	}
	amount, ok := a.disputes[tx]
	if !ok {
		return a.fail(ErrDisputeNotFound, tx)
	}

	delete(a.disputes, tx)
	a.available = a.available.Add(amount)
	a.held = a.held.Sub(amount)
	return nil
}

// Chargeback removes the disputed funds and locks the account for good.
func (a *Account) Chargeback(tx model.TxID) error {
	if a.locked {
		return a.fail(ErrAccountLocked, 0)
	}
	amount, ok := a.disputes[tx]
	if !ok {
		return a.fail(ErrDisputeNotFound, tx)
	}

	delete(a.disputes, tx)
	a.held = a.held.Sub(amount)
	a.total = a.total.Sub(amount)
	a.locked = true
	return nil
}

func (a *Account) fail(err error, tx model.TxID) *Error {
	return &Error{Err: err, Client: a.client, Tx: tx}
}
