// Package ledger routes input events to client accounts.
package ledger

import (
	"fmt"
	"iter"

	"github.com/hance08/txengine/internal/account"
	"github.com/hance08/txengine/internal/model"
	"github.com/hance08/txengine/internal/store"
)

// Ledger applies events strictly in the order they are given. It owns the account
// registry and the transaction memory for the lifetime of a run and is not safe for
// concurrent use.
type Ledger struct {
	accounts     *account.Registry
	transactions store.TransactionMemory
}

func New(transactions store.TransactionMemory) *Ledger {
	return &Ledger{
		accounts:     account.NewRegistry(),
		transactions: transactions,
	}
}

// Process applies one event. A returned error rejects only that event and leaves
// every account as it was; callers report it and move on. Errors wrapping
// ErrStorage are the exception.
func (l *Ledger) Process(event model.Event) error {
	switch e := event.(type) {
	case model.Deposit:
		return l.processDeposit(e)
	case model.Withdrawal:
		return l.processWithdrawal(e)
	case model.Dispute:
		return l.processDispute(e)
	case model.Resolve:
		return l.accounts.GetOrCreate(e.Client).Resolve(e.Tx)
	case model.Chargeback:
		return l.accounts.GetOrCreate(e.Client).Chargeback(e.Tx)
	default:
		return fmt.Errorf("%w %T", ErrUnsupportedEvent, event)
	}
}

func (l *Ledger) processDeposit(deposit model.Deposit) error {
	acc := l.accounts.GetOrCreate(deposit.Client)
	if err := acc.Deposit(deposit.Amount); err != nil {
		return err
	}
	return l.record(deposit.Stored())
}

func (l *Ledger) processWithdrawal(withdrawal model.Withdrawal) error {
	acc := l.accounts.GetOrCreate(withdrawal.Client)
	if err := acc.Withdraw(withdrawal.Amount); err != nil {
		return err
	}
	return l.record(withdrawal.Stored())
}

func (l *Ledger) processDispute(dispute model.Dispute) error {
	// The account exists from here on even if the dispute is rejected.
	acc := l.accounts.GetOrCreate(dispute.Client)

	disputed, ok, err := l.transactions.Lookup(dispute.Tx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !ok {
		return &Error{Err: ErrDisputeTransactionNotFound, Client: dispute.Client, Tx: dispute.Tx}
	}
	if disputed.Client != dispute.Client {
		return &Error{
			Err:    ErrDisputeUnOwnedTransaction,
			Client: dispute.Client,
			Tx:     dispute.Tx,
			Owner:  disputed.Client,
		}
	}

	return acc.Dispute(disputed)
}

func (l *Ledger) record(stored model.StoredTransaction) error {
	if err := l.transactions.Record(stored); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Accounts yields a snapshot of every account touched so far.
func (l *Ledger) Accounts() iter.Seq[account.Snapshot] {
	return l.accounts.Snapshot()
}

// Account returns the live state of a single client's account.
func (l *Ledger) Account(client model.ClientID) (*account.Account, bool) {
	return l.accounts.Get(client)
}

func (l *Ledger) Close() error {
	return l.transactions.Close()
}
