package ledger

import (
	"errors"
	"fmt"

	"github.com/hance08/txengine/internal/model"
)

var (
	ErrDisputeTransactionNotFound = errors.New("dispute transaction not found")
	ErrDisputeUnOwnedTransaction  = errors.New("dispute on un-owned transaction")
	ErrUnsupportedEvent           = errors.New("unsupported event")

	// ErrStorage marks transaction memory failures. Unlike rejections, these leave
	// the ledger unable to guarantee per-event atomicity and should end the run.
	ErrStorage = errors.New("transaction memory failure")
)

// Error is a dispute rejected before it reached the account. Owner is only set
// for ErrDisputeUnOwnedTransaction.
type Error struct {
	Err    error
	Client model.ClientID
	Tx     model.TxID
	Owner  model.ClientID
}

func (e *Error) Error() string {
	switch e.Err {
	case ErrDisputeTransactionNotFound:
		return fmt.Sprintf("Account (%d) Dispute transaction %d not found", e.Client, e.Tx)
	case ErrDisputeUnOwnedTransaction:
		return fmt.Sprintf("Account (%d) is attempting to dispute transaction %d owned by client %d", e.Client, e.Tx, e.Owner)
	}
	return fmt.Sprintf("Account (%d) transaction %d: %v", e.Client, e.Tx, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
