package account

import (
	"errors"
	"fmt"

	"github.com/hance08/txengine/internal/model"
)

var (
	ErrAccountLocked              = errors.New("account is locked")
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrTransactionAlreadyDisputed = errors.New("transaction already disputed")
	ErrDisputeOnWithdrawal        = errors.New("dispute on withdrawal")
	ErrDisputeNotFound            = errors.New("dispute not found")
)

// Error is a rejected account operation. Err is one of the package sentinels and
// Tx is zero for the kinds that carry no transaction (locked, insufficient funds).
type Error struct {
	Err    error
	Client model.ClientID
	Tx     model.TxID
}

func (e *Error) Error() string {
	switch e.Err {
	case ErrAccountLocked:
		return fmt.Sprintf("Account (%d) is locked", e.Client)
	case ErrInsufficientFunds:
		return fmt.Sprintf("Account (%d) has insufficient funds", e.Client)
	case ErrTransactionAlreadyDisputed:
		return fmt.Sprintf("Account (%d) already has a dispute for transaction %d", e.Client, e.Tx)
	case ErrDisputeOnWithdrawal:
		return fmt.Sprintf("Account (%d) has a dispute for withdrawal transaction %d, which is not allowed", e.Client, e.Tx)
	case ErrDisputeNotFound:
		return fmt.Sprintf("Account (%d) does not have a dispute for transaction %d", e.Client, e.Tx)
	}
	return fmt.Sprintf("Account (%d): %v", e.Client, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
