package model

import "github.com/shopspring/decimal"

// StoredTransaction is a settled deposit or withdrawal remembered for later disputes.
// Kind is always KindDeposit or KindWithdrawal.
type StoredTransaction struct {
	Tx     TxID
	Client ClientID
	Amount decimal.Decimal
	Kind   Kind
}

func (e Deposit) Stored() StoredTransaction {
	return StoredTransaction{Tx: e.Tx, Client: e.Client, Amount: e.Amount, Kind: KindDeposit}
}

func (e Withdrawal) Stored() StoredTransaction {
	return StoredTransaction{Tx: e.Tx, Client: e.Client, Amount: e.Amount, Kind: KindWithdrawal}
}
