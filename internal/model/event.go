package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal, and is the target of dispute events.
type TxID uint32

type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind accepts the textual kind in any letter case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type '%s'", s)
}

// Kinds lists every event kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}
}

// Event is one record of the input stream. The set of implementations is closed:
// Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Event interface {
	Kind() Kind
	ClientID() ClientID
	TxID() TxID
	event()
}

type Deposit struct {
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

type Withdrawal struct {
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

type Dispute struct {
	Client ClientID
	Tx     TxID
}

type Resolve struct {
	Client ClientID
	Tx     TxID
}

type Chargeback struct {
	Client ClientID
	Tx     TxID
}

func (Deposit) Kind() Kind    { return KindDeposit }
func (Withdrawal) Kind() Kind { return KindWithdrawal }
func (Dispute) Kind() Kind    { return KindDispute }
func (Resolve) Kind() Kind    { return KindResolve }
func (Chargeback) Kind() Kind { return KindChargeback }

func (e Deposit) ClientID() ClientID    { return e.Client }
func (e Withdrawal) ClientID() ClientID { return e.Client }
func (e Dispute) ClientID() ClientID    { return e.Client }
func (e Resolve) ClientID() ClientID    { return e.Client }
func (e Chargeback) ClientID() ClientID { return e.Client }

func (e Deposit) TxID() TxID    { return e.Tx }
func (e Withdrawal) TxID() TxID { return e.Tx }
func (e Dispute) TxID() TxID    { return e.Tx }
func (e Resolve) TxID() TxID    { return e.Tx }
func (e Chargeback) TxID() TxID { return e.Tx }

func (Deposit) event()    {}
func (Withdrawal) event() {}
func (Dispute) event()    {}
func (Resolve) event()    {}
func (Chargeback) event() {}
