package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hance08/txengine/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readResult struct {
	events []model.Event
	errs   []error
}

func readAll(t *testing.T, data string) readResult {
	t.Helper()
	var res readResult
	for event, err := range NewReader(strings.NewReader(data)).Events() {
		if err != nil {
			res.errs = append(res.errs, err)
			continue
		}
		res.events = append(res.events, event)
	}
	return res
}

func TestReaderParsesEveryKind(t *testing.T) {
	data := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"withdrawal, 2, 2, 2.0\n" +
		"dispute, 3, 3,\n" +
		"resolve, 4, 4,\n" +
		"chargeback, 5, 5,\n"

	res := readAll(t, data)

	require.Empty(t, res.errs)
	require.Len(t, res.events, 5)

	dep, ok := res.events[0].(model.Deposit)
	require.True(t, ok)
	assert.Equal(t, model.ClientID(1), dep.Client)
	assert.Equal(t, model.TxID(1), dep.Tx)
	assert.Equal(t, "1.0", model.FormatAmount(dep.Amount))

	wd, ok := res.events[1].(model.Withdrawal)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("2").Equal(wd.Amount))

	assert.Equal(t, model.Dispute{Client: 3, Tx: 3}, res.events[2])
	assert.Equal(t, model.Resolve{Client: 4, Tx: 4}, res.events[3])
	assert.Equal(t, model.Chargeback{Client: 5, Tx: 5}, res.events[4])
}

func TestReaderFlexibleRowsAndHeaderOrder(t *testing.T) {
	data := "Client,TX,Type,Amount\n" +
		"7,1,DEPOSIT,3\n" +
		"7,1,Dispute\n"

	res := readAll(t, data)

	require.Empty(t, res.errs)
	require.Len(t, res.events, 2)
	assert.Equal(t, model.KindDeposit, res.events[0].Kind())
	assert.Equal(t, model.Dispute{Client: 7, Tx: 1}, res.events[1])
}

func TestReaderStripsByteOrderMark(t *testing.T) {
	res := readAll(t, "\ufefftype,client,tx,amount\ndeposit,1,1,1.5\n")

	require.Empty(t, res.errs)
	require.Len(t, res.events, 1)
	deposit, ok := res.events[0].(model.Deposit)
	require.True(t, ok)
	assert.Equal(t, model.ClientID(1), deposit.Client)
	assert.True(t, decimal.RequireFromString("1.5").Equal(deposit.Amount))
}

func TestReaderTruncatesAmounts(t *testing.T) {
	res := readAll(t, "type,client,tx,amount\ndeposit,1,1,2.718281828\n")

	require.Len(t, res.events, 1)
	assert.Equal(t, "2.7182", model.FormatAmount(res.events[0].(model.Deposit).Amount))
}

func TestReaderMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{name: "deposit without amount", row: "deposit,1,2,", reason: "Deposit transaction must have an amount"},
		{name: "withdrawal without amount column", row: "withdrawal,1,2", reason: "Withdrawal transaction must have an amount"},
		{name: "unknown type", row: "refund,1,2,1.0", reason: "unknown transaction type 'refund'"},
		{name: "client out of range", row: "deposit,70000,2,1.0", reason: "invalid client '70000'"},
		{name: "negative tx", row: "deposit,1,-2,1.0", reason: "invalid tx '-2'"},
		{name: "amount not a number", row: "deposit,1,2,ten", reason: "invalid amount 'ten'"},
		{name: "negative amount", row: "withdrawal,1,2,-5", reason: "Withdrawal amount must be positive, got '-5'"},
		{name: "amount truncated to zero", row: "deposit,1,2,0.00001", reason: "Deposit amount '0.00001' truncates to zero at 4 decimal places"},
		{name: "negative amount truncated to zero", row: "withdrawal,1,2,-0.00001", reason: "Withdrawal amount must be positive, got '-0.00001'"},
		{name: "zero amount", row: "deposit,1,2,0.0", reason: "Deposit amount must be positive, got '0.0'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "type,client,tx,amount\ndeposit,1,1,1.0\n" + tt.row + "\ndeposit,1,3,1.0\n"

			res := readAll(t, data)

			require.Len(t, res.events, 2, "rows around the malformed one must still be read")
			require.Len(t, res.errs, 1)
			var malformed *MalformedRecordError
			require.True(t, errors.As(res.errs[0], &malformed))
			assert.Equal(t, 3, malformed.Line)
			assert.Equal(t, tt.reason, malformed.Reason)
			assert.True(t, IsMalformed(res.errs[0]))
		})
	}
}

func TestReaderBadQuotingIsMalformed(t *testing.T) {
	res := readAll(t, "type,client,tx,amount\ndeposit,1,1,\"1.0\n")

	require.Len(t, res.errs, 1)
	assert.True(t, IsMalformed(res.errs[0]))
}

func TestReaderEmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader("")).Next()
	assert.ErrorIs(t, err, io.EOF)

	res := readAll(t, "type,client,tx,amount\n")
	assert.Empty(t, res.events)
	assert.Empty(t, res.errs)
}

func TestReaderMissingColumn(t *testing.T) {
	res := readAll(t, "type,client,amount\ndeposit,1,1.0\n")

	require.Len(t, res.errs, 1)
	assert.ErrorIs(t, res.errs[0], ErrInvalidHeader)
	assert.False(t, IsMalformed(res.errs[0]))
	assert.Empty(t, res.events)
}

func TestMalformedRecordErrorMessage(t *testing.T) {
	err := &MalformedRecordError{Line: 4, Reason: "Deposit transaction must have an amount"}
	assert.EqualError(t, err, "line 4: Deposit transaction must have an amount")
}
