// Package csvio reads input events from CSV and writes account snapshots back as CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/hance08/txengine/internal/model"
	"github.com/shopspring/decimal"
)

const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"

	byteOrderMark = "\ufeff"
)

// Reader decodes rows of "type,client,tx,amount". Column order follows the header,
// names and fields are whitespace-trimmed, and the amount column may be omitted
// on rows that do not need it.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{csv: cr}
}

// Next returns the next event. It returns io.EOF once the input is exhausted and a
// *MalformedRecordError for a row that was skipped; any other error is fatal.
func (r *Reader) Next() (model.Event, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &MalformedRecordError{Line: parseErr.Line, Reason: parseErr.Err.Error()}
		}
		return nil, err
	}

	line, _ := r.csv.FieldPos(0)
	return r.parse(line, record)
}

// Events yields events in input order. Malformed rows are yielded as errors and
// iteration continues; it stops after the first fatal error.
func (r *Reader) Events() iter.Seq2[model.Event, error] {
	return func(yield func(model.Event, error) bool) {
		for {
			event, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) {
				return
			}
			if err != nil && !IsMalformed(err) {
				return
			}
		}
	}
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			// Spreadsheet exports often start with a UTF-8 byte order mark.
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colType, colClient, colTx} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("%w: missing column '%s'", ErrInvalidHeader, required)
		}
	}

	r.columns = columns
	return nil
}

func (r *Reader) field(record []string, name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (r *Reader) parse(line int, record []string) (model.Event, error) {
	rawKind := r.field(record, colType)
	malformed := func(format string, a ...any) error {
		return &MalformedRecordError{Line: line, Kind: rawKind, Reason: fmt.Sprintf(format, a...)}
	}

	kind, err := model.ParseKind(rawKind)
	if err != nil {
		return nil, malformed("%v", err)
	}

	client, err := strconv.ParseUint(r.field(record, colClient), 10, 16)
	if err != nil {
		return nil, malformed("invalid client '%s'", r.field(record, colClient))
	}
	tx, err := strconv.ParseUint(r.field(record, colTx), 10, 32)
	if err != nil {
		return nil, malformed("invalid tx '%s'", r.field(record, colTx))
	}

	clientID, txID := model.ClientID(client), model.TxID(tx)

	switch kind {
	case model.KindDeposit, model.KindWithdrawal:
		raw := r.field(record, colAmount)
		if raw == "" {
			return nil, malformed("%s transaction must have an amount", capitalize(kind.String()))
		}
		amount, err := model.ParseAmount(raw)
		if err != nil {
			return nil, malformed("%v", err)
		}
		if amount.IsZero() {
			if parsed, perr := decimal.NewFromString(raw); perr == nil && parsed.IsPositive() {
				return nil, malformed("%s amount '%s' truncates to zero at %d decimal places", capitalize(kind.String()), raw, model.AmountScale)
			}
		}
		if !amount.IsPositive() {
			return nil, malformed("%s amount must be positive, got '%s'", capitalize(kind.String()), raw)
		}
		if kind == model.KindDeposit {
			return model.Deposit{Client: clientID, Tx: txID, Amount: amount}, nil
		}
		return model.Withdrawal{Client: clientID, Tx: txID, Amount: amount}, nil
	case model.KindDispute:
		return model.Dispute{Client: clientID, Tx: txID}, nil
	case model.KindResolve:
		return model.Resolve{Client: clientID, Tx: txID}, nil
	case model.KindChargeback:
		return model.Chargeback{Client: clientID, Tx: txID}, nil
	}

	return nil, malformed("unsupported transaction type '%s'", rawKind)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
