package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hance08/txengine/internal/account"
	"github.com/hance08/txengine/internal/csvio"
	"github.com/hance08/txengine/internal/ledger"
	"github.com/hance08/txengine/internal/metrics"
	"github.com/hance08/txengine/internal/model"
	"github.com/pterm/pterm"
)

// Processor replays an event stream through a ledger and writes the resulting
// account snapshot.
type Processor struct {
	ledger  *ledger.Ledger
	logger  *pterm.Logger
	metrics *metrics.Recorder
}

// NewProcessor wires a run. logger may be nil to discard diagnostics and rec may be
// nil to skip metrics.
func NewProcessor(l *ledger.Ledger, logger *pterm.Logger, rec *metrics.Recorder) *Processor {
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return &Processor{ledger: l, logger: logger, metrics: rec}
}

// Run applies every event from src in order. Malformed rows and rejected events are
// logged and skipped; only read, storage or write failures stop the run.
func (p *Processor) Run(src io.Reader, dst io.Writer) (*Summary, error) {
	summary := newSummary(uuid.NewString())
	p.logger.Debug("processing started", p.logger.Args("run_id", summary.RunID))

	for event, err := range csvio.NewReader(src).Events() {
		if err != nil {
			var malformed *csvio.MalformedRecordError
			if !errors.As(err, &malformed) {
				return summary, fmt.Errorf("failed to read events: %w", err)
			}
			summary.Malformed++
			p.metrics.ObserveEvent(kindLabel(malformed.Kind), metrics.OutcomeMalformed)
			p.logger.Error(malformed.Reason, p.logger.Args("line", malformed.Line))
			continue
		}

		if err := p.ledger.Process(event); err != nil {
			if errors.Is(err, ledger.ErrStorage) {
				return summary, fmt.Errorf("failed to process %s %d: %w", event.Kind(), event.TxID(), err)
			}
			summary.rejected(event.Kind())
			p.metrics.ObserveEvent(event.Kind().String(), metrics.OutcomeRejected)
			p.logger.Error(err.Error(), p.logger.Args(rejectionArgs(event, err)...))
			continue
		}

		summary.applied(event.Kind())
		p.metrics.ObserveEvent(event.Kind().String(), metrics.OutcomeApplied)
	}

	snapshots := func(yield func(account.Snapshot) bool) {
		for snap := range p.ledger.Accounts() {
			if snap.Locked {
				summary.Locked++
			}
			if !yield(snap) {
				return
			}
		}
	}

	n, err := csvio.NewWriter(dst).WriteAll(snapshots)
	if err != nil {
		return summary, fmt.Errorf("failed to write accounts: %w", err)
	}
	summary.Accounts = n
	p.metrics.ObserveSnapshot(summary.Accounts, summary.Locked)

	p.logger.Debug("processing finished", p.logger.Args(
		"run_id", summary.RunID,
		"applied", summary.Applied(),
		"rejected", summary.Rejected(),
		"malformed", summary.Malformed,
		"accounts", summary.Accounts,
	))

	return summary, nil
}

func rejectionArgs(event model.Event, err error) []any {
	args := []any{
		"kind", event.Kind().String(),
		"client", event.ClientID(),
		"tx", event.TxID(),
	}

	var ledgerErr *ledger.Error
	if errors.As(err, &ledgerErr) && errors.Is(err, ledger.ErrDisputeUnOwnedTransaction) {
		args = append(args, "owner", ledgerErr.Owner)
	}
	return args
}

// kindLabel keeps metric labels to the known kinds.
func kindLabel(raw string) string {
	kind, err := model.ParseKind(raw)
	if err != nil {
		return ""
	}
	return kind.String()
}
