package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/hance08/txengine/internal/account"
	"github.com/hance08/txengine/internal/model"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account snapshots as "client,available,held,total,locked" rows.
type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAll writes the header followed by one row per snapshot, then flushes.
// It returns the number of rows written.
func (w *Writer) WriteAll(snapshots iter.Seq[account.Snapshot]) (int, error) {
	if err := w.csv.Write(snapshotHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	n := 0
	for snap := range snapshots {
		if err := w.csv.Write(row(snap)); err != nil {
			return n, fmt.Errorf("failed to write account %d: %w", snap.Client, err)
		}
		n++
	}

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return n, fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return n, nil
}

func row(snap account.Snapshot) []string {
	return []string{
		strconv.FormatUint(uint64(snap.Client), 10),
		model.FormatAmount(snap.Available),
		model.FormatAmount(snap.Held),
		model.FormatAmount(snap.Total),
		strconv.FormatBool(snap.Locked),
	}
}
