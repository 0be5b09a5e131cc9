package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEvent(t *testing.T) {
	r := NewRecorder()

	r.ObserveEvent("deposit", OutcomeApplied)
	r.ObserveEvent("deposit", OutcomeApplied)
	r.ObserveEvent("dispute", OutcomeRejected)
	r.ObserveEvent("", OutcomeMalformed)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.events.WithLabelValues("deposit", OutcomeApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.events.WithLabelValues("dispute", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.events.WithLabelValues("unknown", OutcomeMalformed)))
}

func TestObserveSnapshot(t *testing.T) {
	r := NewRecorder()

	r.ObserveSnapshot(4, 1)

	assert.Equal(t, 4.0, testutil.ToFloat64(r.accounts))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.lockedAccounts))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveEvent("deposit", OutcomeApplied)
		r.ObserveSnapshot(1, 0)
	})
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "never.prom")))
	assert.Nil(t, r.Registry())
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveEvent("withdrawal", OutcomeRejected)
	r.ObserveSnapshot(2, 0)
	path := filepath.Join(t.TempDir(), "txengine.prom")

	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `txengine_events_total{kind="withdrawal",outcome="rejected"} 1`)
	assert.Contains(t, string(data), "txengine_accounts 2")
}
