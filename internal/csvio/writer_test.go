package csvio

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/hance08/txengine/internal/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAll(t *testing.T) {
	snaps := []account.Snapshot{
		{
			Client:    1,
			Available: decimal.RequireFromString("300.0"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("300.0"),
		},
		{
			Client:    2,
			Available: decimal.RequireFromString("0.0"),
			Held:      decimal.RequireFromString("0.0"),
			Total:     decimal.RequireFromString("0.0"),
			Locked:    true,
		},
	}
	var buf bytes.Buffer

	n, err := NewWriter(&buf).WriteAll(slices.Values(snaps))

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,300.0,0,300.0,false\n"+
		"2,0.0,0.0,0.0,true\n", buf.String())
}

func TestWriteAllEmpty(t *testing.T) {
	var buf bytes.Buffer

	n, err := NewWriter(&buf).WriteAll(slices.Values([]account.Snapshot(nil)))

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteAllReportsFlushError(t *testing.T) {
	_, err := NewWriter(failingWriter{}).WriteAll(slices.Values([]account.Snapshot{{Client: 1}}))

	assert.ErrorContains(t, err, "broken pipe")
}
