package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = "type,client,tx,amount\n" +
	"deposit,1,1,100.0\n" +
	"deposit,2,2,50.0\n" +
	"dispute,1,2,\n" +
	"withdrawal,2,3,10\n"

const snapshot = "client,available,held,total,locked\n" +
	"1,100.0,0,100.0,false\n" +
	"2,40.0,0,40.0,false\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an isolated viper and an empty config file.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	viper.Reset()
	cfgFile = ""

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{}\n"), 0644))

	var stdout, stderr bytes.Buffer
	root := NewRootCmd(os.DirFS(".."))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))
	return path
}

func TestProcessFileToStdout(t *testing.T) {
	res := execute(t, "", writeInput(t), "--log-format", "json")

	require.NoError(t, res.err)
	assert.Equal(t, snapshot, res.stdout)
	assert.Contains(t, res.stderr, "Account (1) is attempting to dispute transaction 2 owned by client 2")
}

func TestProcessStdin(t *testing.T) {
	res := execute(t, input, "-", "--log-level", "disabled")

	require.NoError(t, res.err)
	assert.Equal(t, snapshot, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestProcessWithSQLiteOutputFileSummaryAndMetrics(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	dir := t.TempDir()
	outPath := filepath.Join(dir, "accounts.csv")
	metricsPath := filepath.Join(dir, "txengine.prom")

	res := execute(t, "", writeInput(t),
		"--memory-backend", "sqlite",
		"--output", outPath,
		"--summary",
		"--metrics-textfile", metricsPath,
		"--log-level", "disabled",
	)

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, snapshot, string(written))

	assert.Contains(t, res.stderr, "Locked Accounts")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `txengine_events_total{kind="dispute",outcome="rejected"} 1`)
}

func TestFailedRunKeepsExistingOutput(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "bad log format", stdin: input, args: []string{"--log-format", "xml"}},
		{name: "bad memory backend", stdin: input, args: []string{"--memory-backend", "redis"}},
		{name: "invalid header", stdin: "kind,who\ndeposit,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outPath := filepath.Join(dir, "accounts.csv")
			require.NoError(t, os.WriteFile(outPath, []byte("previous run\n"), 0644))

			args := append([]string{"-", "--output", outPath, "--log-level", "disabled"}, tt.args...)
			res := execute(t, tt.stdin, args...)

			require.Error(t, res.err)
			kept, err := os.ReadFile(outPath)
			require.NoError(t, err)
			assert.Equal(t, "previous run\n", string(kept))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp output must be cleaned up")
		})
	}
}

func TestProcessMissingInput(t *testing.T) {
	res := execute(t, "", filepath.Join(t.TempDir(), "nope.csv"))

	assert.ErrorContains(t, res.err, "failed to open input file")
}

func TestProcessRequiresOneArg(t *testing.T) {
	res := execute(t, "")

	assert.Error(t, res.err)
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	t.Setenv("TXENGINE_MEMORY_BACKEND", "redis")

	res := execute(t, "", writeInput(t))

	assert.ErrorContains(t, res.err, "unknown transaction memory backend 'redis'")
}

func TestConfigShow(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	res := execute(t, "", "config", "show", "--log-level", "warn")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "config.yaml")
	assert.Contains(t, res.stdout, "warn")
	assert.Contains(t, res.stdout, "memory")
	assert.Contains(t, res.stdout, "(stdout)")
}

func TestConfigFileIsRead(t *testing.T) {
	viper.Reset()
	cfgFile = ""
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("memory:\n  backend: sqlite\n  expected_transactions: 16\n"), 0644))

	root := NewRootCmd(os.DirFS(".."))
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", configPath, "config", "show"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "sqlite", cfg.Memory.Backend)
	assert.Equal(t, uint(16), cfg.Memory.ExpectedTransactions)
	assert.Equal(t, configPath, cfg.ConfigPath)
}
