package app

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/txengine/internal/config"
	"github.com/hance08/txengine/internal/ledger"
	"github.com/hance08/txengine/internal/logging"
	"github.com/hance08/txengine/internal/metrics"
	"github.com/hance08/txengine/internal/service"
	"github.com/hance08/txengine/internal/store"
	"github.com/pterm/pterm"
)

type App struct {
	Processor *service.Processor
	Ledger    *ledger.Ledger
	Logger    *pterm.Logger
	// Metrics is nil unless a textfile is configured.
	Metrics *metrics.Recorder
}

// NewApp builds the logger, transaction memory and ledger for one run, then returns
// the App entity and a cleanup that releases the transaction memory.
func NewApp(cfg *config.Config, migrationFS fs.FS, logWriter io.Writer) (*App, func(), error) {
	logger, err := logging.New(cfg.Log, logWriter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	memPath, err := ExpandPath(cfg.Memory.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve memory path: %w", err)
	}

	memory, err := store.Open(store.Options{
		Backend:              cfg.Memory.Backend,
		Path:                 memPath,
		ExpectedTransactions: cfg.Memory.ExpectedTransactions,
	}, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize transaction memory: %w", err)
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Textfile != "" {
		rec = metrics.NewRecorder()
	}

	l := ledger.New(memory)

	cleanup := func() {
		if err := l.Close(); err != nil {
			logger.Warn("failed to close transaction memory", logger.Args("error", err.Error()))
		}
	}

	return &App{
		Processor: service.NewProcessor(l, logger, rec),
		Ledger:    l,
		Logger:    logger,
		Metrics:   rec,
	}, cleanup, nil
}

// AppDataDir is where the default config file lives.
func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".txengine"), nil
	}

	return filepath.Join(configDir, "txengine"), nil
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
