package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/hance08/txengine/internal/config"
	"github.com/pterm/pterm"
)

var levels = map[string]pterm.LogLevel{
	"trace":    pterm.LogLevelTrace,
	"debug":    pterm.LogLevelDebug,
	"info":     pterm.LogLevelInfo,
	"warn":     pterm.LogLevelWarn,
	"error":    pterm.LogLevelError,
	"disabled": pterm.LogLevelDisabled,
}

// New builds the diagnostics logger. Diagnostics never go to the snapshot stream,
// so w is normally stderr.
func New(cfg config.LogConfig, w io.Writer) (*pterm.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var formatter pterm.LogFormatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = pterm.LogFormatterColorful
	case "json":
		formatter = pterm.LogFormatterJSON
	default:
		return nil, fmt.Errorf("invalid log format '%s' (must be text or json)", cfg.Format)
	}

	return pterm.DefaultLogger.
		WithLevel(level).
		WithFormatter(formatter).
		WithWriter(w), nil
}

func ParseLevel(s string) (pterm.LogLevel, error) {
	if s == "" {
		return pterm.LogLevelInfo, nil
	}
	level, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid log level '%s' (must be trace, debug, info, warn, error or disabled)", s)
	}
	return level, nil
}
