package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hance08/txengine/internal/app"
	"github.com/hance08/txengine/internal/config"
	"github.com/hance08/txengine/internal/ui/views"
)

type processRunner struct {
	cfg        *config.Config
	migrations fs.FS
	input      string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *processRunner) Run() error {
	src := r.stdin
	if r.input != "-" {
		f, err := os.Open(r.input)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		src = f
	}

	outPath := ""
	if r.cfg.Output.Path != "" {
		var err error
		if outPath, err = app.ExpandPath(r.cfg.Output.Path); err != nil {
			return fmt.Errorf("failed to resolve output path: %w", err)
		}
	}

	application, cleanup, err := app.NewApp(r.cfg, r.migrations, r.stderr)
	if err != nil {
		return err
	}
	defer cleanup()

	dst := r.stdout
	var out *pendingFile
	if outPath != "" {
		if out, err = createPending(outPath); err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.discard()
		dst = out
	}

	summary, err := application.Processor.Run(src, dst)
	if err != nil {
		return err
	}

	if out != nil {
		if err := out.commit(); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	if err := application.Metrics.WriteTextfile(r.cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	if r.cfg.Output.Summary {
		if err := views.RenderRunSummary(r.stderr, summary); err != nil {
			return err
		}
	}

	return nil
}

// pendingFile collects output in a temp file beside path and only replaces path
// on commit, so a failed run leaves any existing file untouched.
type pendingFile struct {
	*os.File
	path string
	done bool
}

func createPending(path string) (*pendingFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &pendingFile{File: f, path: path}, nil
}

func (p *pendingFile) commit() error {
	p.done = true
	if err := p.File.Chmod(0644); err != nil {
		p.File.Close()
		os.Remove(p.File.Name())
		return err
	}
	if err := p.File.Close(); err != nil {
		os.Remove(p.File.Name())
		return err
	}
	if err := os.Rename(p.File.Name(), p.path); err != nil {
		os.Remove(p.File.Name())
		return err
	}
	return nil
}

func (p *pendingFile) discard() {
	if p.done {
		return
	}
	p.File.Close()
	os.Remove(p.File.Name())
}
