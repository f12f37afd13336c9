package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Runner executes external binaries.
type Runner struct {
	Logger *slog.Logger
}

// NewRunner returns a Runner logging to logger, or slog.Default when nil.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes bin with args. When stdout is non-empty the process output
// is written to that file, which must exist and be non-empty afterwards.
// Failures wrap core.ErrExternalTool and carry the tool's stderr.
func (r *Runner) Run(ctx context.Context, stdout, bin string, args ...string) error {
	logger := r.logger().With("tool", bin)

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	var out *os.File
	if stdout != "" {
		f, err := os.Create(stdout)
		if err != nil {
			return fmt.Errorf("tools: %w", err)
		}
		out = f
		cmd.Stdout = f
	}

	logger.Debug("running", "args", args, "stdout", stdout)
	start := time.Now()
	err := cmd.Run()
	if out != nil {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Error("tool failed", "exit", exitErr.ExitCode(), "stderr", stderr.String())
			return fmt.Errorf("tools: %w: %s exited with %d: %s", core.ErrExternalTool, bin, exitErr.ExitCode(), bytes.TrimSpace(stderr.Bytes()))
		}
		logger.Error("tool failed", "error", err)
		return fmt.Errorf("tools: %w: %s: %v", core.ErrExternalTool, bin, err)
	}
	logger.Debug("finished", "elapsed", time.Since(start))

	if stdout != "" {
		if err := RequireOutput(stdout); err != nil {
			return err
		}
	}
	return nil
}

// RequireOutput reports ErrExternalTool when path is missing or empty.
func RequireOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("tools: %w: missing output %s", core.ErrExternalTool, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("tools: %w: empty output %s", core.ErrExternalTool, path)
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
