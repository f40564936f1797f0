package forge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// ForgeAdapter runs forge commands in the project root
type ForgeAdapter struct {
	log         *zap.Logger
	projectRoot string
	binary      string
}

// NewForgeAdapter creates a new forge executor
func NewForgeAdapter(cfg *config.RuntimeConfig, log *zap.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With(zap.String("component", "ForgeAdapter")),
		projectRoot: cfg.ProjectRoot,
		binary:      "forge",
	}
}

// Available reports whether the forge binary is on PATH
func (f *ForgeAdapter) Available() bool {
	_, err := exec.LookPath(f.binary)
	return err == nil
}

// Build runs forge build. With a writer the output is streamed, otherwise it
// is only returned as part of the error on failure.
func (f *ForgeAdapter) Build(ctx context.Context, out io.Writer) error {
	start := time.Now()
	f.log.Debug("running forge build", zap.String("dir", f.projectRoot))

	cmd := exec.CommandContext(ctx, f.binary, "build")
	cmd.Dir = f.projectRoot

	var (
		err    error
		output []byte
	)
	switch {
	case out == nil:
		output, err = cmd.CombinedOutput()
	case isTerminal(out):
		err = runWithPty(cmd, out)
	default:
		var buf bytes.Buffer
		cmd.Stdout = io.MultiWriter(out, &buf)
		cmd.Stderr = cmd.Stdout
		err = cmd.Run()
		output = buf.Bytes()
	}

	duration := time.Since(start)
	if err != nil {
		f.log.Error("forge build failed", zap.Error(err), zap.Duration("duration", duration))
		if len(output) > 0 {
			return fmt.Errorf("forge build failed: %w\nOutput: %s", err, string(output))
		}
		return fmt.Errorf("forge build failed: %w", err)
	}

	f.log.Debug("forge build completed successfully", zap.Duration("duration", duration))
	return nil
}

// runWithPty keeps forge's colored output when streaming to a terminal
func runWithPty(cmd *exec.Cmd, out io.Writer) error {
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	// reading a pty after the child exits returns EIO
	if _, err := io.Copy(out, ptyFile); err != nil && !errors.Is(err, syscall.EIO) {
		_ = cmd.Wait()
		return err
	}
	return cmd.Wait()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Ensure the adapter implements the interface
var _ usecase.Compiler = (*ForgeAdapter)(nil)
