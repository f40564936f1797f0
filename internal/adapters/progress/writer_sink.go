package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// WriterSink prints progress as plain lines, for pipes and CI logs
type WriterSink struct {
	out  io.Writer
	mu   sync.Mutex
	last string
}

// NewWriterSink creates a line-oriented progress sink
func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{out: out}
}

// OnProgress prints each new spinner message once
func (w *WriterSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if !event.Spinner || event.Message == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if event.Message == w.last {
		return
	}
	w.last = event.Message
	fmt.Fprintln(w.out, event.Message)
}

// Info prints an info message
func (w *WriterSink) Info(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, message)
}

// Error prints an error message
func (w *WriterSink) Error(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	color.New(color.FgRed).Fprintln(w.out, message)
}

// NewProgressSink picks the sink for the current terminal.
// JSON output keeps stdout clean, so progress goes to stderr.
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	out := os.Stdout
	if cfg.JSON {
		out = os.Stderr
	}
	if cfg.NonInteractive || !isatty.IsTerminal(out.Fd()) {
		return NewWriterSink(out)
	}
	return NewSpinnerSink(out)
}

var _ usecase.ProgressSink = (*WriterSink)(nil)
