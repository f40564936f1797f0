package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// SpinnerSink shows a spinner while transactions are pending
type SpinnerSink struct {
	spinner        *spinner.Spinner
	out            io.Writer
	currentStage   string
	stageStartTime time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink writing to out
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		r.currentStage = event.Stage
		r.stageStartTime = time.Now()
	}

	if !event.Spinner {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	r.spinner.Suffix = " " + r.describe(event)
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// describe renders "<message> [current/total]"
func (r *SpinnerSink) describe(event usecase.ProgressEvent) string {
	msg := event.Message
	if event.Total > 0 && event.Current > 0 {
		msg = fmt.Sprintf("%s %s", msg, color.New(color.Faint).Sprintf("[%d/%d]", event.Current, event.Total))
	}
	return msg
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		fmt.Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// pause stops the spinner while fn writes, then restarts it
func (r *SpinnerSink) pause(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

// Elapsed returns how long the current stage has been running
func (r *SpinnerSink) Elapsed() time.Duration {
	if r.stageStartTime.IsZero() {
		return 0
	}
	return time.Since(r.stageStartTime).Round(time.Millisecond)
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
