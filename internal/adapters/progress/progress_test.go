package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

func TestWriterSink(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := NewWriterSink(&out)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploying", Message: "Deploying FundMe...", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploying", Message: "Deploying FundMe...", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "mined"})
	sink.Info("FundMe deployed")
	sink.Error("verification failed")

	assert.Equal(t, "Deploying FundMe...\nFundMe deployed\nverification failed\n", out.String())
}

func TestSpinnerSink_InfoWithoutSpinner(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := NewSpinnerSink(&out)

	sink.Info("Local network detected! Deploying mocks...")
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "done"})

	assert.Equal(t, "Local network detected! Deploying mocks...\n", out.String())
	assert.Equal(t, "done", sink.currentStage)
}

func TestNewProgressSink(t *testing.T) {
	// test binaries never run with a terminal on stdout
	assert.IsType(t, &WriterSink{}, NewProgressSink(&config.RuntimeConfig{}))
	assert.IsType(t, &WriterSink{}, NewProgressSink(&config.RuntimeConfig{NonInteractive: true}))
	assert.IsType(t, &NopSink{}, NewNopSink())
}
