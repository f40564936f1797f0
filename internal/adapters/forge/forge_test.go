package forge

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// fakeForge writes a shell script standing in for forge
func fakeForge(t *testing.T, script string) *ForgeAdapter {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "forge")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0755))

	f := NewForgeAdapter(&config.RuntimeConfig{ProjectRoot: dir}, zap.NewNop())
	f.binary = bin
	return f
}

func TestForgeAdapter_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("streams output", func(t *testing.T) {
		f := fakeForge(t, "echo \"Compiler run successful!\"\n")
		var out bytes.Buffer
		require.NoError(t, f.Build(ctx, &out))
		assert.Equal(t, "Compiler run successful!\n", out.String())
	})

	t.Run("quiet failure includes output", func(t *testing.T) {
		f := fakeForge(t, "echo \"Error: Compiler run failed\"\nexit 1\n")
		err := f.Build(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Compiler run failed")
	})

	t.Run("missing binary", func(t *testing.T) {
		f := NewForgeAdapter(&config.RuntimeConfig{ProjectRoot: t.TempDir()}, zap.NewNop())
		f.binary = filepath.Join(t.TempDir(), "nope")
		assert.False(t, f.Available())
		assert.Error(t, f.Build(ctx, nil))
	})
}
