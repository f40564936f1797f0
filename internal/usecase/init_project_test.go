package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// memoryFiles is an in-memory FileWriter
type memoryFiles struct {
	files  map[string]string
	dirs   []string
	failOn string
}

func (m *memoryFiles) WriteFile(ctx context.Context, path, content string) error {
	if path == m.failOn {
		return errors.New("disk full")
	}
	m.files[path] = content
	return nil
}

func (m *memoryFiles) FileExists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func (m *memoryFiles) EnsureDirectory(ctx context.Context, path string) error {
	m.dirs = append(m.dirs, path)
	return nil
}

func TestInitProject(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh project", func(t *testing.T) {
		files := &memoryFiles{files: map[string]string{}}
		sink := &recordingSink{}
		result, err := usecase.NewInitProject(localhostConfig(), files, sink).Execute(ctx)
		require.NoError(t, err)

		assert.True(t, result.ConfigCreated)
		assert.True(t, result.EnvExampleCreated)
		assert.False(t, result.AlreadyInitialized)
		assert.Equal(t, usecase.ProjectTemplate, files.files["fundme.toml"])
		assert.Equal(t, usecase.EnvExampleTemplate, files.files[".env.example"])
		assert.Equal(t, []string{"deployments"}, files.dirs)
		assert.Contains(t, sink.output(), "Created fundme.toml")
	})

	t.Run("existing files are kept", func(t *testing.T) {
		files := &memoryFiles{files: map[string]string{"fundme.toml": "# mine", ".env.example": ""}}
		result, err := usecase.NewInitProject(localhostConfig(), files, &recordingSink{}).Execute(ctx)
		require.NoError(t, err)

		assert.True(t, result.AlreadyInitialized)
		assert.False(t, result.EnvExampleCreated)
		assert.Equal(t, "# mine", files.files["fundme.toml"])
	})

	t.Run("write failure stops init", func(t *testing.T) {
		files := &memoryFiles{files: map[string]string{}, failOn: ".env.example"}
		result, err := usecase.NewInitProject(localhostConfig(), files, &recordingSink{}).Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.True(t, result.ConfigCreated)
		assert.Empty(t, files.dirs)
	})
}
