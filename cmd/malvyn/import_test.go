package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandFileArgs(t *testing.T) {
	tempDir := t.TempDir()

	file1 := filepath.Join(tempDir, "jan2024.qfx")
	file2 := filepath.Join(tempDir, "feb2024.qfx")
	file3 := filepath.Join(tempDir, "data.csv")

	require.NoError(t, os.WriteFile(file1, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(file2, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(file3, []byte("x"), 0o644))

	t.Run("glob pattern", func(t *testing.T) {
		files, err := expandFileArgs([]string{filepath.Join(tempDir, "*.qfx")})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("direct file", func(t *testing.T) {
		files, err := expandFileArgs([]string{file3})
		require.NoError(t, err)
		assert.Equal(t, []string{file3}, files)
	})

	t.Run("mixed patterns", func(t *testing.T) {
		files, err := expandFileArgs([]string{
			filepath.Join(tempDir, "*.qfx"),
			file3,
		})
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		files, err := expandFileArgs([]string{filepath.Join(tempDir, "nope.qfx")})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := expandFileArgs([]string{"["})
		assert.Error(t, err)
	})
}
