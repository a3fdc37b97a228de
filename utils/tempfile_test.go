package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTempFile(t *testing.T) {
	dir := t.TempDir()

	staged, cleanup, err := StageTempFile(dir, strings.NewReader("jpeg bytes"), "waffle.jpg")
	require.NoError(t, err)

	assert.Equal(t, ".jpg", filepath.Ext(staged.Path))
	assert.Equal(t, "waffle.jpg", staged.Name)
	assert.EqualValues(t, len("jpeg bytes"), staged.Size)

	data, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	cleanup()
	_, err = os.Stat(staged.Path)
	assert.True(t, os.IsNotExist(err))

	// Second call is harmless.
	cleanup()
}

func TestStageTempFileBadDir(t *testing.T) {
	_, cleanup, err := StageTempFile(filepath.Join(t.TempDir(), "missing"), strings.NewReader("x"), "a.png")
	require.Error(t, err)
	cleanup()
}
