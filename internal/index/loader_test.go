package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoaderLoadsSupportedFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("plain text guide"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# markdown guide"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.pdf"), []byte("%PDF"), 0o644))

	docs, err := NewLoader(zap.NewNop()).LoadFolder(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	bySource := map[string]string{}
	for _, d := range docs {
		bySource[d.Source] = d.Content
	}
	assert.Equal(t, "plain text guide", bySource["a.txt"])
	assert.Equal(t, "# markdown guide", bySource["b.md"])
}

func TestLoaderMissingFolder(t *testing.T) {
	_, err := NewLoader(zap.NewNop()).LoadFolder(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, entity.ErrNoDocuments)
}

func TestLoaderFolderWithOnlyUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0o644))

	docs, err := NewLoader(zap.NewNop()).LoadFolder(dir)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoaderEmptyFolder(t *testing.T) {
	docs, err := NewLoader(zap.NewNop()).LoadFolder(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoaderSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("guide"), 0o644))

	docs, err := NewLoader(zap.NewNop()).LoadFolder(dir)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
