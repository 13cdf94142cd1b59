package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	err := os.WriteFile(path, content, 0o600)
	require.NoError(t, err)

	return path
}

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte("PORT=3000\nDEBUG=false\n")
	path := writeFile(t, ".menv", content)

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, string(content), fetcher.Text())
	assert.Equal(t, path, fetcher.Path())
}

func TestFetcher_MissingFile(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(filepath.Join(t.TempDir(), ".menv.local"))()

	require.Error(t, err)
	assert.Nil(t, fetcher)
	assert.True(t, IsMissing(err), "missing file should be detectable")
	assert.Contains(t, err.Error(), "stat file")
}

func TestIsMissing_OtherErrors(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(t.TempDir())()

	require.Error(t, err)
	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.False(t, IsMissing(err))
	assert.False(t, IsMissing(nil))
}

func TestFetcher_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, ".menv", []byte{})

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewFetcher_CleansPath(t *testing.T) {
	t.Parallel()

	path := writeFile(t, ".menv", []byte("A=1"))
	dirty := filepath.Dir(path) + "/./" + filepath.Base(path)

	fetcher, err := NewFetcher(dirty)()
	require.NoError(t, err)
	assert.Equal(t, path, fetcher.Path())
}

func TestFetcher_FileModifiedAfterConstruction_ReturnsCachedData(t *testing.T) {
	t.Parallel()

	originalContent := []byte("PORT=3000")
	path := writeFile(t, ".menv", originalContent)

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	err = os.WriteFile(path, []byte("PORT=9000"), 0o600)
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)

	assert.Equal(t, originalContent, data, "Fetch should return cached data, not current file content")
}

func TestFetcher_Fetch_ReturnsCopy_MutationSafe(t *testing.T) {
	t.Parallel()

	content := []byte("NAME=app")
	path := writeFile(t, ".menv", content)

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	data1, err := fetcher.Fetch()
	require.NoError(t, err)

	data1[0] = 'X'

	data2, err := fetcher.Fetch()
	require.NoError(t, err)

	assert.Equal(t, content, data2, "Fetch should return unmodified cached data")
}
