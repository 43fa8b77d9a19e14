package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ByteFuzz/mangle"
)

// TestAddAndDedup checks content-hash deduplication
func TestAddAndDedup(t *testing.T) {
	c := New(1024, "")

	added, err := c.Add([]byte("first input"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, c.Len())

	added, err = c.Add([]byte("first input"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, c.Len())

	added, err = c.Add([]byte("second input"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 2, c.Len())

	// Empty inputs are ignored
	added, err = c.Add(nil)
	require.NoError(t, err)
	assert.False(t, added)
}

// TestAddTruncates oversized inputs to the configured maximum
func TestAddTruncates(t *testing.T) {
	c := New(4, "")
	added, err := c.Add([]byte("123456789"))
	require.NoError(t, err)
	assert.True(t, added)

	got := c.PickRandomInput(mangle.NewRand(1))
	assert.Equal(t, []byte("1234"), got)
}

// TestAddIsACopy: mutating the original afterwards must not change the
// stored entry
func TestAddIsACopy(t *testing.T) {
	c := New(1024, "")
	data := []byte("immutable?")
	_, err := c.Add(data)
	require.NoError(t, err)
	data[0] = 'X'

	got := c.PickRandomInput(mangle.NewRand(1))
	assert.Equal(t, []byte("immutable?"), got)
}

// TestPickRandomInputEmpty returns nil for an empty corpus
func TestPickRandomInputEmpty(t *testing.T) {
	c := New(1024, "")
	assert.Nil(t, c.PickRandomInput(mangle.NewRand(1)))
}

// TestPersistence: added entries land on disk under their content hash
func TestPersistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	c := New(1024, dir)

	_, err := c.Add([]byte("persisted entry"))
	require.NoError(t, err)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Name(), ".cov"))

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted entry"), data)
}

// TestLoadDir seeds the corpus from disk without re-persisting
func TestLoadDir(t *testing.T) {
	seedDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "a"), []byte("seed a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "b"), []byte("seed b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "dup"), []byte("seed a"), 0644))

	outDir := filepath.Join(t.TempDir(), "out")
	c := New(1024, outDir)
	n, err := c.LoadDir(seedDir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, c.Len())

	// Loading must not write anything to the output directory
	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

// TestLoadDirMissing reports the error
func TestLoadDirMissing(t *testing.T) {
	c := New(1024, "")
	_, err := c.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
