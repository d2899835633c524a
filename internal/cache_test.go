package internal

import (
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/tmscope/internal/types"
)

func sampleIssues(filename string) []tt.Issue {
	return []tt.Issue{
		{
			Rule:     "unterminated-span",
			Category: category,
			Filename: filename,
			Message:  "span still open at end of input",
			Start:    token.Position{Filename: filename, Offset: 2, Line: 1, Column: 3},
			End:      token.Position{Filename: filename, Offset: 7, Line: 3, Column: 1},
			Severity: tt.SeverityWarning,
		},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "test.blk")
		require.NoError(t, os.WriteFile(filename, []byte("a {\n x\n"), 0o644))

		issues := sampleIssues(filename)
		require.NoError(t, cache.Set(filename, issues))

		loaded, found := cache.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)

		reopened, err := NewCache(cacheDir)
		require.NoError(t, err)
		loaded, found = reopened.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.blk")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "modified.blk")
		require.NoError(t, os.WriteFile(filename, []byte("{}"), 0o644))
		require.NoError(t, cache.Set(filename, sampleIssues(filename)))

		require.NoError(t, os.WriteFile(filename, []byte("{ {}"), 0o644))
		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "expired.blk")
		require.NoError(t, os.WriteFile(filename, []byte("{}"), 0o644))

		c, err := NewCache(filepath.Join(tmpDir, "expired"))
		require.NoError(t, err)
		c.SetMaxAge(-1)
		require.NoError(t, c.Set(filename, nil))
		_, found := c.Get(filename)
		assert.False(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "all.blk")
		require.NoError(t, os.WriteFile(filename, []byte("{}"), 0o644))
		require.NoError(t, cache.Set(filename, sampleIssues(filename)))

		cache.InvalidateAll()
		_, found := cache.Get(filename)
		assert.False(t, found)
	})
}

func TestCacheDependencies(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	dep := filepath.Join(tmpDir, "grammar.json")
	require.NoError(t, os.WriteFile(dep, []byte(`{"scopeName": "source.a"}`), 0o644))
	filename := filepath.Join(tmpDir, "test.blk")
	require.NoError(t, os.WriteFile(filename, []byte("{}"), 0o644))

	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir, dep)
	require.NoError(t, err)
	require.NoError(t, cache.Set(filename, sampleIssues(filename)))

	_, found := cache.Get(filename)
	require.True(t, found)

	require.NoError(t, os.WriteFile(dep, []byte(`{"scopeName": "source.b"}`), 0o644))
	_, found = cache.Get(filename)
	assert.False(t, found)

	// a reopened cache drops entries recorded against the old dependency
	require.NoError(t, cache.Set(filename, sampleIssues(filename)))
	require.NoError(t, os.WriteFile(dep, []byte(`{"scopeName": "source.c"}`), 0o644))
	reopened, err := NewCache(cacheDir, dep)
	require.NoError(t, err)
	_, found = reopened.Get(filename)
	assert.False(t, found)

	_, err = NewCache(filepath.Join(tmpDir, "other"), filepath.Join(tmpDir, "missing.json"))
	assert.Error(t, err)
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	testFile := filepath.Join(tmpDir, "test.blk")
	require.NoError(t, os.WriteFile(testFile, []byte("{}"), 0o644))
	issues := sampleIssues(testFile)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Set(testFile, issues))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(testFile)
		}()
	}
	wg.Wait()

	got, found := cache.Get(testFile)
	assert.True(t, found)
	assert.Equal(t, issues, got)
}
