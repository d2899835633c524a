package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/internal/types"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("default file missing", func(t *testing.T) {
		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `name: project
style: dracula
matchTimeout: 500ms
maxCaptureDepth: 2
rules:
  unterminated-span:
    severity: error
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "project", config.Name)
		assert.Equal(t, "dracula", config.Style)
		assert.Equal(t, "terminal256", config.Formatter)
		assert.Equal(t, 500*time.Millisecond, config.MatchTimeout)
		require.NotNil(t, config.MaxCaptureDepth)
		assert.Equal(t, 2, *config.MaxCaptureDepth)
		assert.Equal(t, types.SeverityError, config.Rules["unterminated-span"].Severity)
		assert.Equal(t, types.SeverityInfo, config.Rules["empty-match-skipped"].Severity)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("invalid severity", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  unterminated-span:\n    severity: loud\n"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestConfigWriteRoundTrip(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	config.Grammars = []string{"grammars/toy.json"}

	var buf bytes.Buffer
	require.NoError(t, config.Write(&buf))
	assert.Contains(t, buf.String(), "matchTimeout: 2s")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

const toyGrammar = `{
	"scopeName": "source.toy",
	"fileTypes": ["toy"],
	"patterns": [{"begin": "\\(", "end": "\\)", "name": "meta.group.toy", "patterns": [{"include": "$self"}]}]
}`

func TestNewWithExtraGrammars(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "toy.json")
	require.NoError(t, os.WriteFile(grammarPath, []byte(toyGrammar), 0o644))

	config := DefaultConfig()
	config.Grammars = []string{grammarPath}
	config.CacheDir = filepath.Join(dir, "cache")

	engine, err := New(zap.NewNop(), config)
	require.NoError(t, err)
	assert.Equal(t, []string{".kotlin", ".kt", ".kts", ".toy"}, engine.Extensions())

	_, ok := engine.Grammar("source.toy")
	assert.True(t, ok)

	issues, err := engine.RunSource(context.Background(), "source.toy", []byte("(("))
	require.NoError(t, err)
	assert.Len(t, issues, 2)

	config.Grammars = []string{filepath.Join(dir, "missing.json")}
	_, err = New(zap.NewNop(), config)
	assert.Error(t, err)

	config = DefaultConfig()
	config.Rules = map[string]types.ConfigRule{"made-up": {}}
	_, err = New(zap.NewNop(), config)
	assert.Error(t, err)
}
