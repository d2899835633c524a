package batch

import (
	"context"
	"errors"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/internal/types"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Run(ctx context.Context, filePath string) ([]types.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockEngine) RunSource(ctx context.Context, scope string, source []byte) ([]types.Issue, error) {
	args := m.Called(scope, source)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockEngine) IgnorePath(path string) {
	m.Called(path)
}

func (m *mockEngine) Extensions() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func issueFor(filename, rule string) types.Issue {
	return types.Issue{
		Rule:     rule,
		Filename: filename,
		Start:    token.Position{Filename: filename, Offset: 0, Line: 1, Column: 1},
		End:      token.Position{Filename: filename, Offset: 10, Line: 1, Column: 11},
		Message:  "Test issue",
	}
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		require.NoError(t, os.WriteFile(filePath, []byte("val x = 1\n"), 0o644))
		paths = append(paths, filePath)
	}
	return paths
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := []types.Issue{issueFor("Main.kt", "unterminated-span")}
	engine := new(mockEngine)
	engine.On("Run", "Main.kt").Return(expected, nil)

	issues, err := ProcessFile(context.Background(), engine, "Main.kt")

	assert.NoError(t, err)
	assert.Equal(t, expected, issues)
	engine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()
	first, second := issueFor("", "rule1"), issueFor("", "rule2")

	engine := new(mockEngine)
	engine.On("RunSource", "source.kotlin", []byte("val a")).Return([]types.Issue{first}, nil)
	engine.On("RunSource", "source.kotlin", []byte("val b")).Return([]types.Issue{second}, nil)

	issues, err := ProcessSources(context.Background(), zap.NewNop(), engine, "source.kotlin",
		[][]byte{[]byte("val a"), []byte("val b")}, ProcessSource)

	assert.NoError(t, err)
	assert.Equal(t, []types.Issue{first, second}, issues)
	engine.AssertExpectations(t)

	failing := new(mockEngine)
	failing.On("RunSource", "source.kotlin", []byte("x")).Return([]types.Issue(nil), errors.New("boom"))
	_, err = ProcessSources(context.Background(), nil, failing, "source.kotlin", [][]byte{[]byte("x")}, ProcessSource)
	assert.EqualError(t, err, "boom")
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "A.kt", "B.kt", "notes.txt")

	engine := new(mockEngine)
	engine.On("Extensions").Return([]string{".kt"})
	engine.On("Run", paths[0]).Return([]types.Issue{issueFor(paths[0], "rule1")}, nil)
	engine.On("Run", paths[1]).Return([]types.Issue{issueFor(paths[1], "rule2")}, nil)

	issues, err := ProcessPath(context.Background(), zap.NewNop(), engine, tempDir, ProcessFile)

	assert.NoError(t, err)
	assert.Equal(t, []types.Issue{issueFor(paths[0], "rule1"), issueFor(paths[1], "rule2")}, issues)
	engine.AssertExpectations(t)
	engine.AssertNotCalled(t, "Run", paths[2])
}

func TestProcessPathSkipsFailingFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "A.kt", "B.kt")

	engine := new(mockEngine)
	engine.On("Extensions").Return([]string{".kt"})
	engine.On("Run", paths[0]).Return([]types.Issue(nil), errors.New("unreadable"))
	engine.On("Run", paths[1]).Return([]types.Issue{issueFor(paths[1], "rule")}, nil)

	issues, err := ProcessPath(context.Background(), zap.NewNop(), engine, tempDir, ProcessFile)

	assert.NoError(t, err)
	assert.Equal(t, []types.Issue{issueFor(paths[1], "rule")}, issues)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	createTempFiles(t, tempDir, "A.kt", "B.kt", "C.kt")

	engine := new(mockEngine)
	engine.On("Extensions").Return([]string{".kt"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	issues, err := ProcessPath(ctx, nil, engine, tempDir, ProcessFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
	engine.AssertNotCalled(t, "Run", mock.Anything)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "A.kt", "B.kt")

	engine := new(mockEngine)
	engine.On("Run", paths[0]).Return([]types.Issue{issueFor(paths[0], "rule1")}, nil)
	engine.On("Run", paths[1]).Return([]types.Issue{issueFor(paths[1], "rule2")}, nil)

	issues, err := ProcessFiles(context.Background(), zap.NewNop(), engine, paths, ProcessFile)

	assert.NoError(t, err)
	assert.Len(t, issues, 2)
	engine.AssertExpectations(t)

	_, err = ProcessFiles(context.Background(), zap.NewNop(), engine, []string{filepath.Join(tempDir, "missing.kt")}, ProcessFile)
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "A.kt", "notes.txt")

	engine := new(mockEngine)
	engine.On("Extensions").Return([]string{".kt"})

	files, err := Files(engine, []string{tempDir, paths[1]})
	require.NoError(t, err)
	assert.Equal(t, []string{paths[0], paths[1]}, files)
}

func TestProcessPathWithKotlinEngine(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "Open.kt"), []byte("fun f() {\n    \"open\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "Fine.kt"), []byte("val x = 1\n"), 0o644))

	engine, err := New(zap.NewNop(), DefaultConfig())
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), zap.NewNop(), engine, tempDir, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, "unterminated-span", issue.Rule)
		assert.Equal(t, filepath.Join(tempDir, "Open.kt"), issue.Filename)
		assert.Equal(t, types.SeverityWarning, issue.Severity)
	}
	// outermost span first: the block opened on line 1, then the string on line 2
	assert.Equal(t, 1, issues[0].Start.Line)
	assert.Equal(t, 2, issues[1].Start.Line)
}
