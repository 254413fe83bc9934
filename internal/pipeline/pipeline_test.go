package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
	"github.com/olehluchkiv/enumcheck/internal/loader"
	"github.com/olehluchkiv/enumcheck/internal/report"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRun_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enums.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[enum]]
name = "TestEnum2"

  [[enum.member]]
  name = "Third"
  value = 333

  [[enum.member]]
  name = "Fourth"
  value = 333

  [[enum.member]]
  name = "Broken"
  value = "x"
`), 0o644))

	rec := &report.Recorder{}
	s, err := Run(context.Background(), Config{Schema: path}, rec, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Enums)
	assert.Equal(t, 1, s.DuplicateGroups)
	assert.Equal(t, 1, s.SequenceFindings)
	require.Error(t, s.Isolated)
	var mme *analyzer.MalformedMemberError
	assert.ErrorAs(t, s.Isolated, &mme)

	events := rec.ForEnum("TestEnum2")
	require.Len(t, events, 3)
	assert.Equal(t, []string{"Third", "Fourth"}, events[1].Duplicates[0].Members)
}

func TestRun_SchemaMissing(t *testing.T) {
	_, err := Run(context.Background(), Config{Schema: filepath.Join(t.TempDir(), "none.toml")}, nil, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestRun_Packages(t *testing.T) {
	// go test sets cwd to the package directory.
	dir := filepath.Join("..", "..", "testdata", "01_duplicates")

	rec := &report.Recorder{}
	s, err := Run(context.Background(), Config{Dir: dir}, rec, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Isolated)

	// the unexported "mode" enum is filtered out by default
	assert.Equal(t, 2, s.Enums)
	assert.Equal(t, 2, s.DuplicateGroups)
	assert.Empty(t, rec.ForEnum("example.com/testmod.mode"))
}

func TestRun_PackagesParallelWithFilters(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "02_sequence")

	rec := &report.Recorder{}
	s, err := Run(context.Background(), Config{
		Dir:      dir,
		Loader:   loader.Options{Ignore: []string{"example.com/testmod.Weekday"}},
		StepRule: analyzer.StepDescending,
		Parallel: 4,
	}, rec, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Enums)
	// Countdown is consistent; Color has Red=0,Green=1,Blue=2,Crimson=0
	assert.Len(t, rec.ForEnum("example.com/testmod.Countdown"), 1)
	assert.Equal(t, 1, s.DuplicateGroups)
	assert.Equal(t, 3, s.SequenceFindings)
}
