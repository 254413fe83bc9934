package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, analyzer.StepDescending, Default().StepRule())
}

func TestLoad_OverridesOnlyPresentKeys(t *testing.T) {
	path := writeConfig(t, `
filter = "example.com/app"
ignore = ["example.com/app.Legacy", "Internal"]
format = "table"
sequence = "ascending"
show_sequence = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "example.com/app", cfg.Filter)
	assert.Equal(t, []string{"example.com/app.Legacy", "Internal"}, cfg.Ignore)
	assert.Equal(t, "table", cfg.Format)
	assert.True(t, cfg.ShowSequence)
	assert.Equal(t, analyzer.StepAscending, cfg.StepRule())

	// untouched keys keep defaults
	assert.Equal(t, 1, cfg.Parallel)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.Strict)
}

func TestLoad_AllKeys(t *testing.T) {
	path := writeConfig(t, `
filter = "x"
include_unexported = true
include_tests = true
ignore = []
format = "log"
show_sequence = false
sequence = "descending"
parallel = 8
log_level = "debug"
log_file = "logs/enumcheck.log"
strict = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IncludeUnexported)
	assert.True(t, cfg.IncludeTests)
	assert.Equal(t, "log", cfg.Format)
	assert.Equal(t, 8, cfg.Parallel)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "logs/enumcheck.log", cfg.LogFile)
	assert.True(t, cfg.Strict)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "format = ", "loading config"},
		{"format", `format = "xml"`, "unknown format"},
		{"sequence", `sequence = "random"`, "unknown sequence rule"},
		{"parallel", `parallel = -2`, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()

	got, err := Find("", dir)
	require.NoError(t, err)
	assert.Empty(t, got)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	got, err = Find("", dir)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	t.Setenv(EnvVar, "/etc/enumcheck.toml")
	got, err = Find("", dir)
	require.NoError(t, err)
	assert.Equal(t, "/etc/enumcheck.toml", got)

	got, err = Find("custom.toml", dir)
	require.NoError(t, err)
	assert.Equal(t, "custom.toml", got)
}
