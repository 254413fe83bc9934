package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

const sample = `
[[enum]]
name = "TestEnum1"
package = "example.com/levels"

  [[enum.member]]
  name = "Unknown"
  value = 0

  [[enum.member]]
  name = "First"
  value = 1

  [[enum.member]]
  name = "Second"
  value = 1

[[enum]]
name = "Empty"
`

func TestParse(t *testing.T) {
	defs, err := Parse([]byte(sample))
	require.NoError(t, err)

	want := []analyzer.Definition{
		{
			Name:    "TestEnum1",
			PkgPath: "example.com/levels",
			Members: []analyzer.Member{
				{Name: "Unknown", Value: 0},
				{Name: "First", Value: 1},
				{Name: "Second", Value: 1},
			},
		},
		{Name: "Empty"},
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoEnums(t *testing.T) {
	defs, err := Parse([]byte("title = \"nothing here\"\n"))
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParse_MalformedValues(t *testing.T) {
	defs, err := Parse([]byte(`
[[enum]]
name = "Mask"

  [[enum.member]]
  name = "None"
  value = 0

  [[enum.member]]
  name = "All"
  value = 4294967295

  [[enum.member]]
  name = "Half"
  value = 0.5

  [[enum.member]]
  name = "Missing"

  [[enum.member]]
  name = "Last"
  value = -1
`))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	members := defs[0].Members
	require.Len(t, members, 5)

	assert.NoError(t, members[0].Err)
	assert.ErrorContains(t, members[1].Err, "overflows int32")
	assert.ErrorContains(t, members[2].Err, "not an integer")
	assert.ErrorContains(t, members[3].Err, "missing value")
	assert.NoError(t, members[4].Err)
	assert.Equal(t, int32(-1), members[4].Value)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"invalid toml", "[[enum]\nname = ", "parsing schema"},
		{"enum not a table array", "enum = 3\n", "array of tables"},
		{"enum without name", "[[enum]]\npackage = \"p\"\n", "enum without a name"},
		{"member without name", "[[enum]]\nname = \"E\"\n[[enum.member]]\nvalue = 1\n", "member without a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enums.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	defs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, defs, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading schema")
}
