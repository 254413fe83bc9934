package analyzer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olehluchkiv/enumcheck/internal/analyzer"
	"github.com/stretchr/testify/assert"
)

func def(name string, members ...analyzer.Member) analyzer.Definition {
	return analyzer.Definition{Name: name, Members: members}
}

func m(name string, value int32) analyzer.Member {
	return analyzer.Member{Name: name, Value: value}
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, analyzer.Group(def("Empty")))
}

func TestGroup_FirstSeenOrder(t *testing.T) {
	d := def("Mixed", m("C", 3), m("A", 1), m("D", 3), m("B", 1), m("E", 7))

	want := []analyzer.ValueGroup{
		{Value: 3, Members: []string{"C", "D"}},
		{Value: 1, Members: []string{"A", "B"}},
		{Value: 7, Members: []string{"E"}},
	}
	if diff := cmp.Diff(want, analyzer.Group(d)); diff != "" {
		t.Errorf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_IsPartitionOfMembers(t *testing.T) {
	d := def("Status",
		m("Unknown", 0), m("Active", 1), m("Enabled", 1),
		m("Gone", -4), m("Deleted", -4), m("Removed", -4), m("Paused", 9))

	groups := analyzer.Group(d)

	// Every member appears once, and each group is the declaration-order
	// subsequence of members with that value.
	count := 0
	for _, g := range groups {
		var expected []string
		for _, mem := range d.Members {
			if mem.Value == g.Value {
				expected = append(expected, mem.Name)
			}
		}
		assert.Equal(t, expected, g.Members, "group %d", g.Value)
		count += len(g.Members)
	}
	assert.Equal(t, len(d.Members), count)
}

func TestDetectDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		groups []analyzer.ValueGroup
		want   []analyzer.DuplicateFinding
	}{
		{
			name:   "no groups",
			groups: nil,
			want:   nil,
		},
		{
			name: "all unique",
			groups: []analyzer.ValueGroup{
				{Value: 0, Members: []string{"A"}},
				{Value: 1, Members: []string{"B"}},
			},
			want: nil,
		},
		{
			name: "keeps input order",
			groups: []analyzer.ValueGroup{
				{Value: 9, Members: []string{"X", "Y"}},
				{Value: 1, Members: []string{"B"}},
				{Value: 2, Members: []string{"C", "D", "E"}},
			},
			want: []analyzer.DuplicateFinding{
				{Value: 9, Members: []string{"X", "Y"}},
				{Value: 2, Members: []string{"C", "D", "E"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.DetectDuplicates(tt.groups)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DetectDuplicates() mismatch (-want +got):\n%s", diff)
			}
			for _, f := range got {
				assert.GreaterOrEqual(t, len(f.Members), 2)
			}
		})
	}
}

func TestDetectDuplicates_DoesNotAliasGroups(t *testing.T) {
	groups := []analyzer.ValueGroup{{Value: 1, Members: []string{"A", "B"}}}
	got := analyzer.DetectDuplicates(groups)
	got[0].Members[0] = "Z"
	assert.Equal(t, "A", groups[0].Members[0])
}
