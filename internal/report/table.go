package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
	"github.com/olekukonko/tablewriter"
)

// Table collects findings and renders them as one table.
type Table struct {
	ShowSequence bool

	current string
	rows    [][]string
}

func (t *Table) OnEnumVisited(name string) { t.current = name }

func (t *Table) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	for _, f := range findings {
		t.rows = append(t.rows, []string{
			t.current, "duplicate", strconv.Itoa(int(f.Value)), joinNames(f.Members),
		})
	}
}

func (t *Table) OnSequenceInconsistency(f analyzer.SequenceFinding) {
	if !t.ShowSequence {
		return
	}
	t.rows = append(t.rows, []string{
		t.current,
		"sequence",
		fmt.Sprintf("%d -> %d", f.PreviousValue, f.CurrentValue),
		f.PreviousName + " -> " + f.CurrentName,
	})
}

// Len returns the number of collected rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the collected findings to w.
func (t *Table) Render(w io.Writer) {
	if len(t.rows) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"enum", "finding", "value", "members"})
	table.SetAutoWrapText(false)
	table.AppendBulk(t.rows)
	table.Render()
}
