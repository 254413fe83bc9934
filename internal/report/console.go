package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

const bannerRule = "**********"

// ConsoleOptions controls Console output.
type ConsoleOptions struct {
	ShowSequence bool // print sequence findings; by default they are dropped
	NoColor      bool
}

// Console writes human-readable findings to a terminal.
type Console struct {
	w        io.Writer
	opts     ConsoleOptions
	warn     *color.Color
	sequence *color.Color
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer, opts ConsoleOptions) *Console {
	c := &Console{
		w:        w,
		opts:     opts,
		warn:     color.New(color.FgYellow, color.Bold),
		sequence: color.New(color.FgCyan),
	}
	if opts.NoColor {
		c.warn.DisableColor()
		c.sequence.DisableColor()
	}
	return c
}

func (c *Console) OnEnumVisited(name string) {
	fmt.Fprintf(c.w, "Found enum %s\n", name)
}

func (c *Console) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	fmt.Fprintf(c.w, "\n%s\n", bannerRule)
	c.warn.Fprintln(c.w, "WARNING! Found duplicate enum integers")
	for _, f := range findings {
		fmt.Fprintf(c.w, "VALUE %d KEYS '%s'\n", f.Value, joinNames(f.Members))
	}
	fmt.Fprint(c.w, bannerRule+"\n\n")
}

func (c *Console) OnSequenceInconsistency(f analyzer.SequenceFinding) {
	if !c.opts.ShowSequence {
		return
	}
	c.sequence.Fprintf(c.w, "  SEQUENCE %s (%d) -> %s (%d)\n",
		f.PreviousName, f.PreviousValue, f.CurrentName, f.CurrentValue)
}
