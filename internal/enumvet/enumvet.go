// Package enumvet exposes the enum checks as a go/analysis Analyzer so they
// can run under go vet or any multichecker.
package enumvet

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
	"github.com/olehluchkiv/enumcheck/internal/loader"
)

const doc = `report enum constants sharing a value

An enum is a named integer type with package-level constants of that type.
Each group of constants bound to the same value is reported at its second
member. With -sequence, adjacent constants whose values do not step by one
are reported as well.`

// Analyzer is the default enumcheck analyzer.
var Analyzer = NewAnalyzer()

type checker struct {
	sequence  bool
	ascending bool
}

// NewAnalyzer returns an Analyzer with its own flag state.
func NewAnalyzer() *analysis.Analyzer {
	c := &checker{}
	a := &analysis.Analyzer{
		Name: "enumcheck",
		Doc:  doc,
		Run:  c.run,
	}
	a.Flags.BoolVar(&c.sequence, "sequence", false, "also report inconsistent value sequences")
	a.Flags.BoolVar(&c.ascending, "ascending", false, "expect values to increase by one instead of decrease")
	return a
}

func (c *checker) run(pass *analysis.Pass) (any, error) {
	defs := loader.FromPackage(pass.Pkg)
	if len(defs) == 0 {
		return nil, nil
	}

	r := &passReporter{pass: pass, sequence: c.sequence}
	for _, d := range defs {
		for _, m := range d.Members {
			if m.Err != nil {
				pass.Reportf(r.pos(m.Name), "enum %s: constant %s: %v", d.Name, m.Name, m.Err)
			}
		}
	}

	rule := analyzer.StepDescending
	if c.ascending {
		rule = analyzer.StepAscending
	}
	// Malformed members were reported above; only a failing reporter is left.
	if err := analyzer.New(analyzer.WithStepRule(rule)).Analyze(defs, r); err != nil {
		var re *analyzer.ReporterError
		if errors.As(err, &re) {
			return nil, fmt.Errorf("reporting diagnostics: %w", re)
		}
	}
	return nil, nil
}

// passReporter turns findings into diagnostics on the constants involved.
type passReporter struct {
	pass     *analysis.Pass
	sequence bool
	enum     string
}

func (r *passReporter) pos(name string) token.Pos {
	if obj := r.pass.Pkg.Scope().Lookup(name); obj != nil {
		return obj.Pos()
	}
	return token.NoPos
}

func (r *passReporter) OnEnumVisited(name string) {
	r.enum = name[strings.LastIndex(name, ".")+1:]
}

func (r *passReporter) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	for _, f := range findings {
		r.pass.Reportf(r.pos(f.Members[1]), "enum %s: value %d is shared by %s",
			r.enum, f.Value, strings.Join(f.Members, ", "))
	}
}

func (r *passReporter) OnSequenceInconsistency(f analyzer.SequenceFinding) {
	if !r.sequence {
		return
	}
	r.pass.Reportf(r.pos(f.CurrentName), "enum %s: inconsistent sequence %s (%d) -> %s (%d)",
		r.enum, f.PreviousName, f.PreviousValue, f.CurrentName, f.CurrentValue)
}
