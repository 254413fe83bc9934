package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs duplicate and sequence checks over enum definitions and
// dispatches the findings to a Reporter.
type Analyzer struct {
	logger *slog.Logger
	rule   StepRule
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for skipped members and reporter failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStepRule selects the rule applied by the sequence check.
func WithStepRule(rule StepRule) Option {
	return func(a *Analyzer) { a.rule = rule }
}

// New returns an Analyzer using StepDescending and a discarding logger
// unless configured otherwise.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: slog.New(slog.DiscardHandler),
		rule:   StepDescending,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "analyzer")
	return a
}

// outcome is the complete analysis of one definition, ready for dispatch.
type outcome struct {
	name       string
	duplicates []DuplicateFinding
	sequence   []SequenceFinding
	malformed  []error
}

func (a *Analyzer) evaluate(def Definition) outcome {
	o := outcome{name: def.QualifiedName()}

	resolved := Definition{Name: def.Name, PkgPath: def.PkgPath}
	for _, m := range def.Members {
		if m.Err != nil {
			o.malformed = append(o.malformed, &MalformedMemberError{Enum: o.name, Member: m.Name, Err: m.Err})
			continue
		}
		resolved.Members = append(resolved.Members, m)
	}

	o.duplicates = DetectDuplicates(Group(resolved))
	o.sequence = CheckSequence(resolved, a.rule)
	return o
}

// dispatch delivers o to r. A panicking reporter ends dispatch for this
// definition only.
func (a *Analyzer) dispatch(o outcome, r Reporter) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &ReporterError{Enum: o.name, Panic: p}
		}
	}()

	r.OnEnumVisited(o.name)
	if len(o.duplicates) > 0 {
		r.OnDuplicatesFound(o.duplicates)
	}
	for _, f := range o.sequence {
		r.OnSequenceInconsistency(f)
	}
	return nil
}

func (a *Analyzer) record(result *multierror.Error, o outcome, dispatchErr error) *multierror.Error {
	for _, err := range o.malformed {
		a.logger.Warn("skipping malformed enum member", "enum", o.name, "error", err)
		result = multierror.Append(result, err)
	}
	if dispatchErr != nil {
		a.logger.Error("reporter failed", "enum", o.name, "error", dispatchErr)
		result = multierror.Append(result, dispatchErr)
	}
	a.logger.Debug("enum analyzed",
		"enum", o.name,
		"duplicates", len(o.duplicates),
		"sequence_findings", len(o.sequence))
	return result
}

// Analyze processes defs in order. Every definition is always processed:
// malformed members and reporter panics are isolated to their definition and
// returned together as one aggregated error once the pass is complete.
func (a *Analyzer) Analyze(defs []Definition, r Reporter) error {
	if r == nil {
		r = NopReporter{}
	}

	var result *multierror.Error
	for _, def := range defs {
		o := a.evaluate(def)
		result = a.record(result, o, a.dispatch(o, r))
	}
	return result.ErrorOrNil()
}

// AnalyzeParallel evaluates definitions on up to workers goroutines and
// dispatches the outcomes from the calling goroutine in source order, each
// as soon as it and all of its predecessors are ready. workers < 1 means
// GOMAXPROCS.
func (a *Analyzer) AnalyzeParallel(ctx context.Context, defs []Definition, r Reporter, workers int) error {
	if r == nil {
		r = NopReporter{}
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]outcome, len(defs))
	ready := make([]chan struct{}, len(defs))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	scheduled := make(chan struct{})
	go func() {
		defer close(scheduled)
		for i := range defs {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				outcomes[i] = a.evaluate(defs[i])
				close(ready[i])
				return nil
			})
		}
	}()

	var result *multierror.Error
	var canceled error
dispatch:
	for i := range defs {
		select {
		case <-ready[i]:
		case <-gctx.Done():
			canceled = ctx.Err()
			break dispatch
		}
		result = a.record(result, outcomes[i], a.dispatch(outcomes[i], r))
	}

	<-scheduled
	if err := g.Wait(); err != nil && canceled == nil {
		canceled = err
	}
	if canceled != nil {
		a.logger.Warn("parallel analysis canceled", "error", canceled)
		result = multierror.Append(result, fmt.Errorf("analysis canceled: %w", canceled))
	}
	return result.ErrorOrNil()
}
