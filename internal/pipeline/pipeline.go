// Package pipeline wires a metadata source, the filters and the analyzer
// into a single pass.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
	"github.com/olehluchkiv/enumcheck/internal/loader"
	"github.com/olehluchkiv/enumcheck/internal/report"
	"github.com/olehluchkiv/enumcheck/internal/schema"
)

// Config holds parameters for one analysis pass.
type Config struct {
	Dir      string // module root to load; ignored when Schema is set
	Schema   string // TOML schema file to read instead of Go packages
	Loader   loader.Options
	StepRule analyzer.StepRule
	Parallel int // > 1 evaluates enums concurrently
}

// Summary describes a completed pass.
type Summary struct {
	report.Stats
	// Isolated aggregates per-enum failures (malformed members, reporter
	// panics). The pass still completed when it is non-nil.
	Isolated error
}

// Run executes the acquire → filter → analyze pipeline, streaming findings
// to r. The error is non-nil only if the definitions could not be acquired.
func Run(ctx context.Context, cfg Config, r analyzer.Reporter, logger *slog.Logger) (Summary, error) {
	logger = logger.With("component", "pipeline")

	defs, err := acquire(ctx, cfg, logger)
	if err != nil {
		return Summary{}, err
	}

	defs = loader.Filter(defs, cfg.Loader)
	logger.Info("analyzing enums", "enums", len(defs), "rule", cfg.StepRule.String())

	var s Summary
	if r == nil {
		r = analyzer.NopReporter{}
	}
	sink := report.Multi(&s.Stats, r)

	a := analyzer.New(analyzer.WithLogger(logger), analyzer.WithStepRule(cfg.StepRule))
	if cfg.Parallel > 1 {
		s.Isolated = a.AnalyzeParallel(ctx, defs, sink, cfg.Parallel)
	} else {
		s.Isolated = a.Analyze(defs, sink)
	}

	logger.Info("analysis complete",
		"enums", s.Enums,
		"duplicate_groups", s.DuplicateGroups,
		"sequence_findings", s.SequenceFindings)
	return s, nil
}

func acquire(ctx context.Context, cfg Config, logger *slog.Logger) ([]analyzer.Definition, error) {
	if cfg.Schema != "" {
		logger.Info("reading schema", "file", cfg.Schema)
		defs, err := schema.LoadFile(cfg.Schema)
		if err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		return defs, nil
	}

	logger.Info("loading packages", "dir", cfg.Dir)
	defs, err := loader.Load(ctx, cfg.Dir, cfg.Loader, logger)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return defs, nil
}
