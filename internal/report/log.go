package report

import (
	"log/slog"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

// Log emits findings as structured log records.
type Log struct {
	logger  *slog.Logger
	current string
}

// NewLog returns a Log reporter writing through logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "report")}
}

func (l *Log) OnEnumVisited(name string) {
	l.current = name
	l.logger.Debug("found enum", "enum", name)
}

func (l *Log) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	for _, f := range findings {
		l.logger.Warn("duplicate enum values",
			"enum", l.current,
			"value", f.Value,
			"members", f.Members)
	}
}

func (l *Log) OnSequenceInconsistency(f analyzer.SequenceFinding) {
	l.logger.Info("inconsistent enum sequence",
		"enum", l.current,
		"previous", f.PreviousName,
		"previous_value", f.PreviousValue,
		"current", f.CurrentName,
		"current_value", f.CurrentValue)
}
