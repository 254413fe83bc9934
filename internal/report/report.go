// Package report provides Reporter implementations for the enum analyzer.
package report

import (
	"strings"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

// Multi fans every notification out to rs in order.
func Multi(rs ...analyzer.Reporter) analyzer.Reporter {
	return multi(rs)
}

type multi []analyzer.Reporter

func (m multi) OnEnumVisited(name string) {
	for _, r := range m {
		r.OnEnumVisited(name)
	}
}

func (m multi) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	for _, r := range m {
		r.OnDuplicatesFound(findings)
	}
}

func (m multi) OnSequenceInconsistency(finding analyzer.SequenceFinding) {
	for _, r := range m {
		r.OnSequenceInconsistency(finding)
	}
}

// Stats counts notifications.
type Stats struct {
	Enums            int
	DuplicateGroups  int
	SequenceFindings int
}

func (s *Stats) OnEnumVisited(string) { s.Enums++ }

func (s *Stats) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	s.DuplicateGroups += len(findings)
}

func (s *Stats) OnSequenceInconsistency(analyzer.SequenceFinding) { s.SequenceFindings++ }

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
