package analyzer

// Reporter receives findings as they are discovered. For every enum,
// OnEnumVisited is called first and exactly once; OnDuplicatesFound at most
// once and never with an empty slice; OnSequenceInconsistency once per
// violating pair in declaration order.
type Reporter interface {
	OnEnumVisited(name string)
	OnDuplicatesFound(findings []DuplicateFinding)
	OnSequenceInconsistency(finding SequenceFinding)
}

// NopReporter discards every notification.
type NopReporter struct{}

func (NopReporter) OnEnumVisited(string)                    {}
func (NopReporter) OnDuplicatesFound([]DuplicateFinding)    {}
func (NopReporter) OnSequenceInconsistency(SequenceFinding) {}
