package analyzer

import "fmt"

// StepRule decides whether two adjacent member values are consistent.
type StepRule int

const (
	// StepDescending expects previous == current+1. This is the rule the tool
	// has always applied and stays the default.
	StepDescending StepRule = iota
	// StepAscending expects previous+1 == current.
	StepAscending
)

func (r StepRule) String() string {
	switch r {
	case StepDescending:
		return "descending"
	case StepAscending:
		return "ascending"
	default:
		return fmt.Sprintf("StepRule(%d)", int(r))
	}
}

// ParseStepRule maps a configuration value to a StepRule. The empty string
// selects StepDescending.
func ParseStepRule(s string) (StepRule, error) {
	switch s {
	case "", "descending":
		return StepDescending, nil
	case "ascending":
		return StepAscending, nil
	default:
		return StepDescending, fmt.Errorf("unknown sequence rule: %s (valid: descending, ascending)", s)
	}
}

// consistent compares in int64 so values at the int32 bounds never wrap.
func (r StepRule) consistent(prev, cur int32) bool {
	if r == StepAscending {
		return int64(prev)+1 == int64(cur)
	}
	return int64(prev) == int64(cur)+1
}

// CheckSequence walks def's members in declaration order and returns one
// finding per adjacent pair that breaks rule.
func CheckSequence(def Definition, rule StepRule) []SequenceFinding {
	var out []SequenceFinding
	for i := 1; i < len(def.Members); i++ {
		prev, cur := def.Members[i-1], def.Members[i]
		if rule.consistent(prev.Value, cur.Value) {
			continue
		}
		out = append(out, SequenceFinding{
			PreviousName:  prev.Name,
			PreviousValue: prev.Value,
			CurrentName:   cur.Name,
			CurrentValue:  cur.Value,
		})
	}
	return out
}
