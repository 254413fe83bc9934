package analyzer

import "fmt"

// Definition represents one enumerated type: a name and its members in
// declaration order.
type Definition struct {
	Name    string
	PkgPath string // empty for sources without packages (e.g. schema files)
	Members []Member
}

// QualifiedName returns "pkgpath.Name", or just Name when PkgPath is empty.
func (d Definition) QualifiedName() string {
	if d.PkgPath == "" {
		return d.Name
	}
	return d.PkgPath + "." + d.Name
}

// Member is a symbolic enum member bound to an int32 value.
type Member struct {
	Name  string
	Value int32
	Err   error // non-nil if the value could not be resolved to int32
}

// ValueGroup holds the member names bound to one value, in declaration order.
type ValueGroup struct {
	Value   int32
	Members []string
}

// DuplicateFinding reports two or more members sharing a value.
type DuplicateFinding struct {
	Value   int32
	Members []string
}

// SequenceFinding reports an adjacent pair of members violating the step rule.
type SequenceFinding struct {
	PreviousName  string
	PreviousValue int32
	CurrentName   string
	CurrentValue  int32
}

// MalformedMemberError is recorded when a member's value cannot be resolved.
type MalformedMemberError struct {
	Enum   string
	Member string
	Err    error
}

func (e *MalformedMemberError) Error() string {
	return fmt.Sprintf("enum %s: member %s: %v", e.Enum, e.Member, e.Err)
}

func (e *MalformedMemberError) Unwrap() error { return e.Err }

// ReporterError is recorded when a Reporter panics while handling an enum.
type ReporterError struct {
	Enum  string
	Panic any
}

func (e *ReporterError) Error() string {
	return fmt.Sprintf("enum %s: reporter failed: %v", e.Enum, e.Panic)
}
