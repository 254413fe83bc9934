package analyzer

// Group partitions the members of def by value. Groups are returned in the
// order their value was first seen; names inside a group keep declaration order.
func Group(def Definition) []ValueGroup {
	if len(def.Members) == 0 {
		return nil
	}

	index := make(map[int32]int, len(def.Members))
	var groups []ValueGroup
	for _, m := range def.Members {
		i, ok := index[m.Value]
		if !ok {
			i = len(groups)
			index[m.Value] = i
			groups = append(groups, ValueGroup{Value: m.Value})
		}
		groups[i].Members = append(groups[i].Members, m.Name)
	}
	return groups
}

// DetectDuplicates keeps the groups holding more than one member, in input
// order. It returns nil when no group qualifies.
func DetectDuplicates(groups []ValueGroup) []DuplicateFinding {
	var out []DuplicateFinding
	for _, g := range groups {
		if len(g.Members) < 2 {
			continue
		}
		names := make([]string, len(g.Members))
		copy(names, g.Members)
		out = append(out, DuplicateFinding{Value: g.Value, Members: names})
	}
	return out
}
