package roster

// AssignNumbers picks jersey numbers for unnumbered players from the table.
// Numbers already worn by any player recorded as the same person (any
// spelling on a shared history entry) are skipped, and each assignment is
// reserved before the next player is considered.
// Players with no free candidate are left out. The input is not modified.
func AssignNumbers(players []Player, table *JerseyTable) map[string]int {
	taken := make(map[string]map[int]struct{})
	for _, p := range players {
		name := NormalizeName(p.Name)
		if name == "" {
			continue
		}
		group := table.groupKey(name)
		if taken[group] == nil {
			taken[group] = make(map[int]struct{})
		}
		if p.Number != nil {
			taken[group][*p.Number] = struct{}{}
		}
	}

	assignments := make(map[string]int)
	for _, p := range players {
		if p.Number != nil {
			continue
		}
		name := NormalizeName(p.Name)
		if name == "" {
			continue
		}
		options := table.candidatesForKey(name)
		if len(options) == 0 {
			continue
		}
		inUse := taken[table.groupKey(name)]
		for _, n := range options {
			if _, ok := inUse[n]; ok {
				continue
			}
			assignments[p.ID] = n
			inUse[n] = struct{}{}
			break
		}
	}
	return assignments
}
