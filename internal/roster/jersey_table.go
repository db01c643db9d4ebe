package roster

// JerseyEntry ties one issued number to the name spellings it was recorded under.
type JerseyEntry struct {
	Number int
	Names  []string
}

// JerseyTable maps a normalized name to candidate jersey numbers.
// It is built once and never mutated afterwards.
type JerseyTable struct {
	options map[string][]int
	// groups links spellings recorded on the same entry to one root name.
	groups map[string]string
}

var defaultJerseyTable = NewJerseyTable(jerseyHistory)

// DefaultJerseyTable returns the table built from the bundled roster history.
func DefaultJerseyTable() *JerseyTable {
	return defaultJerseyTable
}

// NewJerseyTable indexes entries by normalized name. Numbers keep the order in
// which they first appear for a name, and each number is listed once.
// Spellings that share an entry belong to one person.
func NewJerseyTable(entries []JerseyEntry) *JerseyTable {
	options := make(map[string][]int)
	parent := make(map[string]string)
	var find func(string) string
	find = func(k string) string {
		p, ok := parent[k]
		if !ok || p == k {
			return k
		}
		root := find(p)
		parent[k] = root
		return root
	}

	for _, entry := range entries {
		first := ""
		for _, variant := range entry.Names {
			key := NormalizeName(variant)
			if key == "" {
				continue
			}
			if _, ok := parent[key]; !ok {
				parent[key] = key
			}
			if first == "" {
				first = key
			} else if a, b := find(first), find(key); a != b {
				parent[b] = a
			}
			if containsInt(options[key], entry.Number) {
				continue
			}
			options[key] = append(options[key], entry.Number)
		}
	}

	groups := make(map[string]string, len(parent))
	for key := range parent {
		groups[key] = find(key)
	}
	return &JerseyTable{options: options, groups: groups}
}

// Candidates returns a copy of the numbers on record for a name, or nil.
func (t *JerseyTable) Candidates(name string) []int {
	if t == nil {
		return nil
	}
	nums, ok := t.options[NormalizeName(name)]
	if !ok {
		return nil
	}
	return append([]int(nil), nums...)
}

// Len returns the number of distinct normalized names in the table.
func (t *JerseyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.options)
}

func (t *JerseyTable) candidatesForKey(key string) []int {
	if t == nil {
		return nil
	}
	return t.options[key]
}

// groupKey returns the shared key for every spelling of the same person.
// Names not on record are their own group.
func (t *JerseyTable) groupKey(key string) string {
	if t == nil {
		return key
	}
	if root, ok := t.groups[key]; ok {
		return root
	}
	return key
}

func containsInt(list []int, v int) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}
