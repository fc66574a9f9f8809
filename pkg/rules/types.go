package rules

import "sort"

// Wildcard is the rule key applied when no extension-specific rule matches
const Wildcard = "*"

// Table maps normalized extensions (or Wildcard) to target subdirectories.
// A Table is not modified after it is built.
type Table struct {
	rules map[string]string
}

// New builds a table from a plain map, lowercasing every key
func New(m map[string]string) Table {
	t := Table{rules: make(map[string]string, len(m))}
	for k, v := range m {
		t.rules[normalizeKey(k)] = v
	}
	return t
}

// Len returns the number of rules in the table
func (t Table) Len() int {
	return len(t.rules)
}

// Keys returns the rule keys in sorted order
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.rules))
	for k := range t.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the subdirectory for an exact key
func (t Table) Get(key string) (string, bool) {
	subdir, ok := t.rules[normalizeKey(key)]
	return subdir, ok
}

// Merge returns a new table holding the rules of t overridden by other
func (t Table) Merge(other Table) Table {
	merged := Table{rules: make(map[string]string, len(t.rules)+len(other.rules))}
	for k, v := range t.rules {
		merged.rules[k] = v
	}
	for k, v := range other.rules {
		merged.rules[k] = v
	}
	return merged
}

// Map returns a copy of the rules as a plain map
func (t Table) Map() map[string]string {
	m := make(map[string]string, len(t.rules))
	for k, v := range t.rules {
		m[k] = v
	}
	return m
}
