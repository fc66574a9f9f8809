package rules

import "strings"

// Extension returns the lowercased extension of a file name, including the
// dot. Leading dots are skipped, so hidden files without a further dot have
// no extension.
func Extension(name string) string {
	stem := strings.TrimLeft(name, ".")
	idx := strings.LastIndex(stem, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(stem[idx:])
}

// Resolve returns the target subdirectory for a file name. An exact
// extension match takes precedence over the wildcard rule. A rule with an
// empty subdirectory matches but resolves to nothing, so the file is left
// in place without falling back to the wildcard.
func (t Table) Resolve(name string) (string, bool) {
	if subdir, ok := t.rules[Extension(name)]; ok {
		return subdir, subdir != ""
	}
	if subdir, ok := t.rules[Wildcard]; ok {
		return subdir, subdir != ""
	}
	return "", false
}
