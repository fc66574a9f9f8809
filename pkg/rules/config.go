package rules

import (
	"strings"

	"github.com/arthur-debert/dirsort/pkg/errors"
)

// ParseToken splits an `EXT=SUBDIR` token into a normalized key and its
// subdirectory. The token must contain exactly one '='. An empty
// subdirectory is kept and disables the key (see Table.Resolve).
func ParseToken(token string) (string, string, error) {
	parts := strings.Split(token, "=")
	if len(parts) != 2 {
		return "", "", errors.Newf(errors.ErrConfigParse,
			"invalid rule format: '%s'. Use 'ext=subdir'.", token).
			WithDetail("rule", token)
	}

	return normalizeKey(parts[0]), strings.TrimSpace(parts[1]), nil
}

// ParseTokens builds a table from rule tokens. It stops at the first
// malformed token. Later tokens override earlier ones for the same key.
func ParseTokens(tokens []string) (Table, error) {
	t := Table{rules: make(map[string]string, len(tokens))}
	for _, token := range tokens {
		key, subdir, err := ParseToken(token)
		if err != nil {
			return Table{}, err
		}
		t.rules[key] = subdir
	}
	return t, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
