package config

import (
	"strings"

	"github.com/arthur-debert/dirsort/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Marshal renders the configuration as "toml" or "yaml"
func (c *Config) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml", "":
		data, err := gotoml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode toml")
		}
		return data, nil
	case "yaml", "yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
		return data, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q (want toml or yaml)", format)
	}
}

// GenerateConfigContent returns the defaults file with every value
// commented out, ready to be edited
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [organize]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
