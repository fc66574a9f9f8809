package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with the registered styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser with the summary styles registered
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	p.AddStyle("title", TitleStyle)
	p.AddStyle("muted", MutedStyle)
	p.AddStyle("moved", MovedStyle)
	p.AddStyle("failed", FailedStyle)
	p.AddStyle("unmatched", UnmatchedStyle)
	p.AddStyle("path", PathStyle)
	p.AddStyle("count", CountStyle)
	p.AddStyle("bold", lipgloss.NewStyle().Bold(true))
	return p
}

// AddStyle registers or replaces the style for tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render replaces every known tag pair with its styled content. Nested
// tags are resolved innermost first.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for tag, pattern := range p.patterns {
			style := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := pattern.FindStringSubmatch(match)
				if len(sub) != 2 {
					return match
				}
				return style.Render(sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// RenderTemplate substitutes {{key}} placeholders, then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
