package style

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/dirsort/pkg/organizer"
)

const summaryCounts = "  [moved]moved[/moved] [count]{{moved}}[/count]  " +
	"[unmatched]unmatched[/unmatched] [count]{{unmatched}}[/count]  " +
	"[failed]failed[/failed] [count]{{failed}}[/count]"

// RenderSummary formats a report for the terminal: the directory, the
// per-status counts, then one line per failed file
func RenderSummary(report *organizer.Report) string {
	if report == nil {
		return ""
	}

	var b strings.Builder
	// directory and file names are user data, kept out of the markup
	b.WriteString(TitleStyle.Render("Organized") + " " + PathStyle.Render(report.Directory))
	b.WriteString("\n")
	b.WriteString(RenderTemplate(summaryCounts, map[string]string{
		"moved":     strconv.Itoa(report.Count(organizer.StatusMoved)),
		"unmatched": strconv.Itoa(report.Count(organizer.StatusUnmatched)),
		"failed":    strconv.Itoa(report.Count(organizer.StatusFailed)),
	}))

	for _, res := range report.Filter(organizer.StatusFailed) {
		reason := "unknown error"
		if res.Err != nil {
			reason = res.Err.Error()
		}
		b.WriteString("\n  ")
		b.WriteString(FailedStyle.Render("✗") + " " + res.Name + MutedStyle.Render(":") + " " + reason)
	}
	return b.String()
}
