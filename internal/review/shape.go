package review

import (
	"strings"

	"github.com/sevigo/a11y-warden/internal/core"
)

// Shape converts the model text into a success envelope according to mode.
// Unknown modes fall back to raw.
func Shape(mode core.ResponseMode, text string, patches []core.Patch) *core.ReviewResult {
	switch mode {
	case core.ResponseLines:
		return &core.ReviewResult{Success: true, Response: splitLines(text)}
	case core.ResponseFindings:
		return &core.ReviewResult{
			Success:  true,
			Response: text,
			Findings: ParseFindings(text, patches),
		}
	default:
		return &core.ReviewResult{Success: true, Response: text}
	}
}

func splitLines(text string) []core.LineEntry {
	lines := strings.Split(text, "\n")
	entries := make([]core.LineEntry, len(lines))
	for i, line := range lines {
		entries[i] = core.LineEntry{LineNumber: i + 1, Content: line}
	}
	return entries
}
