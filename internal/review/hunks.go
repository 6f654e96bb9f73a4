package review

import (
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// ValidLines returns the line numbers a finding may point at in a patch.
// For unified diff content these are the lines on the new side of each hunk
// (added and context lines). Content without hunk headers is treated as a
// plain file, where every line counts.
func ValidLines(content string) map[int]struct{} {
	lines := strings.Split(content, "\n")
	validLines := make(map[int]struct{})

	if !strings.Contains(content, "@@") {
		for i := range lines {
			validLines[i+1] = struct{}{}
		}
		return validLines
	}

	currentLine := -1
	for _, line := range lines {
		if strings.HasPrefix(line, "@@") {
			currentLine = -1
			if matches := hunkHeaderRegex.FindStringSubmatch(line); len(matches) >= 2 {
				if start, err := strconv.Atoi(matches[1]); err == nil {
					currentLine = start
				}
			}
			continue
		}

		if currentLine == -1 {
			continue
		}

		// '-' lines only exist on the old side and do not advance the counter.
		switch {
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, " "):
			validLines[currentLine] = struct{}{}
			currentLine++
		case strings.HasPrefix(line, "-"), line == "":
			continue
		}
	}

	return validLines
}
