package review

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sevigo/a11y-warden/internal/core"
)

const (
	dataOpenTag  = "<a11yreviewdata>"
	dataCloseTag = "</a11yreviewdata>"
)

type rawFinding struct {
	Location string `json:"location"`
	Content  string `json:"content"`
}

// ParseFindings extracts the review data block from the model text.
// Models tend to copy the JS-object style of the prompt's sample block (bare keys and a
// trailing comma), so a strict parse is followed by a lenient one. A missing
// or unparsable block yields an empty slice.
func ParseFindings(text string, patches []core.Patch) []core.Finding {
	block, ok := extractDataBlock(text)
	if !ok {
		return []core.Finding{}
	}

	var raw []rawFinding
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		if err := json.Unmarshal([]byte(relaxJSON(block)), &raw); err != nil {
			return []core.Finding{}
		}
	}

	lineMaps := make(map[string]map[int]struct{}, len(patches))
	for _, p := range patches {
		lineMaps[normalizePath(p.Filename)] = ValidLines(p.Content)
	}

	findings := make([]core.Finding, 0, len(raw))
	for _, r := range raw {
		file, line := splitLocation(r.Location)
		f := core.Finding{
			Location: r.Location,
			Content:  r.Content,
			File:     file,
			Line:     line,
		}
		if lines, ok := lineMaps[normalizePath(file)]; ok {
			_, f.InDiff = lines[line]
		}
		findings = append(findings, f)
	}
	return findings
}

// relaxJSON rewrites a JS object literal into JSON: bare keys following `{`
// or `,` are quoted and commas before `]` or `}` are dropped. Quoted strings
// are copied byte for byte.
func relaxJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	var prev byte // last significant byte outside a string
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			end := stringEnd(s, i)
			b.WriteString(s[i:end])
			i = end - 1
			prev = '"'
		case c == ',':
			if next := nextSignificant(s, i+1); next == ']' || next == '}' {
				continue
			}
			b.WriteByte(c)
			prev = c
		case isIdentStart(c) && (prev == '{' || prev == ','):
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			if nextSignificant(s, j) == ':' {
				b.WriteByte('"')
				b.WriteString(s[i:j])
				b.WriteByte('"')
			} else {
				b.WriteString(s[i:j])
			}
			i = j - 1
			prev = s[i]
		default:
			b.WriteByte(c)
			if !isSpace(c) {
				prev = c
			}
		}
	}
	return b.String()
}

// stringEnd returns the index just past the string literal opening at start.
func stringEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func nextSignificant(s string, from int) byte {
	for i := from; i < len(s); i++ {
		if !isSpace(s[i]) {
			return s[i]
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// extractDataBlock returns the text between the last pair of data tags.
func extractDataBlock(text string) (string, bool) {
	start := strings.LastIndex(text, dataOpenTag)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(dataOpenTag):]
	end := strings.Index(rest, dataCloseTag)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(stripCodeFence(rest[:end])), true
}

// stripCodeFence removes a ```json ... ``` wrapper some models add inside the tags.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return inner
}

// splitLocation splits "path/to/file.jsx:12" at the last colon.
// A location without a numeric line keeps the whole string as the file.
func splitLocation(location string) (string, int) {
	location = strings.TrimSpace(location)
	idx := strings.LastIndex(location, ":")
	if idx < 0 {
		return location, 0
	}
	line, err := strconv.Atoi(strings.TrimSpace(location[idx+1:]))
	if err != nil {
		return location, 0
	}
	return location[:idx], line
}

func normalizePath(p string) string {
	return strings.TrimPrefix(strings.TrimSpace(p), "./")
}
