package core

import (
	"fmt"
	"strings"
)

// Patch is one file's changed content submitted for review.
type Patch struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ReviewRequest is the decoded body of an analyze request.
type ReviewRequest struct {
	Patches      []Patch `json:"patches"`
	Prompt       string  `json:"prompt,omitempty"`
	SystemPrompt string  `json:"systemPrompt,omitempty"`
	MaxTokens    *int64  `json:"maxTokens,omitempty"`
}

// ReviewResult is the response envelope returned to the caller.
type ReviewResult struct {
	Success  bool      `json:"success"`
	Response any       `json:"response,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
	Error    string    `json:"error,omitempty"`
	Stack    string    `json:"stack,omitempty"`
}

// LineEntry is one line of model output in the "lines" response mode.
type LineEntry struct {
	LineNumber int    `json:"lineNumber"`
	Content    string `json:"content"`
}

// Finding is one parsed entry of the review data block.
type Finding struct {
	Location string `json:"location"`
	Content  string `json:"content"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	InDiff   bool   `json:"inDiff"`
}

// Profile selects which prompt layout and system prompt a review uses.
type Profile string

const (
	ProfileGeneral       Profile = "general"
	ProfileAccessibility Profile = "accessibility"
)

// ResponseMode controls how the model text is shaped before it is returned.
type ResponseMode string

const (
	// ResponseRaw returns the model text verbatim.
	ResponseRaw ResponseMode = "raw"
	// ResponseLines splits the model text into numbered lines.
	ResponseLines ResponseMode = "lines"
	// ResponseFindings returns the raw text plus the parsed review data block.
	ResponseFindings ResponseMode = "findings"
)

// ParseResponseMode converts a configuration string into a ResponseMode.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch mode := ResponseMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ResponseRaw, nil
	case ResponseRaw, ResponseLines, ResponseFindings:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown response mode %q (expected raw, lines or findings)", s)
	}
}
