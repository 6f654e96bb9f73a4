package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/a11y-warden/internal/core"
)

var (
	serverURL string
	maxTokens int64
	rawOutput bool
	timeout   time.Duration
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var reviewCmd = &cobra.Command{
	Use:   "review [files...]",
	Short: "Send changes to an A11y Warden relay and render the review",
	Long: `Send changes to a running A11y Warden relay and render the review as
markdown in the terminal.

Examples:
  a11y-cli review src/Button.jsx
  a11y-cli review --repo . --server http://localhost:3000
  a11y-cli review --general --question "Any obvious bugs?" main.go`,
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:3000",
		"Base URL of the relay; the request waits for the completion until --timeout or Ctrl-C")
	reviewCmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up on the relay after this long (0 waits indefinitely)")
	reviewCmd.Flags().Int64Var(&maxTokens, "max-tokens", 0, "Output token budget (0 uses the relay default)")
	reviewCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the response without markdown rendering")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	patches, err := collectPatches(ctx, repoPath, args)
	if err != nil {
		return err
	}

	titleColor.Println("A11y Warden - Review")
	dimColor.Printf("   Files: %d, server: %s\n\n", len(patches), serverURL)

	req := &core.ReviewRequest{Patches: patches, Prompt: question}
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := postReview(ctx, http.DefaultClient, serverURL, selectedProfile(), req)
	if err != nil {
		return err
	}
	dimColor.Printf("   Done in %s\n", time.Since(start).Round(time.Millisecond))

	return printResult(cmd.OutOrStdout(), result)
}

func endpoint(base string, profile core.Profile) string {
	base = strings.TrimSuffix(base, "/")
	if profile == core.ProfileAccessibility {
		return base + "/analyze-patches/accessibility"
	}
	return base + "/analyze-patches"
}

// postReview sends req to the relay. The call is bound to ctx only; the
// client is expected to carry no timeout of its own since a review can take
// minutes. A well-formed failure envelope is returned as an error carrying
// the relay's message.
func postReview(ctx context.Context, client *http.Client, base string, profile core.Profile, req *core.ReviewRequest) (*core.ReviewResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(base, profile), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w\n\nTip: Check that the relay is running at %s", err, base)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	var result core.ReviewResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unexpected relay response (HTTP %d): %s", resp.StatusCode, truncate(string(data), 200))
	}
	if !result.Success {
		return nil, fmt.Errorf("relay returned HTTP %d: %s", resp.StatusCode, result.Error)
	}
	return &result, nil
}

func printResult(w io.Writer, result *core.ReviewResult) error {
	text := responseText(result.Response)

	fmt.Fprintln(w)
	if rawOutput {
		fmt.Fprintln(w, text)
	} else {
		rendered, err := renderMarkdown(text)
		if err != nil {
			warnColor.Fprintf(w, "markdown rendering failed, printing raw text: %v\n", err)
			rendered = text
		}
		fmt.Fprint(w, rendered)
	}

	printFindings(w, result.Findings)
	return nil
}

// responseText flattens the relay's response field for every response mode.
func responseText(resp any) string {
	switch v := resp.(type) {
	case string:
		return v
	case []any:
		lines := make([]string, 0, len(v))
		for _, entry := range v {
			if m, ok := entry.(map[string]any); ok {
				if s, ok := m["content"].(string); ok {
					lines = append(lines, s)
				}
			}
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

func printFindings(w io.Writer, findings []core.Finding) {
	if len(findings) == 0 {
		return
	}

	separator := strings.Repeat("─", 60)
	warnColor.Fprintln(w, separator)
	warnColor.Fprintf(w, "FINDINGS (%d)\n", len(findings))
	warnColor.Fprintln(w, separator)

	for _, f := range findings {
		fmt.Fprintln(w)
		boldColor.Fprintf(w, "%s", f.Location)
		if f.InDiff {
			successColor.Fprintln(w, "  [in diff]")
		} else {
			dimColor.Fprintln(w, "  [outside diff]")
		}
		fmt.Fprintln(w, f.Content)
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
