package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/a11y-warden/internal/core"
)

// stubAnalyzer records the request it receives and answers with fixed values.
type stubAnalyzer struct {
	got     *core.ReviewRequest
	profile core.Profile
	res     *core.ReviewResult
	err     error
}

func (s *stubAnalyzer) Analyze(_ context.Context, profile core.Profile, req *core.ReviewRequest) (*core.ReviewResult, error) {
	s.got = req
	s.profile = profile
	return s.res, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func serve(t *testing.T, h *ReviewHandler, body string) (*httptest.ResponseRecorder, core.ReviewResult) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze-patches", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var res core.ReviewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), "body: %s", rec.Body.String())
	return rec, res
}

func TestReviewHandler_Success(t *testing.T) {
	analyzer := &stubAnalyzer{res: &core.ReviewResult{Success: true, Response: "looks good"}}
	h := NewReviewHandler(analyzer, core.ProfileAccessibility, ErrorPolicy{}, testLogger())

	rec, res := serve(t, h, `{"patches":[{"filename":"a.jsx","content":"<button disabled>"}],"prompt":"check this","systemPrompt":"s","maxTokens":100}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.Success)
	assert.Equal(t, "looks good", res.Response)
	assert.NotEmpty(t, rec.Header().Get(ReviewIDHeader))
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	require.NotNil(t, analyzer.got)
	assert.Equal(t, core.ProfileAccessibility, analyzer.profile)
	assert.Equal(t, []core.Patch{{Filename: "a.jsx", Content: "<button disabled>"}}, analyzer.got.Patches)
	assert.Equal(t, "check this", analyzer.got.Prompt)
	assert.Equal(t, "s", analyzer.got.SystemPrompt)
	require.NotNil(t, analyzer.got.MaxTokens)
	assert.Equal(t, int64(100), *analyzer.got.MaxTokens)
}

func TestReviewHandler_DecodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "missing patches", body: `{"prompt":"hi"}`, wantMsg: "Patches must be provided as an array"},
		{name: "null patches", body: `{"patches":null}`, wantMsg: "Patches must be provided as an array"},
		{name: "object patches", body: `{"patches":{"filename":"a"}}`, wantMsg: "Patches must be provided as an array"},
		{name: "string patches", body: `{"patches":"diff --git"}`, wantMsg: "Patches must be provided as an array"},
		{name: "wrong element type", body: `{"patches":[{"filename":1}]}`, wantMsg: "invalid patches"},
		{name: "malformed json", body: `{"patches":[`, wantMsg: "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &stubAnalyzer{}
			h := NewReviewHandler(analyzer, core.ProfileGeneral, ErrorPolicy{}, testLogger())

			rec, res := serve(t, h, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.False(t, res.Success)
			assert.Contains(t, res.Error, tt.wantMsg)
			assert.Empty(t, res.Stack)
			assert.Nil(t, analyzer.got, "analyzer must not run for an undecodable request")
		})
	}
}

func TestReviewHandler_ErrorPolicy(t *testing.T) {
	validation := core.NewValidationError("patches[0]", "Each patch must have content and filename")
	upstream := &core.UpstreamError{Provider: "anthropic", Err: errors.New("overloaded")}

	tests := []struct {
		name       string
		policy     ErrorPolicy
		err        error
		wantStatus int
	}{
		{name: "validation default", err: validation, wantStatus: http.StatusInternalServerError},
		{name: "upstream default", err: upstream, wantStatus: http.StatusInternalServerError},
		{name: "validation strict", policy: ErrorPolicy{StrictStatusCodes: true}, err: validation, wantStatus: http.StatusBadRequest},
		{name: "upstream strict", policy: ErrorPolicy{StrictStatusCodes: true}, err: upstream, wantStatus: http.StatusBadGateway},
		{name: "other strict", policy: ErrorPolicy{StrictStatusCodes: true}, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReviewHandler(&stubAnalyzer{err: tt.err}, core.ProfileGeneral, tt.policy, testLogger())

			rec, res := serve(t, h, `{"patches":[]}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, res.Success)
			assert.Equal(t, tt.err.Error(), res.Error)
		})
	}
}

func TestReviewHandler_StackInDevelopment(t *testing.T) {
	h := NewReviewHandler(&stubAnalyzer{err: errors.New("boom")}, core.ProfileGeneral, ErrorPolicy{IncludeStack: true}, testLogger())

	_, res := serve(t, h, `{"patches":[]}`)
	assert.Equal(t, "boom", res.Error)
	assert.Contains(t, res.Stack, "goroutine")
}

func failCompletion() error {
	return core.NewUpstreamError("anthropic", errors.New("overloaded"))
}

func TestReviewHandler_StackFromErrorOrigin(t *testing.T) {
	h := NewReviewHandler(&stubAnalyzer{err: failCompletion()}, core.ProfileGeneral, ErrorPolicy{IncludeStack: true}, testLogger())

	_, res := serve(t, h, `{"patches":[]}`)
	assert.Contains(t, res.Stack, "handler.failCompletion")
	assert.NotContains(t, res.Stack, "writeError")
}
