package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/a11y-warden/internal/core"
)

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "http://relay/analyze-patches/accessibility", endpoint("http://relay/", core.ProfileAccessibility))
	assert.Equal(t, "http://relay/analyze-patches", endpoint("http://relay", core.ProfileGeneral))
}

func TestPostReview(t *testing.T) {
	var got core.ReviewRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-patches/accessibility", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"response":"All good"}`))
	}))
	defer srv.Close()

	req := &core.ReviewRequest{
		Patches: []core.Patch{{Filename: "a.jsx", Content: "<button disabled>"}},
		Prompt:  "check this",
	}
	result, err := postReview(context.Background(), srv.Client(), srv.URL, core.ProfileAccessibility, req)
	require.NoError(t, err)
	assert.Equal(t, "All good", result.Response)
	assert.Equal(t, req.Patches, got.Patches)
	assert.Equal(t, "check this", got.Prompt)
	assert.Nil(t, got.MaxTokens)
}

func TestPostReview_FailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Each patch must have content and filename"}`))
	}))
	defer srv.Close()

	_, err := postReview(context.Background(), srv.Client(), srv.URL, core.ProfileGeneral, &core.ReviewRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), "Each patch must have content and filename")
}

func TestPostReview_NonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := postReview(context.Background(), srv.Client(), srv.URL, core.ProfileGeneral, &core.ReviewRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected relay response (HTTP 502)")
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "plain", responseText("plain"))

	lines := []any{
		map[string]any{"lineNumber": float64(1), "content": "first"},
		map[string]any{"lineNumber": float64(2), "content": "second"},
	}
	assert.Equal(t, "first\nsecond", responseText(lines))
}

func TestCollectPatches(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Button.jsx")
	require.NoError(t, os.WriteFile(file, []byte("<button />\n"), 0o600))

	patches, err := collectPatches(context.Background(), "", []string{file})
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, filepath.ToSlash(file), patches[0].Filename)
	assert.Equal(t, "<button />\n", patches[0].Content)

	_, err = collectPatches(context.Background(), "", nil)
	assert.ErrorIs(t, err, errNoInput)

	_, err = collectPatches(context.Background(), dir, []string{file})
	assert.Error(t, err)

	_, err = collectPatches(context.Background(), "", []string{filepath.Join(dir, "missing.jsx")})
	assert.Error(t, err)
}

func TestPostReview_ContextCancelsHangingRelay(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := postReview(ctx, srv.Client(), srv.URL, core.ProfileGeneral, &core.ReviewRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
