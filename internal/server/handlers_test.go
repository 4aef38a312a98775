package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/socialcopy/internal/gemini"
	"github.com/jonathan/socialcopy/internal/store"
	"github.com/jonathan/socialcopy/internal/types"
)

// stubClient returns canned provider responses.
type stubClient struct {
	copyBody  []byte
	copyErr   error
	imageBody []byte
	imageErr  error

	lastUserPrompt string
}

func (s *stubClient) GenerateCopy(_ context.Context, _, userPrompt, _ string) ([]byte, error) {
	s.lastUserPrompt = userPrompt
	return s.copyBody, s.copyErr
}

func (s *stubClient) GenerateImage(_ context.Context, _, _, _ string) ([]byte, error) {
	return s.imageBody, s.imageErr
}

func validCopyBody(t *testing.T) []byte {
	t.Helper()
	embedded := `[
		{"text": "copy one #a ok?", "image_prompt": "prompt one"},
		{"text": "copy two", "image_prompt": "prompt two"},
		{"text": "copy three", "image_prompt": "prompt three"}
	]`
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": embedded}}}},
		},
	})
	require.NoError(t, err)
	return body
}

func newTestServer(t *testing.T, client gemini.Client) *Server {
	t.Helper()
	srv, err := New(Config{
		APIKey: "test-key",
		Client: client,
		Store:  store.NewMemory(),
	})
	require.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func copyRequestBody() map[string]any {
	return map[string]any{
		"content":     "今天发布了新产品，包含三个亮点。",
		"platform":    map[string]any{"id": "twitter"},
		"tone":        map[string]any{"id": "professional"},
		"language":    map[string]any{"id": "zh-CN"},
		"contentMode": map[string]any{"id": "social"},
	}
}

func TestGenerateCopy_Success(t *testing.T) {
	client := &stubClient{copyBody: validCopyBody(t)}
	srv := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", copyRequestBody())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.CopyBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "copy one #a ok?", resp.Items[0].Text)
	assert.NotZero(t, resp.Items[0].Score.Readability)

	// The catalog platform instruction was resolved from the bare id.
	assert.Contains(t, client.lastUserPrompt, "280")
}

func TestGenerateCopy_InvalidBody(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateCopy_MissingContent(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	body := copyRequestBody()
	body["content"] = ""
	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestGenerateCopy_UnknownPlatform(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	body := copyRequestBody()
	body["platform"] = map[string]any{"id": "myspace"}
	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", body)

	// Unresolvable catalog id leaves the prompt empty, which validation rejects.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateCopy_UpstreamFailureMapsStatus(t *testing.T) {
	client := &stubClient{copyErr: &gemini.ServiceError{
		Endpoint:   "models/x:generateContent",
		Attempts:   3,
		StatusCode: http.StatusTooManyRequests,
		Body:       "quota",
	}}
	srv := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", copyRequestBody())

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGenerateCopy_NoAPIKeyConfigured(t *testing.T) {
	srv, err := New(Config{Client: &stubClient{copyBody: validCopyBody(t)}, Store: store.NewMemory()})
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", copyRequestBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateCopy_RequestAPIKeyAllowsCall(t *testing.T) {
	srv, err := New(Config{Client: &stubClient{copyBody: validCopyBody(t)}, Store: store.NewMemory()})
	require.NoError(t, err)

	body := copyRequestBody()
	body["apiKey"] = "caller-key"
	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", body)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateCopy_CustomProfilesPassThrough(t *testing.T) {
	client := &stubClient{copyBody: validCopyBody(t)}
	srv := newTestServer(t, client)

	body := map[string]any{
		"content":     "source text",
		"platform":    map[string]any{"id": "custom", "name": "Custom", "limit": 500, "prompt": "CUSTOM PLATFORM RULES"},
		"tone":        map[string]any{"id": "professional", "prompt": "tone rules"},
		"language":    map[string]any{"id": "en-US", "prompt": "language rules"},
		"contentMode": map[string]any{"id": "social", "prompt": "mode rules"},
	}
	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, client.lastUserPrompt, "CUSTOM PLATFORM RULES")
}

func TestGenerateCopy_RateLimited(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "2")
	srv := newTestServer(t, &stubClient{copyBody: validCopyBody(t)})

	for i := 0; i < 2; i++ {
		rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", copyRequestBody())
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-copy", copyRequestBody())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGenerateImage_Success(t *testing.T) {
	client := &stubClient{imageBody: []byte(`{"predictions":[{"bytesBase64Encoded":"aW1n"}]}`)}
	srv := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-image", map[string]any{
		"prompt":      "a lighthouse at dusk",
		"aspectRatio": "16:9",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.ImageURL, "data:image/png;base64,"))
}

func TestGenerateImage_BadAspectRatio(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPost, "/api/generate-image", map[string]any{
		"prompt":      "a lighthouse",
		"aspectRatio": "4:3",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngest_MissingURL(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPost, "/api/ingest", map[string]any{"url": ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrafts_CRUD(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	draft := `{"content":"work in progress","platform":"twitter"}`

	rec := doRequest(t, srv, http.MethodPut, "/api/drafts/session-1", draft)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/drafts/session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, draft, rec.Body.String())

	rec = doRequest(t, srv, http.MethodDelete, "/api/drafts/session-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/drafts/session-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDrafts_EmptyBodyRejected(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPut, "/api/drafts/session-1", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverrides_CRUD(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPut, "/api/overrides/twitter", map[string]any{"prompt": "CUSTOM TWITTER RULES"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/overrides/twitter", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OverrideResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "twitter", resp.PlatformID)
	assert.Equal(t, "CUSTOM TWITTER RULES", resp.Prompt)

	rec = doRequest(t, srv, http.MethodDelete, "/api/overrides/twitter", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/overrides/twitter", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOverrides_UnknownPlatform(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPut, "/api/overrides/myspace", map[string]any{"prompt": "x"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOverrides_EmptyPromptRejected(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodPut, "/api/overrides/twitter", map[string]any{"prompt": "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverrides_AppliedToGeneration(t *testing.T) {
	client := &stubClient{copyBody: validCopyBody(t)}
	srv := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodPut, "/api/overrides/twitter", map[string]any{"prompt": "OVERRIDDEN INSTRUCTION"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/generate-copy", copyRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, client.lastUserPrompt, "OVERRIDDEN INSTRUCTION")
}

func TestOverrides_CallerCustomPromptWins(t *testing.T) {
	client := &stubClient{copyBody: validCopyBody(t)}
	srv := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodPut, "/api/overrides/twitter", map[string]any{"prompt": "STORED OVERRIDE"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	body := copyRequestBody()
	body["platform"] = map[string]any{"id": "twitter", "limit": 280, "prompt": "CALLER CUSTOM PROMPT"}
	rec = doRequest(t, srv, http.MethodPost, "/api/generate-copy", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, client.lastUserPrompt, "CALLER CUSTOM PROMPT")
	assert.NotContains(t, client.lastUserPrompt, "STORED OVERRIDE")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-copy", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
