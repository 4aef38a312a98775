package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/socialcopy/internal/fetch"
	"github.com/jonathan/socialcopy/internal/store"
	"github.com/jonathan/socialcopy/internal/types"
)

// Store key prefixes.
const (
	draftKeyPrefix    = "draft:"
	overrideKeyPrefix = "override:"
)

// IngestRequest is the request body for POST /api/ingest.
type IngestRequest struct {
	URL        string `json:"url"`
	UseBrowser bool   `json:"useBrowser,omitempty"`
}

// IngestResponse is the success payload for POST /api/ingest.
type IngestResponse struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// OverrideRequest is the request body for PUT /api/overrides/{platform_id}.
type OverrideRequest struct {
	Prompt string `json:"prompt"`
}

// OverrideResponse is the payload for GET /api/overrides/{platform_id}.
type OverrideResponse struct {
	PlatformID string `json:"platformId"`
	Prompt     string `json:"prompt"`
}

// handleGenerateCopy runs the full copy generation pipeline.
func (s *Server) handleGenerateCopy(w http.ResponseWriter, r *http.Request) {
	if !s.rateLimiter.Allow(s.extractClientID(r)) {
		s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req types.GenerateCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.resolveSelections(r, &req)

	items, err := s.pipeline.GenerateCopies(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CopyBatchResponse{Items: items})
}

// handleGenerateImage renders one visual for an image prompt.
func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if !s.rateLimiter.Allow(s.extractClientID(r)) {
		s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req types.GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	imageURL, err := s.pipeline.GenerateImage(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ImageResponse{ImageURL: imageURL})
}

// handleIngest fetches an article URL and returns its extracted text for
// use as source content.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	text, err := fetch.SourceText(r.Context(), req.URL, req.UseBrowser)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, IngestResponse{URL: req.URL, Text: text})
}

// resolveSelections fills catalog profiles for selections that arrived as a
// bare id, and applies any stored platform prompt override. A prompt carried
// in the request is the caller's own customization and always wins over a
// stored override.
func (s *Server) resolveSelections(r *http.Request, req *types.GenerateCopyRequest) {
	callerPrompt := strings.TrimSpace(req.Platform.Prompt) != ""
	if req.Platform.Prompt == "" && req.Platform.ID != "" {
		if platform, ok := types.PlatformByID(req.Platform.ID); ok {
			req.Platform = platform
		}
	}
	if req.Tone.Prompt == "" && req.Tone.ID != "" {
		if tone, ok := types.ToneByID(req.Tone.ID); ok {
			req.Tone = tone
		}
	}
	if req.Language.Prompt == "" && req.Language.ID != "" {
		if language, ok := types.LanguageByID(req.Language.ID); ok {
			req.Language = language
		}
	}
	if req.ContentMode.Prompt == "" && req.ContentMode.ID != "" {
		if mode, ok := types.ContentModeByID(req.ContentMode.ID); ok {
			req.ContentMode = mode
		}
	}

	if callerPrompt || req.Platform.ID == "" {
		return
	}
	override, err := s.store.Get(r.Context(), overrideKeyPrefix+req.Platform.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[STORE] read override for %s failed: %v", req.Platform.ID, err)
		}
		return
	}
	var parsed OverrideRequest
	if err := json.Unmarshal(override, &parsed); err != nil || strings.TrimSpace(parsed.Prompt) == "" {
		return
	}
	req.Platform.Prompt = parsed.Prompt
}

// handleSaveDraft stores a draft payload verbatim. Storage is best-effort:
// a failed write is logged and reported as accepted.
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "draft body is required")
		return
	}
	if err := s.store.Set(r.Context(), draftKeyPrefix+id, body); err != nil {
		log.Printf("[STORE] save draft %s failed: %v", id, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetDraft returns a stored draft. A degraded store reads as empty.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	value, err := s.store.Get(r.Context(), draftKeyPrefix+id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[STORE] read draft %s failed: %v", id, err)
		}
		s.errorResponse(w, http.StatusNotFound, "draft not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(value); err != nil {
		log.Printf("Error writing draft response: %v", err)
	}
}

// handleDeleteDraft removes a stored draft.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(r.Context(), draftKeyPrefix+id); err != nil {
		log.Printf("[STORE] delete draft %s failed: %v", id, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSaveOverride stores a replacement instruction prompt for a catalog
// platform.
func (s *Server) handleSaveOverride(w http.ResponseWriter, r *http.Request) {
	platformID := r.PathValue("platform_id")
	if _, ok := types.PlatformByID(platformID); !ok {
		s.errorResponse(w, http.StatusNotFound, "unknown platform: "+platformID)
		return
	}

	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.errorResponse(w, http.StatusBadRequest, "prompt is required")
		return
	}

	value, _ := json.Marshal(req)
	if err := s.store.Set(r.Context(), overrideKeyPrefix+platformID, value); err != nil {
		log.Printf("[STORE] save override %s failed: %v", platformID, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetOverride returns the stored override for a platform.
func (s *Server) handleGetOverride(w http.ResponseWriter, r *http.Request) {
	platformID := r.PathValue("platform_id")
	value, err := s.store.Get(r.Context(), overrideKeyPrefix+platformID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[STORE] read override %s failed: %v", platformID, err)
		}
		s.errorResponse(w, http.StatusNotFound, "override not found")
		return
	}
	var parsed OverrideRequest
	if err := json.Unmarshal(value, &parsed); err != nil {
		s.errorResponse(w, http.StatusNotFound, "override not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, OverrideResponse{PlatformID: platformID, Prompt: parsed.Prompt})
}

// handleDeleteOverride removes a stored override.
func (s *Server) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	platformID := r.PathValue("platform_id")
	if err := s.store.Delete(r.Context(), overrideKeyPrefix+platformID); err != nil {
		log.Printf("[STORE] delete override %s failed: %v", platformID, err)
	}
	w.WriteHeader(http.StatusNoContent)
}
