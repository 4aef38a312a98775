// Package pipeline orchestrates copy and image generation: validation,
// credential resolution, prompt building, the retried provider call,
// normalization, and scoring.
package pipeline

import (
	"context"

	"github.com/jonathan/socialcopy/internal/config"
	"github.com/jonathan/socialcopy/internal/gemini"
	"github.com/jonathan/socialcopy/internal/normalize"
	"github.com/jonathan/socialcopy/internal/prompts"
	"github.com/jonathan/socialcopy/internal/scoring"
	"github.com/jonathan/socialcopy/internal/types"
	"github.com/jonathan/socialcopy/internal/validation"
)

// Pipeline runs generation operations against a provider client.
type Pipeline struct {
	client          gemini.Client
	configuredKey   string
	maxContentChars int
}

// Options configures a Pipeline.
type Options struct {
	Client          gemini.Client
	APIKey          string // process-wide fallback credential; may be empty
	MaxContentChars int
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	maxChars := opts.MaxContentChars
	if maxChars <= 0 {
		maxChars = validation.DefaultMaxContentChars
	}
	return &Pipeline{
		client:          opts.Client,
		configuredKey:   opts.APIKey,
		maxContentChars: maxChars,
	}
}

// GenerateCopies validates the request, calls the text model, normalizes
// the response into exactly three copies, and scores each one. Validation
// and credential resolution fail before any network attempt.
func (p *Pipeline) GenerateCopies(ctx context.Context, req *types.GenerateCopyRequest) ([]types.GeneratedCopy, error) {
	if err := validation.CopyRequest(req, p.maxContentChars); err != nil {
		return nil, err
	}
	apiKey, err := config.ResolveAPIKey(req.APIKey, p.configuredKey)
	if err != nil {
		return nil, err
	}

	userPrompt := prompts.BuildUserPrompt(req.Content, req.Platform, req.Tone, req.Language, req.ContentMode)
	systemPrompt := prompts.BuildSystemInstruction()

	body, err := p.client.GenerateCopy(ctx, apiKey, userPrompt, systemPrompt)
	if err != nil {
		return nil, err
	}

	copies, err := normalize.CopyBatch(body, req)
	if err != nil {
		return nil, err
	}
	for i := range copies {
		copies[i].Score = scoring.Score(copies[i].Text, req.Platform, req.Tone)
	}
	return copies, nil
}

// GenerateImage validates the request and renders one visual for a prompt,
// returning a displayable data URI.
func (p *Pipeline) GenerateImage(ctx context.Context, req *types.GenerateImageRequest) (string, error) {
	if err := validation.ImageRequest(req); err != nil {
		return "", err
	}
	apiKey, err := config.ResolveAPIKey(req.APIKey, p.configuredKey)
	if err != nil {
		return "", err
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = types.DefaultAspectRatio
	}

	body, err := p.client.GenerateImage(ctx, apiKey, req.Prompt, aspectRatio)
	if err != nil {
		return "", err
	}
	return normalize.ImageURL(body)
}
