// Package gemini provides a retrying REST client for the Google generative
// language API: text generation via generateContent and image rendering via
// the Imagen predict endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultCopyModel  = "gemini-2.5-flash-preview-09-2025"
	defaultImageModel = "imagen-4.0-generate-001"
	defaultTimeout    = 60 * time.Second

	// negativePrompt is sent with every image request to suppress common
	// generation artifacts.
	negativePrompt = "low quality, bad anatomy, deformed, worst quality, noise, blurry, watermark"
)

// Client is an abstraction over the generative endpoints so the pipeline can
// be tested against a stub.
type Client interface {
	// GenerateCopy posts the built prompts to generateContent and returns
	// the raw 2xx response body.
	GenerateCopy(ctx context.Context, apiKey, userPrompt, systemPrompt string) ([]byte, error)
	// GenerateImage posts an image prompt to the Imagen predict endpoint and
	// returns the raw 2xx response body.
	GenerateImage(ctx context.Context, apiKey, prompt, aspectRatio string) ([]byte, error)
}

// Config holds client configuration. Zero values use defaults.
type Config struct {
	BaseURL    string
	CopyModel  string
	ImageModel string
	Timeout    time.Duration
	Retry      RetryPolicy
	HTTPClient *http.Client
}

// RESTClient implements Client against the real HTTP API.
type RESTClient struct {
	http       *http.Client
	baseURL    string
	copyModel  string
	imageModel string
	retry      RetryPolicy
}

// NewClient creates a REST client from config, filling in defaults.
func NewClient(cfg *Config) *RESTClient {
	if cfg == nil {
		cfg = &Config{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	copyModel := cfg.CopyModel
	if copyModel == "" {
		copyModel = defaultCopyModel
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultImageModel
	}
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = DefaultMaxAttempts
	}
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = DefaultBaseDelay
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &RESTClient{
		http:       httpClient,
		baseURL:    baseURL,
		copyModel:  copyModel,
		imageModel: imageModel,
		retry:      retry,
	}
}

// generateContentRequest mirrors the generateContent wire format.
type generateContentRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction content          `json:"systemInstruction"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
	ResponseSchema   any    `json:"responseSchema"`
}

// copyResponseSchema constrains the model output to an array of exactly
// three copy objects.
func copyResponseSchema() map[string]any {
	return map[string]any{
		"type":        "ARRAY",
		"description": "An array containing exactly three versions of the generated social media copy, each with an attached image prompt.",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "STRING",
					"description": "The optimized social media copy.",
				},
				"image_prompt": map[string]any{
					"type":        "STRING",
					"description": "A detailed English prompt describing the best visual companion for this copy.",
				},
				"language": map[string]any{
					"type":        "STRING",
					"description": "Language code of the output, e.g., zh-CN or en-US.",
				},
				"content_mode": map[string]any{
					"type":        "STRING",
					"description": "Content mode identifier such as 'social', 'summary', or 'script'.",
				},
			},
			"required": []string{"text", "image_prompt"},
		},
	}
}

// predictRequest mirrors the Imagen predict wire format.
type predictRequest struct {
	Instances  []instance       `json:"instances"`
	Parameters predictParameter `json:"parameters"`
}

type instance struct {
	Prompt string `json:"prompt"`
}

type predictParameter struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio"`
	NegativePrompt string `json:"negativePrompt"`
}

// GenerateCopy implements Client.
func (c *RESTClient) GenerateCopy(ctx context.Context, apiKey, userPrompt, systemPrompt string) ([]byte, error) {
	payload := generateContentRequest{
		Contents:          []content{{Parts: []part{{Text: userPrompt}}}},
		SystemInstruction: content{Parts: []part{{Text: systemPrompt}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   copyResponseSchema(),
		},
	}
	endpoint := fmt.Sprintf("models/%s:generateContent", c.copyModel)
	return c.postJSON(ctx, endpoint, apiKey, payload)
}

// GenerateImage implements Client. The aspect ratio is forwarded verbatim;
// callers validate it against the supported set beforehand.
func (c *RESTClient) GenerateImage(ctx context.Context, apiKey, prompt, aspectRatio string) ([]byte, error) {
	payload := predictRequest{
		Instances: []instance{{Prompt: prompt}},
		Parameters: predictParameter{
			SampleCount:    1,
			AspectRatio:    aspectRatio,
			NegativePrompt: negativePrompt,
		},
	}
	endpoint := fmt.Sprintf("models/%s:predict", c.imageModel)
	return c.postJSON(ctx, endpoint, apiKey, payload)
}

// postJSON performs one retried POST of payload to endpoint. The credential
// travels as a query parameter, matching the upstream API contract.
func (c *RESTClient) postJSON(ctx context.Context, endpoint, apiKey string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}
	target := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, url.QueryEscape(apiKey))

	return c.retry.Do(ctx, endpoint, func(ctx context.Context) ([]byte, *Failure) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
		if err != nil {
			return nil, &Failure{Cause: fmt.Errorf("build request: %w", err)}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &Failure{Cause: err}
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &Failure{Cause: fmt.Errorf("read response: %w", err)}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &Failure{StatusCode: resp.StatusCode, Body: string(respBody)}
		}
		return respBody, nil
	})
}
