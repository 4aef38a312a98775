package types

// AspectRatios enumerates the image aspect ratios accepted by the image path.
var AspectRatios = []string{"1:1", "16:9", "9:16"}

// DefaultAspectRatio is used when a caller omits the aspect ratio.
const DefaultAspectRatio = "1:1"

// GenerateCopyRequest is the inbound request for the copy generation path.
// The caller either supplies full profiles (custom prompts) or references
// catalog entries by id with an empty prompt, which the server resolves
// before validation.
type GenerateCopyRequest struct {
	Content     string          `json:"content" validate:"required"`
	Platform    PlatformProfile `json:"platform"`
	Tone        ToneProfile     `json:"tone"`
	Language    Option          `json:"language"`
	ContentMode Option          `json:"contentMode"`
	APIKey      string          `json:"apiKey,omitempty"`
}

// GenerateImageRequest is the inbound request for the image rendering path.
type GenerateImageRequest struct {
	Prompt      string `json:"prompt" validate:"required"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
}

// CopyBatchResponse is the success payload for POST /api/generate-copy.
type CopyBatchResponse struct {
	Items []GeneratedCopy `json:"items"`
}

// ImageResponse is the success payload for POST /api/generate-image.
type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// IsValidAspectRatio reports whether value is one of the supported ratios.
func IsValidAspectRatio(value string) bool {
	for _, r := range AspectRatios {
		if value == r {
			return true
		}
	}
	return false
}
