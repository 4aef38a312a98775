package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/socialcopy/internal/types"
)

// DefaultMaxContentChars bounds the source content length (in runes).
const DefaultMaxContentChars = 5000

var validate = validator.New()

// CopyRequest checks a generation request before any network call is made.
// It returns nil and leaves the request unmodified on success.
func CopyRequest(req *types.GenerateCopyRequest, maxContentChars int) error {
	if req == nil {
		return &Error{Message: "request is nil"}
	}
	if maxContentChars <= 0 {
		maxContentChars = DefaultMaxContentChars
	}

	if strings.TrimSpace(req.Content) == "" {
		return &Error{Field: "content", Message: "source content is required"}
	}
	if n := utf8.RuneCountInString(req.Content); n > maxContentChars {
		return &Error{
			Field:   "content",
			Message: fmt.Sprintf("source content is %d characters, maximum is %d", n, maxContentChars),
		}
	}

	// Every selection must carry instruction text; an id without a prompt
	// means catalog resolution failed upstream.
	if strings.TrimSpace(req.Platform.Prompt) == "" {
		return &Error{Field: "platform", Message: "platform instruction text is required"}
	}
	if strings.TrimSpace(req.Tone.Prompt) == "" {
		return &Error{Field: "tone", Message: "tone instruction text is required"}
	}
	if strings.TrimSpace(req.Language.Prompt) == "" {
		return &Error{Field: "language", Message: "output language instruction text is required"}
	}
	if strings.TrimSpace(req.ContentMode.Prompt) == "" {
		return &Error{Field: "contentMode", Message: "content mode instruction text is required"}
	}

	if err := validate.Struct(req); err != nil {
		return translateValidatorError(err)
	}
	return nil
}

// ImageRequest checks an image rendering request before any network call.
func ImageRequest(req *types.GenerateImageRequest) error {
	if req == nil {
		return &Error{Message: "request is nil"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return &Error{Field: "prompt", Message: "image prompt is required"}
	}
	if req.AspectRatio != "" && !types.IsValidAspectRatio(req.AspectRatio) {
		return &Error{
			Field:   "aspectRatio",
			Message: fmt.Sprintf("unsupported aspect ratio %q, expected one of %s", req.AspectRatio, strings.Join(types.AspectRatios, ", ")),
		}
	}
	return nil
}

// translateValidatorError converts a go-playground error into our typed Error
// so callers never see library-specific types.
func translateValidatorError(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &Error{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
		}
	}
	return &Error{Message: err.Error()}
}
