package normalize

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/socialcopy/internal/types"
)

//go:embed copy_batch_schema.json
var copyBatchSchemaJSON string

// CopyBatchSize is the number of copies every successful generation yields.
const CopyBatchSize = 3

// geminiEnvelope is the subset of the generateContent response we consume.
type geminiEnvelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// imagenEnvelope is the subset of the predict response we consume.
type imagenEnvelope struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// copyItem is one element of the embedded copy array.
type copyItem struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"image_prompt"`
	Language    string `json:"language"`
	ContentMode string `json:"content_mode"`
}

// CopyBatch extracts and validates the copy candidates embedded in a raw
// generateContent response body. Scores are not computed here. Missing
// per-item language/content_mode fields are filled from the request
// selections rather than rejected.
func CopyBatch(body []byte, req *types.GenerateCopyRequest) ([]types.GeneratedCopy, error) {
	var envelope geminiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &MalformedJSONError{Cause: fmt.Errorf("response envelope: %w", err)}
	}

	jsonText := embeddedText(&envelope)
	if jsonText == "" {
		return nil, &EmptyResponseError{Service: "Gemini"}
	}

	if !json.Valid([]byte(jsonText)) {
		return nil, &MalformedJSONError{Cause: fmt.Errorf("embedded payload is not JSON")}
	}
	if err := validateBatchShape(jsonText); err != nil {
		return nil, err
	}

	var items []copyItem
	if err := json.Unmarshal([]byte(jsonText), &items); err != nil {
		// The schema check guarantees an array of objects, so this only
		// fires on type mismatches it already reported.
		return nil, &MalformedJSONError{Cause: err}
	}

	copies := make([]types.GeneratedCopy, 0, CopyBatchSize)
	for _, item := range items {
		language := item.Language
		if language == "" {
			language = req.Language.ID
		}
		contentMode := item.ContentMode
		if contentMode == "" {
			contentMode = req.ContentMode.ID
		}
		copies = append(copies, types.GeneratedCopy{
			ID:          uuid.New(),
			Text:        item.Text,
			ImagePrompt: item.ImagePrompt,
			Language:    language,
			ContentMode: contentMode,
		})
	}
	return copies, nil
}

// ImageURL extracts the rendered image from a raw predict response body and
// wraps it as a displayable data URI.
func ImageURL(body []byte) (string, error) {
	var envelope imagenEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &MalformedJSONError{Cause: fmt.Errorf("response envelope: %w", err)}
	}
	if len(envelope.Predictions) == 0 || envelope.Predictions[0].BytesBase64Encoded == "" {
		return "", &EmptyResponseError{Service: "Imagen"}
	}
	return "data:image/png;base64," + envelope.Predictions[0].BytesBase64Encoded, nil
}

// embeddedText returns the first candidate's first part text, or "".
func embeddedText(envelope *geminiEnvelope) string {
	if len(envelope.Candidates) == 0 {
		return ""
	}
	parts := envelope.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// validateBatchShape runs the embedded payload through the JSON Schema for
// the copy batch, collecting every violation into one SchemaError.
func validateBatchShape(jsonText string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(copyBatchSchemaJSON),
		gojsonschema.NewStringLoader(jsonText),
	)
	if err != nil {
		return &MalformedJSONError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	sort.Strings(violations)
	return &SchemaError{Violations: violations}
}
