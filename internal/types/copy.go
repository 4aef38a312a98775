package types

import "github.com/google/uuid"

// Advisory note identifiers attached to a ScoreRecord, in check order.
const (
	NoteMissingHashtag  = "missingHashtag"
	NoteTooManyHashtags = "tooManyHashtags"
	NoteMissingQuestion = "missingQuestion"
	NoteMissingCTA      = "missingCTA"
	NoteSuggestEmoji    = "suggestEmoji"
	NoteGreatStructure  = "greatStructure"
)

// ScoreRecord holds the heuristic quality scores for one generated copy.
// It is derived purely from the copy text and its platform/tone profiles and
// is recomputed whenever the text changes.
type ScoreRecord struct {
	Readability int      `json:"readability"`
	Engagement  int      `json:"engagement"`
	CTA         int      `json:"cta"`
	Notes       []string `json:"notes"`
}

// GeneratedCopy is one normalized copy candidate from a generation batch.
// It is only ever created fully populated from a validated provider response.
type GeneratedCopy struct {
	ID          uuid.UUID   `json:"id"`
	Text        string      `json:"text"`
	ImagePrompt string      `json:"image_prompt"`
	Language    string      `json:"language"`
	ContentMode string      `json:"content_mode"`
	ImageURL    string      `json:"image_url,omitempty"`
	Score       ScoreRecord `json:"score"`
}
