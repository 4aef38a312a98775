// Package scoring computes heuristic quality scores for generated copy.
// Scoring is deterministic and performs no I/O.
package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/socialcopy/internal/types"
)

// Score bounds and adjustments.
const (
	readabilityCeiling = 95
	readabilityFloor   = 40
	overLimitPenalty   = 15
	overLimitFloor     = 30
	readabilityDivisor = 80

	engagementBase    = 70
	engagementCeiling = 90
	engagementFloor   = 40
	noHashtagPenalty  = 10
	manyHashtagsLimit = 5
	manyHashtagsCut   = 5
	noQuestionPenalty = 5

	ctaBase    = 70
	ctaBonus   = 10
	ctaCeiling = 95
)

// hashtagPattern matches a # followed by a run of non-space, non-# runes.
var hashtagPattern = regexp.MustCompile(`#[^#\s]+`)

// latinCTAPhrases are matched case-insensitively against the copy text.
var latinCTAPhrases = []string{
	"learn more",
	"sign up",
	"check out",
	"click the link",
	"link in bio",
	"don't miss",
	"follow us",
	"join us",
	"shop now",
	"subscribe",
}

// cjkCTAPhrases are matched verbatim; Chinese has no letter case.
var cjkCTAPhrases = []string{
	"点击",
	"了解更多",
	"立即",
	"关注",
	"评论区",
	"私信",
	"收藏",
	"转发",
	"留言",
	"戳链接",
}

// Score rates a generated copy against its platform and tone. The advisory
// notes follow check order: hashtags, question, CTA, emoji, then a single
// greatStructure note when nothing else was flagged.
func Score(text string, platform types.PlatformProfile, tone types.ToneProfile) types.ScoreRecord {
	length := utf8.RuneCountInString(text)
	notes := []string{}

	readability := clamp(100-length/readabilityDivisor, readabilityFloor, readabilityCeiling)
	if platform.Limit > 0 && length > platform.Limit {
		readability -= overLimitPenalty
		if readability < overLimitFloor {
			readability = overLimitFloor
		}
	}

	engagement := engagementBase
	switch hashtags := len(hashtagPattern.FindAllString(text, -1)); {
	case hashtags == 0:
		engagement -= noHashtagPenalty
		notes = append(notes, types.NoteMissingHashtag)
	case hashtags > manyHashtagsLimit:
		engagement -= manyHashtagsCut
		notes = append(notes, types.NoteTooManyHashtags)
	}
	if !strings.ContainsAny(text, "?？") {
		engagement -= noQuestionPenalty
		notes = append(notes, types.NoteMissingQuestion)
	}
	engagement = clamp(engagement, engagementFloor, engagementCeiling)

	cta := ctaBase
	if containsCTA(text) {
		cta += ctaBonus
	} else {
		notes = append(notes, types.NoteMissingCTA)
	}
	if cta > ctaCeiling {
		cta = ctaCeiling
	}

	if tone.ID == types.ToneFriendly && !containsEmoji(text) {
		notes = append(notes, types.NoteSuggestEmoji)
	}
	if len(notes) == 0 {
		notes = append(notes, types.NoteGreatStructure)
	}

	return types.ScoreRecord{
		Readability: readability,
		Engagement:  engagement,
		CTA:         cta,
		Notes:       notes,
	}
}

func containsCTA(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range latinCTAPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	for _, phrase := range cjkCTAPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// containsEmoji reports whether the text carries at least one rune from the
// common emoji blocks (symbols, pictographs, dingbats).
func containsEmoji(text string) bool {
	for _, r := range text {
		if (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			return true
		}
	}
	return false
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
