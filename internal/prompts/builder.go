package prompts

import "github.com/jonathan/socialcopy/internal/types"

const copywriterFile = "copywriter.json"

// BuildSystemInstruction returns the fixed system prompt describing the
// copywriter role and the JSON output contract.
func BuildSystemInstruction() string {
	return MustGet(copywriterFile, "system_instruction")
}

// BuildUserPrompt assembles the generation instruction from the source
// content and the four selected instruction fragments. Identical inputs
// always yield a byte-identical prompt.
func BuildUserPrompt(content string, platform types.PlatformProfile, tone types.ToneProfile, language, contentMode types.Option) string {
	return Format(MustGet(copywriterFile, "user_prompt"), map[string]string{
		"Content":           content,
		"PlatformPrompt":    platform.Prompt,
		"TonePrompt":        tone.Prompt,
		"LanguagePrompt":    language.Prompt,
		"LanguageID":        language.ID,
		"ContentModePrompt": contentMode.Prompt,
		"ContentModeID":     contentMode.ID,
	})
}
