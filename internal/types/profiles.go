// Package types provides type definitions for structured data used throughout the socialcopy system.
package types

// PlatformProfile describes a target social platform and the copywriting
// instruction used when generating for it. Profiles are defined at process
// start; a per-session prompt override may replace Prompt before generation.
type PlatformProfile struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Limit  int    `json:"limit"`
	Prompt string `json:"prompt" validate:"required"`
}

// ToneProfile describes a writing tone and its instruction fragment.
type ToneProfile struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Prompt string `json:"prompt" validate:"required"`
}

// Option is a generic selectable instruction fragment, used for output
// language and content mode.
type Option struct {
	ID     string `json:"id" validate:"required"`
	Label  string `json:"label"`
	Prompt string `json:"prompt" validate:"required"`
}

// Tone IDs referenced by scoring and the built-in catalog.
const (
	ToneProfessional = "professional"
	ToneHumorous     = "humorous"
	ToneConcise      = "concise"
	ToneFriendly     = "friendly"
)

// Platforms returns the built-in platform catalog.
func Platforms() []PlatformProfile {
	return []PlatformProfile{
		{
			ID:     "twitter",
			Name:   "X / Twitter",
			Limit:  280,
			Prompt: "目标为 X/Twitter，必须控制在 280 字符以内，使用短句和不超过 3 个高度相关的 Hashtag。",
		},
		{
			ID:     "instagram",
			Name:   "Instagram",
			Limit:  2200,
			Prompt: "目标为 Instagram Caption，可多段换行并使用大量 Emoji 来提升排版，结尾附加明确 CTA。",
		},
		{
			ID:     "linkedin",
			Name:   "LinkedIn",
			Limit:  3000,
			Prompt: "目标为 LinkedIn Post，保持专业、正式的语气，使用 5-7 个要点列表来组织内容，引导专业互动。",
		},
		{
			ID:     "xiaohongshu",
			Name:   "小红书",
			Limit:  1000,
			Prompt: "目标为小红书笔记，用种草/分享口吻，开头用吸睛标题或表情，内容分段并使用小红书常见 Hashtag。",
		},
	}
}

// Tones returns the built-in tone catalog.
func Tones() []ToneProfile {
	return []ToneProfile{
		{
			ID:     ToneProfessional,
			Name:   "专业 Professional",
			Prompt: "保持专业、正式的语气，客观表达，避免夸张符号。",
		},
		{
			ID:     ToneFriendly,
			Name:   "亲切 Friendly",
			Prompt: "用亲切、温暖的语气，像朋友间分享一样，适度使用表情符号拉近距离。",
		},
		{
			ID:     ToneHumorous,
			Name:   "幽默 Humorous",
			Prompt: "用幽默、风趣的语气，适度加入流行梗和表情符号。",
		},
		{
			ID:     ToneConcise,
			Name:   "简洁 Concise",
			Prompt: "突出 1-2 个核心亮点，用最短的文字清晰传达信息。",
		},
	}
}

// Languages returns the built-in output language options.
func Languages() []Option {
	return []Option{
		{
			ID:     "zh-CN",
			Label:  "简体中文",
			Prompt: "所有文案均使用简体中文输出，符合中文社交媒体的表达习惯。",
		},
		{
			ID:     "en-US",
			Label:  "English",
			Prompt: "Write all copy in natural, idiomatic English suited to the target platform.",
		},
	}
}

// ContentModes returns the built-in content mode options.
func ContentModes() []Option {
	return []Option{
		{
			ID:     "social",
			Label:  "社交帖子",
			Prompt: "输出形态为可直接发布的社交媒体帖子。",
		},
		{
			ID:     "summary",
			Label:  "内容摘要",
			Prompt: "输出形态为内容摘要，提炼原文的核心信息和结论。",
		},
		{
			ID:     "script",
			Label:  "短视频脚本",
			Prompt: "输出形态为短视频口播脚本，用口语化的句子，标注开场钩子和结尾引导。",
		},
	}
}

// PlatformByID looks up a built-in platform by its identifier.
func PlatformByID(id string) (PlatformProfile, bool) {
	for _, p := range Platforms() {
		if p.ID == id {
			return p, true
		}
	}
	return PlatformProfile{}, false
}

// ToneByID looks up a built-in tone by its identifier.
func ToneByID(id string) (ToneProfile, bool) {
	for _, t := range Tones() {
		if t.ID == id {
			return t, true
		}
	}
	return ToneProfile{}, false
}

// LanguageByID looks up a built-in output language by its identifier.
func LanguageByID(id string) (Option, bool) {
	for _, o := range Languages() {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// ContentModeByID looks up a built-in content mode by its identifier.
func ContentModeByID(id string) (Option, bool) {
	for _, o := range ContentModes() {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
