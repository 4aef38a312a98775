package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRunFlags(t *testing.T, platform, tone, language, mode string) {
	t.Helper()
	origPlatform, origTone, origLanguage, origMode := runPlatform, runTone, runLanguage, runMode
	t.Cleanup(func() {
		runPlatform, runTone, runLanguage, runMode = origPlatform, origTone, origLanguage, origMode
	})
	runPlatform, runTone, runLanguage, runMode = platform, tone, language, mode
}

func TestBuildCopyRequest_Valid(t *testing.T) {
	setRunFlags(t, "linkedin", "concise", "en-US", "summary")

	req, err := buildCopyRequest("source content")

	require.NoError(t, err)
	assert.Equal(t, "source content", req.Content)
	assert.Equal(t, "linkedin", req.Platform.ID)
	assert.Equal(t, 3000, req.Platform.Limit)
	assert.Equal(t, "concise", req.Tone.ID)
	assert.Equal(t, "en-US", req.Language.ID)
	assert.Equal(t, "summary", req.ContentMode.ID)
}

func TestBuildCopyRequest_UnknownPlatform(t *testing.T) {
	setRunFlags(t, "myspace", "professional", "zh-CN", "social")

	_, err := buildCopyRequest("source content")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "myspace")
	assert.Contains(t, err.Error(), "twitter")
}

func TestBuildCopyRequest_UnknownTone(t *testing.T) {
	setRunFlags(t, "twitter", "sarcastic", "zh-CN", "social")

	_, err := buildCopyRequest("source content")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sarcastic")
}

func TestBuildCopyRequest_UnknownLanguage(t *testing.T) {
	setRunFlags(t, "twitter", "professional", "fr-FR", "social")

	_, err := buildCopyRequest("source content")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fr-FR")
}

func TestBuildCopyRequest_UnknownMode(t *testing.T) {
	setRunFlags(t, "twitter", "professional", "zh-CN", "newsletter")

	_, err := buildCopyRequest("source content")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "newsletter")
}
