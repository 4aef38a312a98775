package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKey_OverrideWins(t *testing.T) {
	key, err := ResolveAPIKey("request-key", "configured-key")

	require.NoError(t, err)
	assert.Equal(t, "request-key", key)
}

func TestResolveAPIKey_ConfiguredFallback(t *testing.T) {
	key, err := ResolveAPIKey("", "configured-key")

	require.NoError(t, err)
	assert.Equal(t, "configured-key", key)
}

func TestResolveAPIKey_TrimsOverride(t *testing.T) {
	key, err := ResolveAPIKey("  request-key  ", "configured-key")

	require.NoError(t, err)
	assert.Equal(t, "request-key", key)
}

func TestResolveAPIKey_BlankOverrideFallsThrough(t *testing.T) {
	key, err := ResolveAPIKey("   ", "configured-key")

	require.NoError(t, err)
	assert.Equal(t, "configured-key", key)
}

func TestResolveAPIKey_NoKey(t *testing.T) {
	_, err := ResolveAPIKey("", "")

	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing))
}
