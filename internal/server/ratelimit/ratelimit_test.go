package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_REQUESTS", "50")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "30")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.Limit)
	assert.Equal(t, 30*time.Second, cfg.Window)
}

func TestLoadConfig_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "not-a-number")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "-5")

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, Limit: 1, Window: time.Minute})

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("client"))
	}
}

func TestLimiter_ExhaustsBucket(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 2, Window: time.Minute})

	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Minute})

	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"))
	assert.True(t, l.Allow("bob"))
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	current := time.Now()
	l := NewLimiter(&Config{Enabled: true, Limit: 2, Window: time.Minute})
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	// Half the window refills one token.
	current = current.Add(30 * time.Second)
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))
}

func TestLimiter_RefillCapsAtCapacity(t *testing.T) {
	current := time.Now()
	l := NewLimiter(&Config{Enabled: true, Limit: 2, Window: time.Minute})
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("client"))

	// A long idle period cannot bank more than the capacity.
	current = current.Add(time.Hour)
	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)

	assert.True(t, l.Allow("client"))
}
