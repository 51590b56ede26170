package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsUpToMax(t *testing.T) {
	l := NewLimiter(time.Minute, 3)

	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(time.Minute, 1)

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-b"))
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := NewLimiter(30*time.Millisecond, 1)

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))

	time.Sleep(40 * time.Millisecond)
	assert.True(t, l.Allow("client-a"))
}
