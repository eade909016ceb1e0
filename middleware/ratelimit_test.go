package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 0.0001) // effectively no refill during the test

	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 100) // 100 tokens/sec

	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, bucket.Allow(), "bucket refills over time")
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, 3600)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "each client gets its own bucket")
}
