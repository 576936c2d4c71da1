package tool

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyWithContext(t *testing.T) {
	src := bytes.Repeat([]byte("rimmich"), 100000)
	var dst bytes.Buffer
	n, err := CopyWithContext(context.Background(), &dst, bytes.NewReader(src))
	require.NoError(t, err)
	assert.EqualValues(t, len(src), n)
	assert.Equal(t, src, dst.Bytes())
}

func TestCopyWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var dst bytes.Buffer
	_, err := CopyWithContext(ctx, &dst, bytes.NewReader([]byte("data")))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, dst.Len())
}

func TestRateLimitedCopyThrottles(t *testing.T) {
	// 3000 bytes at 1000 B/s: the first 1000 burst immediately, the rest take about two seconds
	src := make([]byte, 3000)
	var dst bytes.Buffer
	start := time.Now()
	n, err := RateLimitedCopy(context.Background(), &dst, bytes.NewReader(src), 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 3000, n)
	assert.GreaterOrEqual(t, time.Since(start), 1500*time.Millisecond)
}

func TestRateLimitedCopyUnlimited(t *testing.T) {
	src := make([]byte, 1<<20)
	var dst bytes.Buffer
	n, err := RateLimitedCopy(context.Background(), &dst, bytes.NewReader(src), 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(src), n)
}
