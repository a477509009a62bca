package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	ctx := context.Background()

	require.NoError(t, c.AcquireWorker(ctx))
	require.NoError(t, c.AcquireWorker(ctx))
	assert.False(t, c.TryAcquireWorker())

	// Blocks until timeout.
	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	err := c.AcquireWorker(tctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
}

func TestController_UnlimitedWorkers(t *testing.T) {
	c := NewController(Config{})
	for i := 0; i < 100; i++ {
		require.NoError(t, c.AcquireWorker(context.Background()))
	}
	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20))
	assert.Equal(t, Config{}, c.Config())
}

func TestController_IO(t *testing.T) {
	// 1000 B/s with burst 1000: the first 1000 bytes pass immediately.
	c := NewController(Config{IOLimitBytesPerSec: 1000})

	start := time.Now()
	require.NoError(t, c.AcquireIO(context.Background(), 1000))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	// The bucket is empty now; a cancelled context must abort the wait.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.AcquireIO(ctx, 500)
	assert.Error(t, err)
}

func TestRateLimitedReaderWriter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	ctx := context.Background()

	var buf bytes.Buffer
	w := NewRateLimitedWriter(ctx, &buf, c)
	_, err := w.Write([]byte("segment table"))
	require.NoError(t, err)

	r := NewRateLimitedReader(ctx, &buf, c)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "segment table", string(data))
}
