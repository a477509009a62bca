package remap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/remap/testutil"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLoggerRecordsQueries(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelDebug)
	p := newExamplePipeline(t, LookupSorted, WithLogger(logger))

	_, err := p.ApplyMany(testutil.ExampleSeeds)
	require.NoError(t, err)
	_, err = p.MinOverRange(79, 14)
	require.NoError(t, err)

	var msgs []string
	stages := 0
	for _, l := range logLines(t, buf) {
		msgs = append(msgs, l["msg"].(string))
		if l["msg"] == "stage ready" {
			stages++
			assert.NotEmpty(t, l["stage"])
		}
	}
	assert.Contains(t, msgs, "pipeline built")
	assert.Contains(t, msgs, "discrete minimum completed")
	assert.Contains(t, msgs, "range query completed")
	assert.Equal(t, 7, stages)
}

func TestLoggerRecordsFailures(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelError)
	p := newExamplePipeline(t, LookupSorted, WithLogger(logger))

	_, err := p.MinOverRange(1, 0)
	require.Error(t, err)

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "range query failed", lines[0]["msg"])
	assert.Equal(t, "ERROR", lines[0]["level"])
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogBuild(context.Background(), 1, 1, nil)
}

func TestWithLogLevel(t *testing.T) {
	p := newExamplePipeline(t, LookupSorted, WithLogLevel(slog.LevelWarn))
	assert.False(t, p.opts.logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, p.opts.logger.Enabled(context.Background(), slog.LevelWarn))
}
