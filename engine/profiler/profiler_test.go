package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	start := time.Unix(100, 0)
	p := NewProfiler(WithLogger(zap.New(core)), WithStart(start), WithInterval(time.Second))

	frame := 20 * time.Millisecond
	reported := 0
	for i := 1; i <= 100; i++ {
		if p.Tick(start.Add(time.Duration(i) * frame)) {
			reported++
		}
	}

	assert.Equal(t, 2, reported)
	require.Equal(t, 2, logs.FilterMessage("frame stats").Len())
	stats := p.Last()
	assert.Equal(t, 50, stats.Frames)
	assert.InDelta(t, 50.0, stats.FPS, 1e-9)
	assert.Equal(t, time.Second, stats.Elapsed)
	assert.Greater(t, stats.SysMB, 0.0)
}

func TestProfilerQuietBeforeInterval(t *testing.T) {
	start := time.Unix(0, 0)
	p := NewProfiler(WithStart(start), WithInterval(time.Minute))
	assert.False(t, p.Tick(start.Add(time.Second)))
	assert.Equal(t, Stats{}, p.Last())
}
