package config_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierparse/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Detect.Timeout)
	assert.Equal(t, int64(6144), cfg.Detect.MinAccelMemoryMB)

	// Fast tier sized to CPU parallelism, capped.
	wantFast := runtime.NumCPU()
	if wantFast > 4 {
		wantFast = 4
	}
	assert.Equal(t, wantFast, cfg.Fast.Workers)
	assert.Equal(t, 30*time.Second, cfg.Fast.Timeout)
	assert.Equal(t, int64(100), cfg.Fast.MaxFileSizeMB)
	assert.Equal(t, "block", cfg.Fast.QueuePolicy)

	// Accurate tier stays small: one time-sliced accelerator.
	assert.Equal(t, 2, cfg.Accurate.Workers)
	assert.Equal(t, 10*time.Minute, cfg.Accurate.Timeout)
	assert.Equal(t, int64(500), cfg.Accurate.MaxFileSizeMB)

	assert.Equal(t, int64(100*1024*1024), cfg.Fast.MaxFileSizeBytes())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TIERPARSE_FAST_WORKERS", "8")
	t.Setenv("TIERPARSE_FAST_QUEUE_POLICY", "reject")
	t.Setenv("TIERPARSE_ACCURATE_TIMEOUT", "5m")
	t.Setenv("TIERPARSE_DETECT_MIN_ACCEL_MEMORY_MB", "12288")
	t.Setenv("TIERPARSE_ACCURATE_ENGINE_URL", "http://mineru:9000/parse")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Fast.Workers)
	assert.Equal(t, "reject", cfg.Fast.QueuePolicy)
	assert.Equal(t, 5*time.Minute, cfg.Accurate.Timeout)
	assert.Equal(t, int64(12288), cfg.Detect.MinAccelMemoryMB)
	assert.Equal(t, "http://mineru:9000/parse", cfg.Accurate.EngineURL)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
