package config

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Detect   DetectConfig
	Fast     TierConfig
	Accurate TierConfig
	Scratch  ScratchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DetectConfig holds hardware detection settings.
type DetectConfig struct {
	// Timeout bounds the accelerator probe at startup. On expiry the
	// service starts with a no-accelerator profile.
	Timeout time.Duration `mapstructure:"timeout"`
	// MinAccelMemoryMB is the minimum accelerator memory required for
	// the accurate tier to run accelerated.
	MinAccelMemoryMB int64 `mapstructure:"min_accel_memory_mb"`
}

// TierConfig holds per-tier dispatch settings.
type TierConfig struct {
	Workers       int           `mapstructure:"workers"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
	QueuePolicy   string        `mapstructure:"queue_policy"`
	EngineURL     string        `mapstructure:"engine_url"`
	EngineTimeout time.Duration `mapstructure:"engine_timeout"`
}

// MaxFileSizeBytes returns the configured size cap in bytes.
func (t *TierConfig) MaxFileSizeBytes() int64 {
	return t.MaxFileSizeMB * 1024 * 1024
}

// ScratchConfig holds request-scoped temporary storage settings.
type ScratchConfig struct {
	// Dir is the parent directory for per-request scratch dirs. Empty
	// means the system temp dir.
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from environment variables with the
// TIERPARSE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TIERPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "15m")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Detection defaults
	v.SetDefault("detect.timeout", "2s")
	v.SetDefault("detect.min_accel_memory_mb", 6144)

	// Fast tier defaults: CPU-bound text extraction, short deadline.
	fastWorkers := runtime.NumCPU()
	if fastWorkers > 4 {
		fastWorkers = 4
	}
	v.SetDefault("fast.workers", fastWorkers)
	v.SetDefault("fast.timeout", "30s")
	v.SetDefault("fast.max_file_size_mb", 100)
	v.SetDefault("fast.queue_policy", "block")
	v.SetDefault("fast.engine_url", "http://localhost:8004/parse")
	v.SetDefault("fast.engine_timeout", "60s")

	// Accurate tier defaults: the accelerator is a single time-sliced
	// resource, so the pool stays small.
	v.SetDefault("accurate.workers", 2)
	v.SetDefault("accurate.timeout", "10m")
	v.SetDefault("accurate.max_file_size_mb", 500)
	v.SetDefault("accurate.queue_policy", "block")
	v.SetDefault("accurate.engine_url", "http://localhost:8005/parse")
	v.SetDefault("accurate.engine_timeout", "12m")

	// Scratch defaults
	v.SetDefault("scratch.dir", "")

	envBindings := map[string]string{
		"server.port":                "TIERPARSE_SERVER_PORT",
		"server.read_timeout":        "TIERPARSE_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "TIERPARSE_SERVER_WRITE_TIMEOUT",
		"server.environment":         "TIERPARSE_SERVER_ENVIRONMENT",
		"log.level":                  "TIERPARSE_LOG_LEVEL",
		"log.format":                 "TIERPARSE_LOG_FORMAT",
		"detect.timeout":             "TIERPARSE_DETECT_TIMEOUT",
		"detect.min_accel_memory_mb": "TIERPARSE_DETECT_MIN_ACCEL_MEMORY_MB",
		"fast.workers":               "TIERPARSE_FAST_WORKERS",
		"fast.timeout":               "TIERPARSE_FAST_TIMEOUT",
		"fast.max_file_size_mb":      "TIERPARSE_FAST_MAX_FILE_SIZE_MB",
		"fast.queue_policy":          "TIERPARSE_FAST_QUEUE_POLICY",
		"fast.engine_url":            "TIERPARSE_FAST_ENGINE_URL",
		"fast.engine_timeout":        "TIERPARSE_FAST_ENGINE_TIMEOUT",
		"accurate.workers":           "TIERPARSE_ACCURATE_WORKERS",
		"accurate.timeout":           "TIERPARSE_ACCURATE_TIMEOUT",
		"accurate.max_file_size_mb":  "TIERPARSE_ACCURATE_MAX_FILE_SIZE_MB",
		"accurate.queue_policy":      "TIERPARSE_ACCURATE_QUEUE_POLICY",
		"accurate.engine_url":        "TIERPARSE_ACCURATE_ENGINE_URL",
		"accurate.engine_timeout":    "TIERPARSE_ACCURATE_ENGINE_TIMEOUT",
		"scratch.dir":                "TIERPARSE_SCRATCH_DIR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// TIERPARSE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TIERPARSE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Detect = DetectConfig{
		Timeout:          v.GetDuration("detect.timeout"),
		MinAccelMemoryMB: v.GetInt64("detect.min_accel_memory_mb"),
	}
	cfg.Fast = TierConfig{
		Workers:       v.GetInt("fast.workers"),
		Timeout:       v.GetDuration("fast.timeout"),
		MaxFileSizeMB: v.GetInt64("fast.max_file_size_mb"),
		QueuePolicy:   v.GetString("fast.queue_policy"),
		EngineURL:     v.GetString("fast.engine_url"),
		EngineTimeout: v.GetDuration("fast.engine_timeout"),
	}
	cfg.Accurate = TierConfig{
		Workers:       v.GetInt("accurate.workers"),
		Timeout:       v.GetDuration("accurate.timeout"),
		MaxFileSizeMB: v.GetInt64("accurate.max_file_size_mb"),
		QueuePolicy:   v.GetString("accurate.queue_policy"),
		EngineURL:     v.GetString("accurate.engine_url"),
		EngineTimeout: v.GetDuration("accurate.engine_timeout"),
	}
	cfg.Scratch = ScratchConfig{
		Dir: v.GetString("scratch.dir"),
	}

	return cfg, nil
}
