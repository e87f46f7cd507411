package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// VLM transcription
	MistralAPIKey string
	MistralModel  string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentPages int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Artifacts
	DataDir string

	// Rasterization
	RasterDPI    int
	PdftoppmPath string

	// LaTeX compilation
	TectonicPath   string
	CompileTimeout time.Duration

	// Document metadata defaults
	DocTitle  string
	DocAuthor string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("MATHSCRIBE_API_KEY"),

		MistralAPIKey: os.Getenv("MISTRAL_API_KEY"),
		MistralModel:  envOr("MISTRAL_MODEL", "pixtral-12b-2409"),

		WorkerCount:        envInt("WORKER_COUNT", 2),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 50),
		MaxConcurrentPages: envInt("MAX_CONCURRENT_PAGES", 2),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		DataDir: envOr("DATA_DIR", "data"),

		RasterDPI:    envInt("RASTER_DPI", 300),
		PdftoppmPath: envOr("PDFTOPPM_PATH", "pdftoppm"),

		TectonicPath:   envOr("TECTONIC_PATH", "tectonic"),
		CompileTimeout: envDuration("COMPILE_TIMEOUT", 2*time.Minute),

		DocTitle:  envOr("DOC_TITLE", "Math Homework"),
		DocAuthor: os.Getenv("DOC_AUTHOR"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxConcurrentPages <= 0 {
		cfg.MaxConcurrentPages = 2
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.RasterDPI <= 0 {
		cfg.RasterDPI = 300
	}
	if cfg.CompileTimeout <= 0 {
		cfg.CompileTimeout = 2 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("MATHSCRIBE_API_KEY is required")
	}
	if c.MistralAPIKey == "" {
		return fmt.Errorf("MISTRAL_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
