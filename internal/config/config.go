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

	// Artifact cache
	CacheDir string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Extraction tunables
	MajorHeadingFontSize float64
	SubHeadingFontSize   float64
	MinHeadingChars      int
	// Lines/headings appearing on more than this many pages are treated
	// as navigation artifacts. 0 means auto: floor(total_pages / 2).
	MaxPageAppearances int

	// Stats window
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCSTRUCT_API_KEY"),

		CacheDir: envOr("CACHE_DIR", "output"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		MajorHeadingFontSize: envFloat("MAJOR_HEADING_FONT_SIZE", 26),
		SubHeadingFontSize:   envFloat("SUB_HEADING_FONT_SIZE", 18),
		MinHeadingChars:      envInt("MIN_HEADING_CHARS", 3),
		MaxPageAppearances:   envInt("MAX_PAGE_APPEARANCES", 0),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxPageAppearances < 0 {
		cfg.MaxPageAppearances = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCSTRUCT_API_KEY is required")
	}
	if c.SubHeadingFontSize <= 0 {
		return fmt.Errorf("SUB_HEADING_FONT_SIZE must be positive")
	}
	if c.MajorHeadingFontSize <= c.SubHeadingFontSize {
		return fmt.Errorf("MAJOR_HEADING_FONT_SIZE must exceed SUB_HEADING_FONT_SIZE")
	}
	if c.MinHeadingChars < 1 {
		return fmt.Errorf("MIN_HEADING_CHARS must be at least 1")
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
