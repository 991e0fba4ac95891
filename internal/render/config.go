// Package render drives single-flight render jobs against the external
// manim CLI: scratch source files, one subprocess per job with timeout and
// cooperative cancellation, and best-effort output discovery.
package render

import (
	"fmt"
	"time"
)

// Quality is a named render tier controlling resolution/frame rate.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
	QualityUltra  Quality = "ultra"
)

// ParseQuality validates a quality preset at the boundary.
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(s); q {
	case QualityLow, QualityMedium, QualityHigh, QualityUltra:
		return q, nil
	}
	return "", fmt.Errorf("unknown quality preset %q", s)
}

// Flag returns the single-letter manim CLI quality flag.
func (q Quality) Flag() string {
	switch q {
	case QualityMedium:
		return "m"
	case QualityHigh:
		return "h"
	case QualityUltra:
		return "k"
	default:
		return "l"
	}
}

// OutputDir returns the quality-specific subdirectory manim writes into.
// Unknown presets fall back to the low mapping.
func (q Quality) OutputDir() string {
	switch q {
	case QualityMedium:
		return "720p30"
	case QualityHigh:
		return "1080p60"
	case QualityUltra:
		return "2160p60"
	default:
		return "480p15"
	}
}

// videoExtensions are the output containers recognized during discovery.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".gif":  true,
	".webm": true,
	".mov":  true,
}

// Config carries per-job render settings.
type Config struct {
	Quality        Quality
	Format         string
	Timeout        time.Duration
	OutputDir      string
	DisableCaching bool
}

// DefaultConfig matches the iteration-friendly defaults of the manim CLI
// wrapper: low quality, mp4, 30 second budget, caching off.
func DefaultConfig() Config {
	return Config{
		Quality:        QualityLow,
		Format:         "mp4",
		Timeout:        30 * time.Second,
		DisableCaching: true,
	}
}

// withDefaults fills zero values so a partially specified request renders.
func (c Config) withDefaults() Config {
	if c.Quality == "" {
		c.Quality = QualityLow
	}
	if c.Format == "" {
		c.Format = "mp4"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}
