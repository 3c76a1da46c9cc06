// Package config loads the sketchpad server settings.
//
// Settings start from Default, are overlaid by an optional TOML file and
// finally by SKETCHPAD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
	"github.com/ironsheep/sketchpad-mcp/internal/imaging"
)

// Config is the complete server configuration.
type Config struct {
	LogLevel    string            `toml:"log_level"`
	Canvas      CanvasConfig      `toml:"canvas"`
	Brush       BrushConfig       `toml:"brush"`
	Grid        GridConfig        `toml:"grid"`
	Recognition RecognitionConfig `toml:"recognition"`
	History     HistoryConfig     `toml:"history"`
	Tracker     TrackerConfig     `toml:"tracker"`
}

// CanvasConfig sets the drawing surface size in pixels.
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// BrushConfig sets the initial tool and ink.
type BrushConfig struct {
	Tool  string  `toml:"tool"`
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

// GridConfig sets the presentation grid.
type GridConfig struct {
	Enabled bool   `toml:"enabled"`
	Spacing int    `toml:"spacing"`
	Color   string `toml:"color"`
}

// RecognitionConfig holds the shape recognition switch and thresholds.
type RecognitionConfig struct {
	Enabled             bool    `toml:"enabled"`
	Tolerance           float64 `toml:"tolerance"`
	ClosureDistance     float64 `toml:"closure_distance"`
	CircleVariance      float64 `toml:"circle_variance"`
	CircleSamples       int     `toml:"circle_samples"`
	CircleMinMatches    int     `toml:"circle_min_matches"`
	CircleMatchDistance float64 `toml:"circle_match_distance"`
	LineDeviation       float64 `toml:"line_deviation"`
	MinPoints           int     `toml:"min_points"`
}

// HistoryConfig bounds the undo history. A limit of 0 keeps every entry.
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

// TrackerConfig points at an optional hand-tracking websocket feed.
type TrackerConfig struct {
	URL      string `toml:"url"`
	EraseBox int    `toml:"erase_box"`
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() Config {
	th := detection.DefaultThresholds()
	return Config{
		LogLevel: "info",
		Canvas:   CanvasConfig{Width: 800, Height: 600},
		Brush:    BrushConfig{Tool: "pencil", Color: "#000000", Width: 5},
		Grid: GridConfig{
			Spacing: imaging.DefaultGridSpacing,
			Color:   imaging.HexColor(imaging.DefaultGridColor),
		},
		Recognition: RecognitionConfig{
			Tolerance:           th.Tolerance,
			ClosureDistance:     th.ClosureDistance,
			CircleVariance:      th.CircleVariance,
			CircleSamples:       th.CircleSamples,
			CircleMinMatches:    th.CircleMinMatches,
			CircleMatchDistance: th.CircleMatchDistance,
			LineDeviation:       th.LineDeviation,
			MinPoints:           th.MinPoints,
		},
		Tracker: TrackerConfig{EraseBox: 40},
	}
}

// Load reads a TOML file on top of Default.
//
// An empty path or a missing file yields the defaults without error. Syntax
// errors and type mismatches are returned as *ParseError.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// ApplyEnv overrides settings from SKETCHPAD_* variables. getenv is
// usually os.Getenv. Unset or empty variables leave the setting unchanged.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("SKETCHPAD_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SKETCHPAD_WIDTH %q: %w", v, err)
		}
		c.Canvas.Width = n
	}
	if v := getenv("SKETCHPAD_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SKETCHPAD_HEIGHT %q: %w", v, err)
		}
		c.Canvas.Height = n
	}
	if v := getenv("SKETCHPAD_TRACKER_URL"); v != "" {
		c.Tracker.URL = v
	}
	if v := getenv("SKETCHPAD_RECOGNITION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SKETCHPAD_RECOGNITION %q: %w", v, err)
		}
		c.Recognition.Enabled = b
	}
	if v := getenv("SKETCHPAD_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks the configuration for values the board cannot work with.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	switch c.Brush.Tool {
	case "pencil", "brush", "eraser":
	default:
		return fmt.Errorf("unknown brush tool %q", c.Brush.Tool)
	}
	if _, err := imaging.ParseColor(c.Brush.Color); err != nil {
		return fmt.Errorf("brush: %w", err)
	}
	if c.Brush.Width <= 0 {
		return fmt.Errorf("brush width must be positive, got %g", c.Brush.Width)
	}
	if c.Grid.Spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %d", c.Grid.Spacing)
	}
	if _, err := imaging.ParseColor(c.Grid.Color); err != nil {
		return fmt.Errorf("grid: %w", err)
	}

	r := c.Recognition
	if r.Tolerance < 0 || r.ClosureDistance < 0 || r.CircleVariance < 0 ||
		r.CircleMatchDistance < 0 || r.LineDeviation < 0 {
		return fmt.Errorf("recognition distances must not be negative")
	}
	if r.CircleSamples <= 0 {
		return fmt.Errorf("circle_samples must be positive, got %d", r.CircleSamples)
	}
	if r.CircleMinMatches > r.CircleSamples {
		return fmt.Errorf("circle_min_matches %d exceeds circle_samples %d", r.CircleMinMatches, r.CircleSamples)
	}
	if r.MinPoints < 0 {
		return fmt.Errorf("min_points must not be negative, got %d", r.MinPoints)
	}

	if c.History.Limit < 0 {
		return fmt.Errorf("history limit must not be negative, got %d", c.History.Limit)
	}
	if c.Tracker.EraseBox <= 0 {
		return fmt.Errorf("tracker erase_box must be positive, got %d", c.Tracker.EraseBox)
	}
	return nil
}

// Thresholds returns the recognition thresholds as the classifier expects them.
func (c *Config) Thresholds() detection.Thresholds {
	r := c.Recognition
	return detection.Thresholds{
		Tolerance:           r.Tolerance,
		ClosureDistance:     r.ClosureDistance,
		CircleVariance:      r.CircleVariance,
		CircleSamples:       r.CircleSamples,
		CircleMinMatches:    r.CircleMinMatches,
		CircleMatchDistance: r.CircleMatchDistance,
		LineDeviation:       r.LineDeviation,
		MinPoints:           r.MinPoints,
	}
}

// Debug reports whether verbose logging is requested.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
