package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Output formats accepted by Format.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Supersample int    `json:"supersample"`
	WebPQuality int    `json:"webp_quality"`
	Workers     int    `json:"workers"`
	Frames      int    `json:"frames"`
	Format      string `json:"format"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.TextureDir != "" && !filepath.IsAbs(c.TextureDir) {
			c.TextureDir = filepath.Join(c.BaseDir, c.TextureDir)
		}
		if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Format == "" {
		c.Format = FormatWebP
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Format != FormatWebP && c.Format != FormatPNG {
		return fmt.Errorf("config: unknown format %q (want %s or %s)", c.Format, FormatWebP, FormatPNG)
	}
	if c.WebPQuality > 100 {
		return fmt.Errorf("config: webp quality %d out of range 1-100", c.WebPQuality)
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d too large (max 8)", c.Supersample)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir     string
	TextureDir  string
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Quality     int
	Workers     int
	Frames      int
	Format      string
}
