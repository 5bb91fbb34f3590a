// Package config provides the configuration schema and loader for the
// delvemap editor service.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps the level to its slog equivalent.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PlacementMode selects how cards land on the canvas.
type PlacementMode string

const (
	// PlacementHex snaps cards to hex cell centers.
	PlacementHex PlacementMode = "hex"
	// PlacementFree places cards at raw pixel coordinates.
	PlacementFree PlacementMode = "free"
)

// IsValid reports whether m is a recognised placement mode.
func (m PlacementMode) IsValid() bool {
	return m == PlacementHex || m == PlacementFree
}

// Config is the root configuration, typically loaded from a YAML file.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Grid     GridConfig     `yaml:"grid"`
	AutoSave AutoSaveConfig `yaml:"autosave"`
	LogLevel LogLevel       `yaml:"log_level"`
}

// StorageConfig locates the persistence database.
type StorageConfig struct {
	// Path is the SQLite database file; ":memory:" keeps everything
	// ephemeral.
	Path string `yaml:"path"`
}

// GridConfig holds canvas layout settings.
type GridConfig struct {
	// HexSize is the center-to-corner distance in pixels.
	HexSize float64 `yaml:"hex_size"`

	// Placement selects hex snapping or free-form positioning.
	Placement PlacementMode `yaml:"placement"`
}

// AutoSaveConfig tunes the save pipeline.
type AutoSaveConfig struct {
	// Debounce is the quiet period after the last change before a save
	// fires.
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Storage:  StorageConfig{Path: "data/delvemap.db"},
		Grid:     GridConfig{HexSize: 60, Placement: PlacementHex},
		AutoSave: AutoSaveConfig{Debounce: 2 * time.Second},
		LogLevel: LogInfo,
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a present but invalid file is an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader parses a config document, filling unset fields from the
// defaults.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !c.LogLevel.IsValid() {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	if !c.Grid.Placement.IsValid() {
		return fmt.Errorf("config: unknown grid.placement %q", c.Grid.Placement)
	}
	if c.Grid.HexSize <= 0 {
		return fmt.Errorf("config: grid.hex_size must be positive, got %v", c.Grid.HexSize)
	}
	if c.AutoSave.Debounce <= 0 {
		return fmt.Errorf("config: autosave.debounce must be positive, got %v", c.AutoSave.Debounce)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("config: storage.path is required")
	}
	return nil
}
