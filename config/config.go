package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/miosa/marquee/ui/grid"
)

// Config holds persistent settings stored at <profileDir>/marquee.toml.
type Config struct {
	Theme   string        `toml:"theme"`
	View    string        `toml:"view"`
	Catalog CatalogConfig `toml:"catalog"`
	Log     LogConfig     `toml:"log"`

	// Grid and List are the engine settings for the poster and list views.
	// Widths are terminal cells and heights are lines.
	Grid grid.Config `toml:"grid"`
	List grid.Config `toml:"list"`
}

type CatalogConfig struct {
	URL   string   `toml:"url"`
	File  string   `toml:"file,omitempty"`
	Kinds []string `toml:"kinds"`

	// Token is only read from the environment and never written back.
	Token string `toml:"-"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

const (
	filename = "marquee.toml"

	ViewGrid = "grid"
	ViewList = "list"
)

// Load reads <profileDir>/marquee.toml over the defaults. An absent file is
// not an error. A file that does not parse or validate returns the defaults
// together with the error.
func Load(profileDir string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// Breakpoint tables replace the defaults wholesale.
	cfg.Grid.Breakpoints = nil
	cfg.List.Breakpoints = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", filename, err)
	}
	def := Defaults()
	if cfg.Grid.Breakpoints == nil {
		cfg.Grid.Breakpoints = def.Grid.Breakpoints
	}
	if cfg.List.Breakpoints == nil {
		cfg.List.Breakpoints = def.List.Breakpoints
	}
	if err := cfg.Validate(); err != nil {
		return def, err
	}
	return cfg, nil
}

// Save writes cfg to <profileDir>/marquee.toml, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Validate checks the view name and both engine sections.
func (c Config) Validate() error {
	if c.View != ViewGrid && c.View != ViewList {
		return fmt.Errorf("config: view must be %q or %q, got %q", ViewGrid, ViewList, c.View)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("config: grid: %w", err)
	}
	if err := c.List.Validate(); err != nil {
		return fmt.Errorf("config: list: %w", err)
	}
	for _, k := range c.Catalog.Kinds {
		if k != "movie" && k != "show" {
			return fmt.Errorf("config: unknown catalog kind %q", k)
		}
	}
	return nil
}

// ApplyEnv overlays MARQUEE_URL and MARQUEE_TOKEN.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("MARQUEE_URL"); v != "" {
		c.Catalog.URL = v
	}
	if v := getenv("MARQUEE_TOKEN"); v != "" {
		c.Catalog.Token = v
	}
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Theme: "dark",
		View:  ViewGrid,
		Catalog: CatalogConfig{
			URL:   "http://localhost:8089",
			Kinds: []string{"movie", "show"},
		},
		Log:  LogConfig{Level: "info"},
		Grid: DefaultGrid(),
		List: DefaultList(),
	}
}

// DefaultGrid is the poster view tuned for terminal cells: one column on a
// phone-sized pane up to six on a wide monitor. A cell is roughly twice as
// tall as it is wide, so an aspect of 1.5 draws a 2:3 poster.
func DefaultGrid() grid.Config {
	return grid.Config{
		Breakpoints: []grid.Breakpoint{
			{MinWidth: 0, Columns: 1},
			{MinWidth: 40, Columns: 2},
			{MinWidth: 70, Columns: 3},
			{MinWidth: 100, Columns: 4},
			{MinWidth: 140, Columns: 5},
			{MinWidth: 180, Columns: 6},
		},
		Gap:                 1,
		Overscan:            2,
		VirtualizeThreshold: 50,
		AspectRatio:         1.5,
	}
}

// DefaultList is one item per line at a fixed height.
func DefaultList() grid.Config {
	return grid.Config{
		Breakpoints:         []grid.Breakpoint{{MinWidth: 0, Columns: 1}},
		Overscan:            5,
		VirtualizeThreshold: 50,
		RowHeight:           1,
	}
}

// NextView returns the other view name.
func NextView(v string) string {
	if v == ViewList {
		return ViewGrid
	}
	return ViewList
}

// HasKind reports whether kind is enabled.
func (c CatalogConfig) HasKind(kind string) bool {
	return len(c.Kinds) == 0 || slices.Contains(c.Kinds, kind)
}
