// Package grid is a windowed layout engine for large, uniformly tiled
// collections. It resolves a column count from the container width, groups
// items into rows, estimates and then corrects row heights, and computes the
// contiguous range of rows that must be mounted for the current scroll
// position.
//
// The engine never inspects items. Callers hand it an ordered slice of
// stable keys and render whatever rows it reports as visible.
package grid

import (
	"errors"
	"fmt"
)

// Configuration errors returned by Config.Validate and New.
var (
	ErrNoBreakpoints       = errors.New("grid: no breakpoints configured")
	ErrUncoveredZero       = errors.New("grid: no breakpoint covers width 0")
	ErrUnsortedBreakpoints = errors.New("grid: breakpoints not sorted by min width")
	ErrInvalidColumns      = errors.New("grid: breakpoint column count must be >= 1")
	ErrInvalidAspectRatio  = errors.New("grid: aspect ratio must be > 0")
	ErrNegativeValue       = errors.New("grid: negative size value")
)

// Breakpoint is one responsive tier: containers at least MinWidth wide get
// Columns columns.
type Breakpoint struct {
	MinWidth float64 `toml:"min_width"`
	Columns  int     `toml:"columns"`
}

// Config is supplied once per grid and never changes afterwards.
type Config struct {
	// Breakpoints sorted by MinWidth ascending; the first must start at 0.
	Breakpoints []Breakpoint `toml:"breakpoints"`

	// Gap between tiles, horizontally and below each row.
	Gap float64 `toml:"gap"`

	// Overscan is the number of extra rows mounted above and below the
	// visible window.
	Overscan int `toml:"overscan"`

	// VirtualizeThreshold: collections with at most this many items are not
	// virtualized at all.
	VirtualizeThreshold int `toml:"virtualize_threshold"`

	// AspectRatio is tile width / tile height.
	AspectRatio float64 `toml:"aspect_ratio"`

	// RowHeight, when > 0, replaces the aspect-ratio estimate with a fixed
	// per-row estimate (list layouts whose rows do not scale with width).
	RowHeight float64 `toml:"row_height"`
}

// DefaultBreakpoints are the poster tiers used by the web dashboard.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{MinWidth: 0, Columns: 2},
		{MinWidth: 640, Columns: 3},
		{MinWidth: 768, Columns: 4},
		{MinWidth: 1024, Columns: 5},
		{MinWidth: 1280, Columns: 6},
	}
}

// DefaultConfig returns the poster grid defaults in pixel units.
func DefaultConfig() Config {
	return Config{
		Breakpoints:         DefaultBreakpoints(),
		Gap:                 16,
		Overscan:            2,
		VirtualizeThreshold: 50,
		AspectRatio:         2.0 / 3.0,
	}
}

// Validate reports the first misconfiguration found. A config that passes
// always resolves to a column count >= 1 for any width >= 0.
func (c Config) Validate() error {
	if len(c.Breakpoints) == 0 {
		return ErrNoBreakpoints
	}
	if c.Breakpoints[0].MinWidth > 0 {
		return fmt.Errorf("%w: smallest tier starts at %g", ErrUncoveredZero, c.Breakpoints[0].MinWidth)
	}
	for i, bp := range c.Breakpoints {
		if bp.Columns < 1 {
			return fmt.Errorf("%w: tier %d has %d", ErrInvalidColumns, i, bp.Columns)
		}
		if i > 0 && bp.MinWidth <= c.Breakpoints[i-1].MinWidth {
			return fmt.Errorf("%w: tier %d (%g) after %g", ErrUnsortedBreakpoints, i, bp.MinWidth, c.Breakpoints[i-1].MinWidth)
		}
	}
	if c.AspectRatio <= 0 && c.RowHeight <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidAspectRatio, c.AspectRatio)
	}
	switch {
	case c.Gap < 0:
		return fmt.Errorf("%w: gap %g", ErrNegativeValue, c.Gap)
	case c.Overscan < 0:
		return fmt.Errorf("%w: overscan %d", ErrNegativeValue, c.Overscan)
	case c.VirtualizeThreshold < 0:
		return fmt.Errorf("%w: virtualize threshold %d", ErrNegativeValue, c.VirtualizeThreshold)
	case c.RowHeight < 0:
		return fmt.Errorf("%w: row height %g", ErrNegativeValue, c.RowHeight)
	}
	return nil
}

// Columns resolves the column count for a container width.
func (c Config) Columns(width float64) int {
	return ResolveColumns(c.Breakpoints, width)
}

// EstimateRowHeight returns the initial height used for every unmeasured row
// at the given width and column count.
func (c Config) EstimateRowHeight(width float64, columns int) float64 {
	if c.RowHeight > 0 {
		return c.RowHeight
	}
	return EstimateRowHeight(width, columns, c.AspectRatio, c.Gap)
}

// ResolveColumns walks bps from the widest tier down and returns the first
// column count whose MinWidth <= width. Widths below every tier get the
// smallest tier. bps must be sorted ascending and non-empty.
func ResolveColumns(bps []Breakpoint, width float64) int {
	for i := len(bps) - 1; i >= 0; i-- {
		if bps[i].MinWidth <= width {
			return bps[i].Columns
		}
	}
	return bps[0].Columns
}
